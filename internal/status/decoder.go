// Package status interprets the raw porcelain status records git emits for a
// working directory and turns them into the structured per-path model the
// rest of the application consumes.
package status

import (
	"strconv"
	"strings"

	"github.com/chmouel/wtstatus/internal/models"
)

// Porcelain v2 field counts before the path, per record type.
const (
	ordinaryFields = 8  // 1 XY sub mH mI mW hH hI <path>
	renamedFields  = 9  // 2 XY sub mH mI mW hH hI Xscore <path>\t<origPath>
	unmergedFields = 10 // u XY sub m1 m2 m3 mW h1 h2 h3 <path>
)

// DecodeRecords parses `git status --porcelain=v2` output into an ordered
// record slice. Branch headers are skipped; every other malformed or
// unrecognized line is a *DecodeError, never a silent drop. Empty input
// yields an empty slice.
func DecodeRecords(raw string) ([]models.StatusRecord, error) {
	var records []models.StatusRecord
	for line := range strings.SplitSeq(raw, "\n") {
		if line == "" {
			continue
		}
		switch line[0] {
		case '#':
			// branch.* headers, not path records
		case '1':
			rec, err := decodeOrdinary(line)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		case '2':
			rec, err := decodeRenamed(line)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		case 'u':
			rec, err := decodeUnmerged(line)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		case '?':
			path, ok := strings.CutPrefix(line, "? ")
			if !ok || path == "" {
				return nil, &DecodeError{Line: line, Reason: "missing path on untracked record"}
			}
			records = append(records, models.StatusRecord{Path: path, Untracked: true})
		case '!':
			path, ok := strings.CutPrefix(line, "! ")
			if !ok || path == "" {
				return nil, &DecodeError{Line: line, Reason: "missing path on ignored record"}
			}
			records = append(records, models.StatusRecord{Path: path, Ignored: true})
		default:
			return nil, &DecodeError{Line: line, Reason: "unrecognized record type"}
		}
	}
	return records, nil
}

func decodeOrdinary(line string) (models.StatusRecord, error) {
	fields := strings.SplitN(line, " ", ordinaryFields+1)
	if len(fields) != ordinaryFields+1 || fields[ordinaryFields] == "" {
		return models.StatusRecord{}, &DecodeError{Line: line, Reason: "truncated ordinary record"}
	}
	index, worktree, err := decodeXY(line, fields[1])
	if err != nil {
		return models.StatusRecord{}, err
	}
	return models.StatusRecord{
		Path:         fields[ordinaryFields],
		IndexSide:    index,
		WorktreeSide: worktree,
	}, nil
}

func decodeRenamed(line string) (models.StatusRecord, error) {
	fields := strings.SplitN(line, " ", renamedFields+1)
	if len(fields) != renamedFields+1 {
		return models.StatusRecord{}, &DecodeError{Line: line, Reason: "truncated rename/copy record"}
	}
	index, worktree, err := decodeXY(line, fields[1])
	if err != nil {
		return models.StatusRecord{}, err
	}
	// Similarity score field, e.g. "R100" or "C75". The threshold decision
	// already happened on the git side, so the number is validated and
	// dropped.
	score := fields[renamedFields-1]
	if len(score) < 2 || (score[0] != 'R' && score[0] != 'C') {
		return models.StatusRecord{}, &DecodeError{Line: line, Reason: "malformed similarity score"}
	}
	if _, err := strconv.Atoi(score[1:]); err != nil {
		return models.StatusRecord{}, &DecodeError{Line: line, Reason: "malformed similarity score"}
	}
	// Path field is "<newPath>\t<origPath>".
	path, orig, ok := strings.Cut(fields[renamedFields], "\t")
	if !ok || path == "" || orig == "" {
		return models.StatusRecord{}, &DecodeError{Line: line, Reason: "rename/copy record missing old path"}
	}
	return models.StatusRecord{
		Path:         path,
		OldPath:      orig,
		IndexSide:    index,
		WorktreeSide: worktree,
	}, nil
}

func decodeUnmerged(line string) (models.StatusRecord, error) {
	fields := strings.SplitN(line, " ", unmergedFields+1)
	if len(fields) != unmergedFields+1 || fields[unmergedFields] == "" {
		return models.StatusRecord{}, &DecodeError{Line: line, Reason: "truncated unmerged record"}
	}
	index, worktree, err := decodeXY(line, fields[1])
	if err != nil {
		return models.StatusRecord{}, err
	}
	return models.StatusRecord{
		Path:         fields[unmergedFields],
		IndexSide:    index,
		WorktreeSide: worktree,
		Unmerged:     true,
	}, nil
}

func decodeXY(line, xy string) (models.ChangeCode, models.ChangeCode, error) {
	if len(xy) != 2 {
		return 0, 0, &DecodeError{Line: line, Reason: "status code is not two characters"}
	}
	if !models.KnownChangeCode(xy[0]) || !models.KnownChangeCode(xy[1]) {
		return 0, 0, &DecodeError{Line: line, Reason: "unrecognized change code " + strconv.Quote(xy)}
	}
	return models.ChangeCode(xy[0]), models.ChangeCode(xy[1]), nil
}
