package status

import (
	"context"

	"github.com/chmouel/wtstatus/internal/models"
)

// Backend is the narrow slice of the version-control layer the interpreter
// needs: the raw status text, working-tree file bytes for marker counting,
// and the repository probe consulted before decoding anything.
type Backend interface {
	IsRepository(ctx context.Context, path string) bool
	StatusRaw(ctx context.Context, repoPath string) (string, error)
	ReadWorktreeFile(repoPath, relPath string) ([]byte, error)
}

// Interpreter assembles the final per-path status model from decoder,
// classifier and marker counter output. It holds no state between calls;
// every GetStatus re-decodes and re-scans from scratch.
type Interpreter struct {
	backend Backend
}

// NewInterpreter creates an Interpreter over the given backend.
func NewInterpreter(backend Backend) *Interpreter {
	return &Interpreter{backend: backend}
}

// GetStatus returns the working-directory status for repoPath, preserving
// the backend's record order. A path that is not a repository yields
// (nil, nil): absence is a defined negative result, not an error, and is
// distinct from a repository with zero changes (non-nil status, empty
// Files). Any decode, classification or read failure aborts the whole call;
// partially-populated results are never returned.
func (i *Interpreter) GetStatus(ctx context.Context, repoPath string) (*models.WorkingDirectoryStatus, error) {
	if !i.backend.IsRepository(ctx, repoPath) {
		return nil, nil
	}

	raw, err := i.backend.StatusRaw(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	records, err := DecodeRecords(raw)
	if err != nil {
		return nil, err
	}

	files := make([]models.FileEntry, 0, len(records))
	for _, rec := range records {
		switch {
		case rec.Ignored:
			// Part of the raw vocabulary but not of the visible model.
			continue
		case rec.Untracked:
			files = append(files, models.FileEntry{
				Path:   rec.Path,
				Status: models.FileStatus{Kind: models.FileStatusUntracked},
			})
		case rec.Unmerged:
			entry, err := i.conflictedEntry(repoPath, rec)
			if err != nil {
				return nil, err
			}
			files = append(files, models.FileEntry{
				Path: rec.Path,
				Status: models.FileStatus{
					Kind:     models.FileStatusConflicted,
					Conflict: entry,
				},
			})
		default:
			files = append(files, models.FileEntry{
				Path:   rec.Path,
				Status: ordinaryStatus(rec),
			})
		}
	}

	return &models.WorkingDirectoryStatus{Files: files}, nil
}

// conflictedEntry classifies an unmerged record and, for textual conflicts,
// reads the current file content to count remaining markers. Manual
// conflicts leave MarkerCount nil.
func (i *Interpreter) conflictedEntry(repoPath string, rec models.StatusRecord) (*models.ConflictedEntry, error) {
	action, err := ClassifyConflict(rec.IndexSide, rec.WorktreeSide)
	if err != nil {
		return nil, err
	}

	entry := &models.ConflictedEntry{
		Action: action,
		Us:     rec.IndexSide,
		Them:   rec.WorktreeSide,
	}
	if !TextualAction(action) {
		return entry, nil
	}

	content, err := i.backend.ReadWorktreeFile(repoPath, rec.Path)
	if err != nil {
		return nil, &ContentReadError{Path: rec.Path, Err: err}
	}
	if IsBinary(content) {
		return entry, nil
	}

	count := CountMarkers(content)
	entry.MarkerCount = &count
	return entry, nil
}

// ordinaryStatus maps a non-unmerged record to its visible tag. Rename and
// copy provenance wins over the per-side codes; an entry added on either
// side is New before a deletion on the other side can claim it.
func ordinaryStatus(rec models.StatusRecord) models.FileStatus {
	hasCode := func(c models.ChangeCode) bool {
		return rec.IndexSide == c || rec.WorktreeSide == c
	}
	switch {
	case rec.OldPath != "" && hasCode(models.ChangeCodeRenamed):
		return models.FileStatus{Kind: models.FileStatusRenamed, OldPath: rec.OldPath}
	case rec.OldPath != "" && hasCode(models.ChangeCodeCopied):
		return models.FileStatus{Kind: models.FileStatusCopied, OldPath: rec.OldPath}
	case hasCode(models.ChangeCodeAdded):
		return models.FileStatus{Kind: models.FileStatusNew}
	case hasCode(models.ChangeCodeDeleted):
		return models.FileStatus{Kind: models.FileStatusDeleted}
	default:
		// Modified or type-changed on either side.
		return models.FileStatus{Kind: models.FileStatusModified}
	}
}
