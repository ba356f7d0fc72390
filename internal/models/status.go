// Package models defines the data objects shared across wtstatus packages.
package models

// ChangeCode is the atomic per-side state a path can be in, one character of
// the two-character porcelain code.
type ChangeCode byte

const (
	ChangeCodeUnchanged          ChangeCode = '.'
	ChangeCodeModified           ChangeCode = 'M'
	ChangeCodeTypeChanged        ChangeCode = 'T'
	ChangeCodeAdded              ChangeCode = 'A'
	ChangeCodeDeleted            ChangeCode = 'D'
	ChangeCodeRenamed            ChangeCode = 'R'
	ChangeCodeCopied             ChangeCode = 'C'
	ChangeCodeUpdatedButUnmerged ChangeCode = 'U'
)

// KnownChangeCode reports whether b is part of the porcelain XY alphabet.
func KnownChangeCode(b byte) bool {
	switch ChangeCode(b) {
	case ChangeCodeUnchanged, ChangeCodeModified, ChangeCodeTypeChanged,
		ChangeCodeAdded, ChangeCodeDeleted, ChangeCodeRenamed,
		ChangeCodeCopied, ChangeCodeUpdatedButUnmerged:
		return true
	}
	return false
}

func (c ChangeCode) String() string { return string(byte(c)) }

// StatusRecord is one working-tree entry prior to classification, in the
// order the backend reported it.
type StatusRecord struct {
	Path         string     // repository-relative
	OldPath      string     // set for renames/copies, empty otherwise
	IndexSide    ChangeCode // "ours" side
	WorktreeSide ChangeCode // "theirs" side
	Unmerged     bool
	Untracked    bool
	Ignored      bool
}

// UnmergedAction names how an unmerged pair came to conflict.
type UnmergedAction int

const (
	BothAdded UnmergedAction = iota
	BothModified
	BothDeleted
	AddedByUs
	DeletedByUs
	AddedByThem
	DeletedByThem
)

var unmergedActionNames = map[UnmergedAction]string{
	BothAdded:     "both-added",
	BothModified:  "both-modified",
	BothDeleted:   "both-deleted",
	AddedByUs:     "added-by-us",
	DeletedByUs:   "deleted-by-us",
	AddedByThem:   "added-by-them",
	DeletedByThem: "deleted-by-them",
}

func (a UnmergedAction) String() string {
	if name, ok := unmergedActionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ConflictedEntry describes the two-sided provenance of an unmerged path.
// MarkerCount is present only for textual conflicts; a nil pointer means the
// conflict is manual (binary content or a delete/modify mismatch), which is
// distinct from a present count of zero.
type ConflictedEntry struct {
	Action      UnmergedAction
	Us          ChangeCode
	Them        ChangeCode
	MarkerCount *int
}

// Textual reports whether the conflict can be resolved by editing merge
// markers in the working-tree file.
func (c *ConflictedEntry) Textual() bool { return c.MarkerCount != nil }

// FileStatusKind discriminates the visible outcome for a path.
type FileStatusKind int

const (
	FileStatusNew FileStatusKind = iota
	FileStatusModified
	FileStatusDeleted
	FileStatusRenamed
	FileStatusCopied
	FileStatusUntracked
	FileStatusConflicted
)

var fileStatusKindNames = map[FileStatusKind]string{
	FileStatusNew:        "new",
	FileStatusModified:   "modified",
	FileStatusDeleted:    "deleted",
	FileStatusRenamed:    "renamed",
	FileStatusCopied:     "copied",
	FileStatusUntracked:  "untracked",
	FileStatusConflicted: "conflicted",
}

func (k FileStatusKind) String() string {
	if name, ok := fileStatusKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// FileStatus is the per-path classification. Exactly one kind applies;
// OldPath is populated for renames/copies and Conflict for conflicted paths.
type FileStatus struct {
	Kind     FileStatusKind
	OldPath  string
	Conflict *ConflictedEntry
}

// IsConflicted reports whether the path carries an unmerged entry.
func (s FileStatus) IsConflicted() bool { return s.Kind == FileStatusConflicted }

// IsManualConflict reports whether the path is conflicted with no merge
// markers to edit (binary content or one side has no content at all).
func (s FileStatus) IsManualConflict() bool {
	return s.Kind == FileStatusConflicted && s.Conflict != nil && !s.Conflict.Textual()
}

// FileEntry is the externally visible unit: one path and its status.
type FileEntry struct {
	Path   string
	Status FileStatus
}

// WorkingDirectoryStatus holds every changed path of a repository in the
// order the backend reported them. The slice is never re-sorted.
type WorkingDirectoryStatus struct {
	Files []FileEntry
}

// Conflicted returns the entries carrying unmerged state, in report order.
func (w *WorkingDirectoryStatus) Conflicted() []FileEntry {
	var out []FileEntry
	for _, f := range w.Files {
		if f.Status.IsConflicted() {
			out = append(out, f)
		}
	}
	return out
}
