package status

import (
	"fmt"

	"github.com/chmouel/wtstatus/internal/models"
)

// DecodeError reports a malformed or unrecognized status record. The raw
// line is carried for diagnostics.
type DecodeError struct {
	Line   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode status record %q: %s", e.Line, e.Reason)
}

// UnknownConflictCodeError reports an unmerged code pair the classifier has
// no mapping for. It is never coerced to a default action.
type UnknownConflictCodeError struct {
	Us   models.ChangeCode
	Them models.ChangeCode
}

func (e *UnknownConflictCodeError) Error() string {
	return fmt.Sprintf("unknown conflict code pair %s%s", e.Us, e.Them)
}

// ContentReadError reports a failure reading a working-tree file while
// counting conflict markers.
type ContentReadError struct {
	Path string
	Err  error
}

func (e *ContentReadError) Error() string {
	return fmt.Sprintf("read %s for marker counting: %v", e.Path, e.Err)
}

func (e *ContentReadError) Unwrap() error { return e.Err }
