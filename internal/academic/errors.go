package academic

import (
	"errors"
	"fmt"
)

var (
	// ErrLocked rejects any mutation attempted on a locked gradebook.
	ErrLocked = errors.New("gradebook is locked")

	ErrNotFound     = errors.New("gradebook not found")
	ErrItemNotFound = errors.New("grade item not found")

	// ErrVersionConflict means the stored record moved under a
	// compare-and-swap write.
	ErrVersionConflict = errors.New("gradebook version conflict")

	// ErrForbidden rejects lock transitions from non-administrative roles.
	ErrForbidden = errors.New("actor may not administer gradebooks")
)

// ValidationError reports a rejected mutation input, e.g. an item weight
// at or below zero.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Warning is a non-blocking policy notice surfaced alongside a successful
// mutation. It never gates or alters computation.
type Warning string

// WarnWeightOver100 flags item weights summing above 1.0. The calculator
// self-normalizes by graded weight, so this is purely advisory.
const WarnWeightOver100 Warning = "total item weight exceeds 100%"
