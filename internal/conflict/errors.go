package conflict

import (
	"errors"
	"fmt"
)

// ErrGroupNotChecked is returned when asking for a group that was never
// evaluated, for example an ignored constraint group.
var ErrGroupNotChecked = errors.New("group not checked")

// ValidationError describes a malformed record or constraint group.
type ValidationError struct {
	Kind   string
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s %s", e.Kind, e.ID, e.Field, e.Reason)
}
