package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by document stores when no document exists at
// the requested key. Services translate it into a not-found result
// rather than surfacing it to callers as a failure.
var ErrNotFound = errors.New("not found")

// ValidationError reports a user document that failed the validity
// invariant. It is fatal for the triggering call and distinct from both
// absence and storage transport failures.
type ValidationError struct {
	Reason string
}

// NewValidationError creates a ValidationError with the given reason.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid user data: %s", e.Reason)
}
