package models

import (
	"errors"
	"fmt"
)

// Domain-level error kinds. Every failure returned by the tracker matches
// exactly one of these through errors.Is; storage failures match none.
var (
	// ErrNotFound indicates the entity does not exist or is not owned by the caller
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition indicates a session state machine precondition was violated
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrConflict indicates a second active session for the same work item
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates malformed input
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized indicates the request carries no resolved owner
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError names the offending input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports an event that is not legal from the current status
type TransitionError struct {
	From  SessionStatus
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a session that is %s", e.Event, e.From)
}

// Is makes TransitionError match ErrInvalidTransition
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
