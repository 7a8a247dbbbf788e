package order

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/staff"
)

// ErrInvalidTransition is the sentinel for rejected status transitions:
// the requested status is not reachable from the current one, or the
// acting role is not authorized for that edge. Use errors.Is to classify.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError reports a rejected status transition with full context:
// where the order was, where the actor tried to take it, and as whom.
// It follows the same sentinel + struct + cause pattern as package errs.
type InvalidTransitionError struct {
	From  Status
	To    Status
	Role  staff.Role
	Cause error
}

// NewInvalidTransitionError creates an InvalidTransitionError without an underlying cause.
func NewInvalidTransitionError(from Status, to Status, role staff.Role) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError wrapping an underlying cause.
func NewInvalidTransitionErrorWithCause(from Status, to Status, role staff.Role, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Role: role, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s -> %s as %s (cause: %s)",
			ErrInvalidTransition, e.From, e.To, e.Role, e.Cause)
	}
	return fmt.Sprintf("%s: %s -> %s as %s", ErrInvalidTransition, e.From, e.To, e.Role)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
