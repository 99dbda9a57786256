package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveChairs means slot generation was requested for a salon
	// with no active chairs to assign slots to.
	ErrNoActiveChairs = errors.New("no active chairs configured")

	// ErrInsufficientCapacity means the consecutive free slots following
	// a booking do not cover the requested service duration.
	ErrInsufficientCapacity = errors.New("not enough consecutive free slots available")

	// ErrRuleOverlap means a weekly rule range intersects an existing
	// range on the same weekday.
	ErrRuleOverlap = errors.New("time range overlaps an existing rule for this weekday")
)

// ValidationError is a user-facing input problem; nothing was written.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DurationMismatchError is returned when the selected services need more
// time than the slot currently covers. The caller surfaces both numbers
// so the user can choose to extend the slot or absorb the following ones.
type DurationMismatchError struct {
	RequiredMinutes  int
	AllocatedMinutes int
}

func (e *DurationMismatchError) Error() string {
	return fmt.Sprintf("services need %d minutes but the slot covers %d", e.RequiredMinutes, e.AllocatedMinutes)
}
