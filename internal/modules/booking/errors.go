package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("booking not found")
	ErrForbidden           = errors.New("forbidden")
	ErrOutsideAvailability = errors.New("outside provider availability")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// SlotUnavailableError reports a conflict with an existing booking,
// naming the overlapping interval.
type SlotUnavailableError struct {
	ConflictStart time.Time
	ConflictEnd   time.Time
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot unavailable: conflicts with booking %s - %s",
		e.ConflictStart.Format(time.RFC3339), e.ConflictEnd.Format(time.RFC3339))
}
