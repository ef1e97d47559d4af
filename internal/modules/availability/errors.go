package availability

import (
	"errors"
	"fmt"

	"doulabook/internal/domain"
)

var ErrValidation = errors.New("validation error")

// DayError is a validation failure pinned to one day of the submitted
// weekly schedule.
type DayError struct {
	Day    int
	Reason string
}

func (e *DayError) Error() string {
	return fmt.Sprintf("%s: %s", domain.DayName(e.Day), e.Reason)
}

func (e *DayError) Unwrap() error { return ErrValidation }
