package review

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("booking not found")
	ErrNotEligible = errors.New("not eligible to review")
)
