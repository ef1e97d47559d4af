package payment

import "errors"

var (
	ErrNotFound     = errors.New("booking not found")
	ErrForbidden    = errors.New("forbidden")
	ErrNotPayable   = errors.New("booking is not payable")
	ErrBadSignature = errors.New("invalid webhook signature")
)
