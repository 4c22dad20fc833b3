package order

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("order not found")
	ErrForbidden               = errors.New("forbidden")
	ErrProductUnavailable      = errors.New("product unavailable")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
