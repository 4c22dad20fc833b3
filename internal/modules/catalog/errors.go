package catalog

import "errors"

var (
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrNotVerified  = errors.New("baker profile is not verified")
	ErrBakeryExists = errors.New("baker already has a bakery")
	ErrValidation   = errors.New("validation error")
)
