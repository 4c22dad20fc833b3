package admin

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation error")
	ErrSlotConflict = errors.New("booking changed underneath the review")
	ErrSlotState    = errors.New("booking is not in the review queue")
)
