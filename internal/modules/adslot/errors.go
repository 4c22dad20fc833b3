package adslot

import "errors"

var (
	// ErrSlotConflict means the slot is held by someone else or already
	// under admin control.
	ErrSlotConflict = errors.New("slot already reserved or in processing")

	ErrNoValidSlots = errors.New("no reserved slots to purchase")
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("booking not found")
	ErrForbidden    = errors.New("forbidden")
	ErrSlotState    = errors.New("booking is not editable in its current state")
)
