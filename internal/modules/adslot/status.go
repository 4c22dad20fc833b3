package adslot

import (
	"time"

	"panedelivery/internal/domain"
)

// DisplayStatus is what an agenda viewer sees for one slot key. It is
// derived, never stored: a reserved row past its hold window reads as
// available even though the row still exists.
type DisplayStatus string

const (
	StatusAvailable  DisplayStatus = "available"
	StatusSelected   DisplayStatus = "selected"
	StatusBooked     DisplayStatus = "booked"
	StatusProcessing DisplayStatus = "processing"
	StatusApproved   DisplayStatus = "approved"
)

// DeriveStatus projects a stored booking onto the viewer's agenda.
// Pure: it runs on every agenda read and on every pushed update.
//
//   - no booking → available
//   - processing/approved → shown as such to everyone
//   - reserved, expired → available regardless of owner
//   - reserved, owned by viewer → selected
//   - reserved, someone else's → booked
//   - anything else (rejected) → booked; the owner learns the real
//     state from their own booking list, not from the agenda grid
func DeriveStatus(b *domain.SlotBooking, now time.Time, viewerID int64) DisplayStatus {
	if b == nil {
		return StatusAvailable
	}

	switch b.Status {
	case domain.SlotProcessing:
		return StatusProcessing
	case domain.SlotApproved:
		return StatusApproved
	case domain.SlotReserved:
		if b.HoldExpired(now) {
			return StatusAvailable
		}
		if b.SponsorID == viewerID {
			return StatusSelected
		}
		return StatusBooked
	default:
		return StatusBooked
	}
}
