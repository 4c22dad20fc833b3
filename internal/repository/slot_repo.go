package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"panedelivery/internal/domain"
)

// SlotBookingRepository owns all writes to slot_bookings. The table has
// one row per claimed slot key and a version column; every update is a
// single guarded statement, so two concurrent writers can never both
// succeed on the same row.
type SlotBookingRepository struct {
	db *gorm.DB
}

func NewSlotBookingRepository(db *gorm.DB) *SlotBookingRepository {
	return &SlotBookingRepository{db: db}
}

func (r *SlotBookingRepository) DB() *gorm.DB { return r.db }

// Get returns nil, nil when the slot key has no booking.
func (r *SlotBookingRepository) Get(ctx context.Context, adSpaceID int64, slotKey string) (*domain.SlotBooking, error) {
	var b domain.SlotBooking
	tx := r.db.WithContext(ctx).
		Where("ad_space_id = ? AND slot_key = ?", adSpaceID, slotKey).
		First(&b)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &b, nil
}

// Insert claims a previously empty slot. The composite primary key
// rejects a second claimant with ErrDuplicateSlot.
func (r *SlotBookingRepository) Insert(ctx context.Context, b *domain.SlotBooking) error {
	err := r.db.WithContext(ctx).Create(b).Error
	if isDuplicateKey(err) {
		return ErrDuplicateSlot
	}
	return err
}

// ReclaimExpired overwrites an expired reserved row with a fresh hold
// for a new claimant. The guard re-checks status, expiry and version so
// a concurrent claim, release or purchase makes this fail with
// ErrStaleSlot instead of clobbering it.
func (r *SlotBookingRepository) ReclaimExpired(ctx context.Context, b *domain.SlotBooking, prevVersion int64, now time.Time) error {
	cutoff := now.Add(-domain.HoldDuration)
	res := r.db.WithContext(ctx).Exec(`
UPDATE slot_bookings
SET status = ?, sponsor_id = ?, price = ?, reserved_at = ?,
    title = '', link = '', file_url = '', admin_comment = '',
    reviewed_at = NULL, reviewed_by = NULL,
    version = version + 1, updated_at = ?
WHERE ad_space_id = ? AND slot_key = ?
  AND status = ? AND reserved_at <= ? AND version = ?`,
		domain.SlotReserved, b.SponsorID, b.Price, b.ReservedAt, now,
		b.AdSpaceID, b.SlotKey,
		domain.SlotReserved, cutoff, prevVersion,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleSlot
	}
	return nil
}

// DeleteReserved releases the sponsor's own still-held reservation.
func (r *SlotBookingRepository) DeleteReserved(ctx context.Context, adSpaceID int64, slotKey string, sponsorID, prevVersion int64) error {
	res := r.db.WithContext(ctx).Exec(`
DELETE FROM slot_bookings
WHERE ad_space_id = ? AND slot_key = ?
  AND sponsor_id = ? AND status = ? AND version = ?`,
		adSpaceID, slotKey, sponsorID, domain.SlotReserved, prevVersion,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleSlot
	}
	return nil
}

// ConvertReserved flips every unexpired reserved row the sponsor holds
// on one ad space to processing with an empty content placeholder, and
// reports how many rows qualified.
func (r *SlotBookingRepository) ConvertReserved(ctx context.Context, adSpaceID, sponsorID int64, now time.Time) (int64, error) {
	cutoff := now.Add(-domain.HoldDuration)
	res := r.db.WithContext(ctx).Exec(`
UPDATE slot_bookings
SET status = ?, title = '', link = '', file_url = '',
    version = version + 1, updated_at = ?
WHERE ad_space_id = ? AND sponsor_id = ?
  AND status = ? AND reserved_at > ?`,
		domain.SlotProcessing, now,
		adSpaceID, sponsorID,
		domain.SlotReserved, cutoff,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// UpdateContent overwrites the content sub-fields, forces the row back
// into processing and clears prior review metadata.
func (r *SlotBookingRepository) UpdateContent(ctx context.Context, b *domain.SlotBooking, prevVersion int64, now time.Time) error {
	res := r.db.WithContext(ctx).Exec(`
UPDATE slot_bookings
SET status = ?, title = ?, link = ?, file_url = ?,
    admin_comment = '', reviewed_at = NULL, reviewed_by = NULL,
    version = version + 1, updated_at = ?
WHERE ad_space_id = ? AND slot_key = ? AND version = ?`,
		domain.SlotProcessing, b.Title, b.Link, b.FileURL, now,
		b.AdSpaceID, b.SlotKey, prevVersion,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleSlot
	}
	return nil
}

// Review settles a processing row as approved or rejected.
func (r *SlotBookingRepository) Review(ctx context.Context, adSpaceID int64, slotKey string, status domain.SlotStatus, comment string, adminID int64, prevVersion int64, now time.Time) error {
	res := r.db.WithContext(ctx).Exec(`
UPDATE slot_bookings
SET status = ?, admin_comment = ?, reviewed_at = ?, reviewed_by = ?,
    version = version + 1, updated_at = ?
WHERE ad_space_id = ? AND slot_key = ?
  AND status = ? AND version = ?`,
		status, comment, now, adminID, now,
		adSpaceID, slotKey,
		domain.SlotProcessing, prevVersion,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleSlot
	}
	return nil
}

// ListBySpaceDay returns every booking of one ad space for one calendar
// day (slot keys are prefixed by the date).
func (r *SlotBookingRepository) ListBySpaceDay(ctx context.Context, adSpaceID int64, day string) ([]domain.SlotBooking, error) {
	var bookings []domain.SlotBooking
	tx := r.db.WithContext(ctx).
		Where("ad_space_id = ? AND slot_key LIKE ?", adSpaceID, day+"%").
		Order("slot_key").
		Find(&bookings)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bookings, nil
}

func (r *SlotBookingRepository) ListBySponsor(ctx context.Context, sponsorID int64) ([]domain.SlotBooking, error) {
	var bookings []domain.SlotBooking
	tx := r.db.WithContext(ctx).
		Where("sponsor_id = ?", sponsorID).
		Order("slot_key").
		Find(&bookings)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bookings, nil
}

// ListProcessing returns the admin review queue, oldest first.
func (r *SlotBookingRepository) ListProcessing(ctx context.Context, limit, offset int) ([]domain.SlotBooking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.SlotBooking{}).
		Where("status = ?", domain.SlotProcessing)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []domain.SlotBooking
	if err := q.Order("updated_at").Limit(limit).Offset(offset).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// GetApproved returns the approved booking at a slot key, nil when the
// slot has no approved content.
func (r *SlotBookingRepository) GetApproved(ctx context.Context, adSpaceID int64, slotKey string) (*domain.SlotBooking, error) {
	var b domain.SlotBooking
	tx := r.db.WithContext(ctx).
		Where("ad_space_id = ? AND slot_key = ? AND status = ?", adSpaceID, slotKey, domain.SlotApproved).
		First(&b)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &b, nil
}

// DeleteExpiredHolds removes reserved rows older than the hold window.
// Used by the reaper so abandoned holds do not sit in the table until
// somebody happens to reclaim the slot.
func (r *SlotBookingRepository) DeleteExpiredHolds(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-domain.HoldDuration)
	res := r.db.WithContext(ctx).Exec(`
DELETE FROM slot_bookings
WHERE status = ? AND reserved_at <= ?`,
		domain.SlotReserved, cutoff,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
