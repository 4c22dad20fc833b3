package adslot

import (
	"context"
	"time"

	"panedelivery/internal/domain"
)

// SlotRepository is the guarded write surface over slot_bookings. Every
// mutation is a single compare-and-swap statement in the repository, so
// two concurrent callers can never both win the same row.
type SlotRepository interface {
	Get(ctx context.Context, adSpaceID int64, slotKey string) (*domain.SlotBooking, error)
	Insert(ctx context.Context, b *domain.SlotBooking) error
	ReclaimExpired(ctx context.Context, b *domain.SlotBooking, prevVersion int64, now time.Time) error
	DeleteReserved(ctx context.Context, adSpaceID int64, slotKey string, sponsorID, prevVersion int64) error
	ConvertReserved(ctx context.Context, adSpaceID, sponsorID int64, now time.Time) (int64, error)
	UpdateContent(ctx context.Context, b *domain.SlotBooking, prevVersion int64, now time.Time) error
	ListBySpaceDay(ctx context.Context, adSpaceID int64, day string) ([]domain.SlotBooking, error)
	ListBySponsor(ctx context.Context, sponsorID int64) ([]domain.SlotBooking, error)
	GetApproved(ctx context.Context, adSpaceID int64, slotKey string) (*domain.SlotBooking, error)
}

type AdSpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AdSpace, error)
	List(ctx context.Context) ([]domain.AdSpace, error)
	ListByPage(ctx context.Context, page string) ([]domain.AdSpace, error)
}

// SlotNotifier pushes slot state changes to agenda subscribers. A
// refresh tells them to re-read the whole day.
type SlotNotifier interface {
	BroadcastSlot(adSpaceID int64, slotKey, status string)
	BroadcastRefresh(adSpaceID int64)
}

// Clock is injected so expiry rules are testable.
type Clock func() time.Time
