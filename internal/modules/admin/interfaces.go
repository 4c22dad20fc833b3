package admin

import (
	"context"
	"time"

	"panedelivery/internal/domain"
	"panedelivery/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListPendingByRoles(ctx context.Context, roles []string, limit, offset int) ([]domain.User, int64, error)
	UpdateProfileStatus(ctx context.Context, userID int64, status domain.ProfileStatus, reason string) error
}

type SlotRepository interface {
	Get(ctx context.Context, adSpaceID int64, slotKey string) (*domain.SlotBooking, error)
	ListProcessing(ctx context.Context, limit, offset int) ([]domain.SlotBooking, int64, error)
	Review(ctx context.Context, adSpaceID int64, slotKey string, status domain.SlotStatus, comment string, adminID int64, prevVersion int64, now time.Time) error
}

type ImpressionReader interface {
	CountBySpace(ctx context.Context, adSpaceID int64) (impressions, clicks int64, err error)
}

type StatsReader interface {
	PlatformCounts(ctx context.Context) (*repository.PlatformCounts, error)
}

type SlotNotifier interface {
	BroadcastSlot(adSpaceID int64, slotKey, status string)
}

type Clock func() time.Time
