package repository

import (
	"context"

	"gorm.io/gorm"

	"panedelivery/internal/domain"
)

// PlatformCounts is the admin dashboard summary.
type PlatformCounts struct {
	Users    int64 `json:"users"`
	Bakeries int64 `json:"bakeries"`
	Orders   int64 `json:"orders"`
	Bookings int64 `json:"bookings"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) PlatformCounts(ctx context.Context) (*PlatformCounts, error) {
	counts := &PlatformCounts{}

	tables := []struct {
		model any
		dest  *int64
	}{
		{&domain.User{}, &counts.Users},
		{&domain.Bakery{}, &counts.Bakeries},
		{&domain.Order{}, &counts.Orders},
		{&domain.SlotBooking{}, &counts.Bookings},
	}
	for _, t := range tables {
		if err := r.db.WithContext(ctx).Model(t.model).Count(t.dest).Error; err != nil {
			return nil, err
		}
	}
	return counts, nil
}
