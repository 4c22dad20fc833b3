package repository

import (
	"context"

	"gorm.io/gorm"

	"panedelivery/internal/domain"
)

type ImpressionRepository struct {
	db *gorm.DB
}

func NewImpressionRepository(db *gorm.DB) *ImpressionRepository {
	return &ImpressionRepository{db: db}
}

// Create stores one delivered event. Redeliveries are dropped via the
// unique event id.
func (r *ImpressionRepository) Create(ctx context.Context, imp *domain.AdImpression) error {
	err := r.db.WithContext(ctx).Create(imp).Error
	if isDuplicateKey(err) {
		return nil
	}
	return err
}

// CountBySpace returns impressions and clicks for one ad space.
func (r *ImpressionRepository) CountBySpace(ctx context.Context, adSpaceID int64) (impressions, clicks int64, err error) {
	err = r.db.WithContext(ctx).Model(&domain.AdImpression{}).
		Where("ad_space_id = ? AND kind = ?", adSpaceID, domain.AdEventImpression).
		Count(&impressions).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&domain.AdImpression{}).
		Where("ad_space_id = ? AND kind = ?", adSpaceID, domain.AdEventClick).
		Count(&clicks).Error
	if err != nil {
		return 0, 0, err
	}
	return impressions, clicks, nil
}
