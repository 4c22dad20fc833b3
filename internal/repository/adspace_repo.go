package repository

import (
	"context"

	"gorm.io/gorm"

	"panedelivery/internal/domain"
)

type AdSpaceRepository struct {
	db *gorm.DB
}

func NewAdSpaceRepository(db *gorm.DB) *AdSpaceRepository {
	return &AdSpaceRepository{db: db}
}

func (r *AdSpaceRepository) DB() *gorm.DB { return r.db }

func (r *AdSpaceRepository) Create(ctx context.Context, a *domain.AdSpace) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AdSpaceRepository) GetByID(ctx context.Context, id int64) (*domain.AdSpace, error) {
	var a domain.AdSpace
	tx := r.db.WithContext(ctx).First(&a, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &a, nil
}

func (r *AdSpaceRepository) List(ctx context.Context) ([]domain.AdSpace, error) {
	var spaces []domain.AdSpace
	tx := r.db.WithContext(ctx).Order("page, card_index").Find(&spaces)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return spaces, nil
}

// ListByPage returns the spaces of one application page in card order.
func (r *AdSpaceRepository) ListByPage(ctx context.Context, page string) ([]domain.AdSpace, error) {
	var spaces []domain.AdSpace
	tx := r.db.WithContext(ctx).
		Where("page = ?", page).
		Order("card_index").
		Find(&spaces)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return spaces, nil
}
