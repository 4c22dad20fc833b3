package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"panedelivery/internal/domain"
)

type BakeryRepository struct {
	db *gorm.DB
}

func NewBakeryRepository(db *gorm.DB) *BakeryRepository {
	return &BakeryRepository{db: db}
}

func (r *BakeryRepository) DB() *gorm.DB { return r.db }

func (r *BakeryRepository) Create(ctx context.Context, b *domain.Bakery) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BakeryRepository) GetByID(ctx context.Context, id int64) (*domain.Bakery, error) {
	var b domain.Bakery
	tx := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

func (r *BakeryRepository) GetWithProducts(ctx context.Context, id int64) (*domain.Bakery, error) {
	var b domain.Bakery
	tx := r.db.WithContext(ctx).
		Preload("Products", "available = ?", true).
		Where("deleted_at IS NULL").
		First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

// GetByOwner returns nil, nil when the owner has no bakery yet.
func (r *BakeryRepository) GetByOwner(ctx context.Context, ownerID int64) (*domain.Bakery, error) {
	var b domain.Bakery
	tx := r.db.WithContext(ctx).
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		First(&b)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &b, nil
}

// ListVerified returns bakeries whose owners passed admin verification.
func (r *BakeryRepository) ListVerified(ctx context.Context, city string, limit, offset int) ([]domain.Bakery, int64, error) {
	q := r.db.WithContext(ctx).
		Table("bakeries").
		Joins("JOIN users u ON u.id = bakeries.owner_id").
		Where("u.profile_status = ? AND bakeries.deleted_at IS NULL", domain.StatusVerified)
	if city != "" {
		q = q.Where("bakeries.city = ?", city)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bakeries []domain.Bakery
	if err := q.Order("bakeries.created_at DESC").Limit(limit).Offset(offset).Find(&bakeries).Error; err != nil {
		return nil, 0, err
	}
	return bakeries, total, nil
}

func (r *BakeryRepository) Update(ctx context.Context, b *domain.Bakery) error {
	return r.db.WithContext(ctx).Save(b).Error
}
