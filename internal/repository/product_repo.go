package repository

import (
	"context"

	"gorm.io/gorm"

	"panedelivery/internal/domain"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	tx := r.db.WithContext(ctx).First(&p, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	var products []domain.Product
	tx := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return products, nil
}

func (r *ProductRepository) ListByBakery(ctx context.Context, bakeryID int64) ([]domain.Product, error) {
	var products []domain.Product
	tx := r.db.WithContext(ctx).
		Where("bakery_id = ?", bakeryID).
		Order("category, name").
		Find(&products)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}
