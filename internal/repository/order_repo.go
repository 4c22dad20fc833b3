package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"panedelivery/internal/domain"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) DB() *gorm.DB { return r.db }

// Create persists the order together with its line items in one
// transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := o.Items
		o.Items = nil
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		o.Items = items
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	tx := r.db.WithContext(ctx).Preload("Items").First(&o, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &o, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	tx := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return orders, nil
}

func (r *OrderRepository) ListByBakery(ctx context.Context, bakeryID int64, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	tx := r.db.WithContext(ctx).
		Preload("Items").
		Where("bakery_id = ?", bakeryID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

func (r *OrderRepository) CancelWithReason(ctx context.Context, orderID int64, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"status":              domain.OrderCancelled,
			"cancellation_reason": reason,
			"cancelled_at":        &now,
		}).Error
}
