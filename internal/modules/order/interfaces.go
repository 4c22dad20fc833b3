package order

import (
	"context"

	"panedelivery/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error)
	ListByBakery(ctx context.Context, bakeryID int64, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	CancelWithReason(ctx context.Context, orderID int64, reason string) error
}

type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

type BakeryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Bakery, error)
}
