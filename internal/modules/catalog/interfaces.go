package catalog

import (
	"context"

	"panedelivery/internal/domain"
)

type BakeryRepository interface {
	Create(ctx context.Context, b *domain.Bakery) error
	GetByID(ctx context.Context, id int64) (*domain.Bakery, error)
	GetWithProducts(ctx context.Context, id int64) (*domain.Bakery, error)
	GetByOwner(ctx context.Context, ownerID int64) (*domain.Bakery, error)
	ListVerified(ctx context.Context, city string, limit, offset int) ([]domain.Bakery, int64, error)
	Update(ctx context.Context, b *domain.Bakery) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ListByBakery(ctx context.Context, bakeryID int64) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
