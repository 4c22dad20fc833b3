package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"panedelivery/internal/domain"
	"panedelivery/internal/pkg/validator"
)

type Service struct {
	bakeries BakeryRepository
	products ProductRepository
	users    UserRepository
}

func NewService(bakeries BakeryRepository, products ProductRepository, users UserRepository) *Service {
	return &Service{bakeries: bakeries, products: products, users: users}
}

/* ---------- BAKERY ---------- */

// CreateBakery is gated on the baker passing admin verification; one
// bakery per baker.
func (s *Service) CreateBakery(ctx context.Context, userID int64, req CreateBakeryRequest) (*domain.Bakery, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleBaker {
		return nil, ErrForbidden
	}
	if user.ProfileStatus != domain.StatusVerified {
		return nil, ErrNotVerified
	}

	existing, err := s.bakeries.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrBakeryExists
	}

	bakery := &domain.Bakery{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		District:    req.District,
		City:        req.City,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		ImageURL:    req.ImageURL,
		IsOpen:      true,
	}
	if fields := validator.Validate(bakery); fields != nil {
		return nil, ErrValidation
	}

	if err := s.bakeries.Create(ctx, bakery); err != nil {
		return nil, err
	}
	return bakery, nil
}

func (s *Service) UpdateBakery(ctx context.Context, userID, bakeryID int64, req UpdateBakeryRequest) (*domain.Bakery, error) {
	bakery, err := s.bakeries.GetByID(ctx, bakeryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if bakery.OwnerID != userID {
		return nil, ErrForbidden
	}

	bakery.Name = req.Name
	bakery.Description = req.Description
	if req.Address != "" {
		bakery.Address = req.Address
	}
	if req.City != "" {
		bakery.City = req.City
	}
	bakery.District = req.District
	bakery.Phone = req.Phone
	bakery.Email = req.Email
	bakery.Website = req.Website
	if req.ImageURL != "" {
		bakery.ImageURL = req.ImageURL
	}
	if req.IsOpen != nil {
		bakery.IsOpen = *req.IsOpen
	}

	if err := s.bakeries.Update(ctx, bakery); err != nil {
		return nil, err
	}
	return bakery, nil
}

func (s *Service) ListBakeries(ctx context.Context, city string, page, limit int) ([]domain.Bakery, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bakeries.ListVerified(ctx, city, limit, (page-1)*limit)
}

func (s *Service) GetBakery(ctx context.Context, id int64) (*domain.Bakery, error) {
	bakery, err := s.bakeries.GetWithProducts(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return bakery, nil
}

/* ---------- PRODUCTS ---------- */

func (s *Service) ownedBakery(ctx context.Context, userID, bakeryID int64) (*domain.Bakery, error) {
	bakery, err := s.bakeries.GetByID(ctx, bakeryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if bakery.OwnerID != userID {
		return nil, ErrForbidden
	}
	return bakery, nil
}

func (s *Service) CreateProduct(ctx context.Context, userID, bakeryID int64, req ProductRequest) (*domain.Product, error) {
	if _, err := s.ownedBakery(ctx, userID, bakeryID); err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	product := &domain.Product{
		BakeryID:    bakeryID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   available,
	}
	if fields := validator.Validate(product); fields != nil {
		return nil, ErrValidation
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, userID, productID int64, req ProductRequest) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := s.ownedBakery(ctx, userID, product.BakeryID); err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.ImageURL = req.ImageURL
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, userID, productID int64) error {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if _, err := s.ownedBakery(ctx, userID, product.BakeryID); err != nil {
		return err
	}

	return s.products.Delete(ctx, productID)
}

func (s *Service) ListProducts(ctx context.Context, bakeryID int64) ([]domain.Product, error) {
	return s.products.ListByBakery(ctx, bakeryID)
}
