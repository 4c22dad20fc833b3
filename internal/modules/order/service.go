package order

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"panedelivery/internal/domain"
)

type Service struct {
	orders   OrderRepository
	products ProductRepository
	bakeries BakeryRepository
}

func NewService(orders OrderRepository, products ProductRepository, bakeries BakeryRepository) *Service {
	return &Service{orders: orders, products: products, bakeries: bakeries}
}

// PlaceOrder computes the total from current product prices; client
// prices are never trusted.
func (s *Service) PlaceOrder(ctx context.Context, customerID int64, req PlaceOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrValidation
	}

	if _, err := s.bakeries.GetByID(ctx, req.BakeryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ids := make([]int64, 0, len(req.Items))
	quantities := make(map[int64]int, len(req.Items))
	for _, item := range req.Items {
		if quantities[item.ProductID] > 0 {
			return nil, ErrValidation
		}
		ids = append(ids, item.ProductID)
		quantities[item.ProductID] = item.Quantity
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, ErrProductUnavailable
	}

	var total float64
	items := make([]domain.OrderItem, 0, len(products))
	for _, p := range products {
		if !p.Available || p.BakeryID != req.BakeryID {
			return nil, ErrProductUnavailable
		}
		qty := quantities[p.ID]
		total += p.Price * float64(qty)
		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  qty,
		})
	}
	total = math.Round(total*100) / 100

	o := &domain.Order{
		Number:          orderNumber(),
		CustomerID:      customerID,
		BakeryID:        req.BakeryID,
		Status:          domain.OrderPending,
		TotalPrice:      total,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		Items:           items,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func orderNumber() string {
	return "PD-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *Service) MyOrders(ctx context.Context, customerID int64, page, limit int) ([]domain.Order, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.orders.ListByCustomer(ctx, customerID, limit, (page-1)*limit)
}

// BakeryOrders lists the incoming orders of the baker's own bakery.
func (s *Service) BakeryOrders(ctx context.Context, bakerID, bakeryID int64, page, limit int) ([]domain.Order, error) {
	bakery, err := s.bakeries.GetByID(ctx, bakeryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if bakery.OwnerID != bakerID {
		return nil, ErrForbidden
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.orders.ListByBakery(ctx, bakeryID, limit, (page-1)*limit)
}

// UpdateStatus is baker-only: pending → confirmed → completed.
func (s *Service) UpdateStatus(ctx context.Context, bakerID, orderID int64, newStatus domain.OrderStatus) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bakery, err := s.bakeries.GetByID(ctx, o.BakeryID)
	if err != nil {
		return nil, err
	}
	if bakery.OwnerID != bakerID {
		return nil, ErrForbidden
	}

	valid := (o.Status == domain.OrderPending && newStatus == domain.OrderConfirmed) ||
		(o.Status == domain.OrderConfirmed && newStatus == domain.OrderCompleted)
	if !valid {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.orders.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}

// Cancel lets the customer withdraw a still-pending order; the reason
// is mandatory.
func (s *Service) Cancel(ctx context.Context, customerID, orderID int64, reason string) (*domain.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrValidation
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, ErrForbidden
	}
	if o.Status != domain.OrderPending {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.orders.CancelWithReason(ctx, orderID, reason); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}
