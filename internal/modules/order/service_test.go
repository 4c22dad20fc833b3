package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"panedelivery/internal/domain"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	if o != nil {
		o.ID = 501
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByBakery(ctx context.Context, bakeryID int64, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, bakeryID, limit, offset)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) CancelWithReason(ctx context.Context, orderID int64, reason string) error {
	args := m.Called(ctx, orderID, reason)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockBakeryRepository struct {
	mock.Mock
}

func (m *MockBakeryRepository) GetByID(ctx context.Context, id int64) (*domain.Bakery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bakery), args.Error(1)
}

func TestPlaceOrder_TotalFromCurrentPrices(t *testing.T) {
	bakeries := new(MockBakeryRepository)
	bakeries.On("GetByID", mock.Anything, int64(1)).Return(&domain.Bakery{ID: 1, OwnerID: 5}, nil)

	products := new(MockProductRepository)
	products.On("GetByIDs", mock.Anything, []int64{21, 22}).Return([]domain.Product{
		{ID: 21, BakeryID: 1, Name: "Zopf", Price: 6.5, Available: true},
		{ID: 22, BakeryID: 1, Name: "Gipfeli", Price: 1.4, Available: true},
	}, nil)

	orders := new(MockOrderRepository)
	orders.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(orders, products, bakeries)

	o, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderRequest{
		BakeryID:        1,
		DeliveryAddress: "Bahnhofstrasse 2",
		Items: []ItemRequest{
			{ProductID: 21, Quantity: 1},
			{ProductID: 22, Quantity: 4},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 12.1, o.TotalPrice)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Len(t, o.Items, 2)
	assert.NotEmpty(t, o.Number)
}

func TestPlaceOrder_UnavailableProduct(t *testing.T) {
	bakeries := new(MockBakeryRepository)
	bakeries.On("GetByID", mock.Anything, int64(1)).Return(&domain.Bakery{ID: 1}, nil)

	products := new(MockProductRepository)
	products.On("GetByIDs", mock.Anything, []int64{21}).Return([]domain.Product{
		{ID: 21, BakeryID: 1, Price: 6.5, Available: false},
	}, nil)

	svc := NewService(new(MockOrderRepository), products, bakeries)

	_, err := svc.PlaceOrder(context.Background(), 7, PlaceOrderRequest{
		BakeryID:        1,
		DeliveryAddress: "Bahnhofstrasse 2",
		Items:           []ItemRequest{{ProductID: 21, Quantity: 1}},
	})

	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestUpdateStatus_OnlyForwardTransitions(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("GetByID", mock.Anything, int64(501)).
		Return(&domain.Order{ID: 501, BakeryID: 1, Status: domain.OrderCompleted}, nil)

	bakeries := new(MockBakeryRepository)
	bakeries.On("GetByID", mock.Anything, int64(1)).Return(&domain.Bakery{ID: 1, OwnerID: 5}, nil)

	svc := NewService(orders, new(MockProductRepository), bakeries)

	_, err := svc.UpdateStatus(context.Background(), 5, 501, domain.OrderConfirmed)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestCancel_RequiresReasonAndPending(t *testing.T) {
	orders := new(MockOrderRepository)
	orders.On("GetByID", mock.Anything, int64(501)).
		Return(&domain.Order{ID: 501, CustomerID: 7, Status: domain.OrderConfirmed}, nil)

	svc := NewService(orders, new(MockProductRepository), new(MockBakeryRepository))

	_, err := svc.Cancel(context.Background(), 7, 501, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Cancel(context.Background(), 7, 501, "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}
