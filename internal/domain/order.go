package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID                 int64       `json:"id"`
	Number             string      `json:"number"`
	CustomerID         int64       `json:"customer_id" validate:"required"`
	BakeryID           int64       `json:"bakery_id" validate:"required"`
	Status             OrderStatus `json:"status"`
	TotalPrice         float64     `json:"total_price"`
	DeliveryAddress    string      `json:"delivery_address,omitempty"`
	Notes              string      `json:"notes,omitempty" gorm:"type:text"`
	CancellationReason string      `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	CancelledAt        *time.Time  `json:"cancelled_at,omitempty"`

	Items    []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Customer *User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Bakery   *Bakery     `json:"bakery,omitempty" gorm:"foreignKey:BakeryID"`
}

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id" validate:"required"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}
