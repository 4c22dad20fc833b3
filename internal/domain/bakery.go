package domain

import "time"

type Bakery struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Address     string     `json:"address"`
	District    string     `json:"district,omitempty"`
	City        string     `json:"city"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Website     string     `json:"website,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsOpen      bool       `json:"is_open"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Owner    *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:BakeryID"`
}

type Product struct {
	ID          int64     `json:"id"`
	BakeryID    int64     `json:"bakery_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price" validate:"required,gte=0"`
	ImageURL    string    `json:"image_url,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
