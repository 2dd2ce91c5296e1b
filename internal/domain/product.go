package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	OwnerID     int64           `json:"-"`
	Name        string          `json:"name"`
	Color       *string         `json:"color,omitempty"`
	Size        *string         `json:"size,omitempty"`
	Dimensions  *string         `json:"dimensions,omitempty"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Color       *string         `json:"color" validate:"omitempty,max=50"`
	Size        *string         `json:"size" validate:"omitempty,max=10"`
	Dimensions  *string         `json:"dimensions" validate:"omitempty,max=255"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
}
