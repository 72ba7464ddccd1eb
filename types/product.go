package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalogue item sold by a store.
type Product struct {
	ID            string          `json:"id"`
	StoreID       string          `json:"store_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductCreate is the payload for adding a product to a store.
type ProductCreate struct {
	Name          string          `json:"name" binding:"required,min=2,max=200"`
	Description   string          `json:"description" binding:"max=4000"`
	Category      string          `json:"category" binding:"max=100"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
	ImageURL      string          `json:"image_url" binding:"omitempty,url"`
}

// ProductUpdate changes only the non-nil fields.
type ProductUpdate struct {
	Name          *string          `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Description   *string          `json:"description,omitempty" binding:"omitempty,max=4000"`
	Category      *string          `json:"category,omitempty" binding:"omitempty,max=100"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty" binding:"omitempty,min=0"`
	ImageURL      *string          `json:"image_url,omitempty" binding:"omitempty,url"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// ProductFilter narrows the public catalogue listing.
type ProductFilter struct {
	StoreID  string `form:"store_id"`
	Category string `form:"category"`
	Query    string `form:"q"`
	Page
}
