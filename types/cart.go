package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a cart line joined with the product it points at.
type CartItem struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	ProductName   string          `json:"product_name"`
	StoreID       string          `json:"store_id"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url,omitempty"`
	IsAvailable   bool            `json:"is_available"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LineTotal is quantity times unit price.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSummary is the priced view of a user's cart.
type CartSummary struct {
	Items     []*CartItem     `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=10000"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=10000"`
}
