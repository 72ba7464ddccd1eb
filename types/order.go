package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsOpen reports whether the order still awaits delivery.
func (s OrderStatus) IsOpen() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed || s == OrderStatusShipped
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	StoreID         string          `json:"store_id"`
	ProjectID       *string         `json:"project_id,omitempty"`
	Status          OrderStatus     `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shipping_address"`
	Notes           string          `json:"notes,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// HasProduct reports whether the order contains productID.
func (o *Order) HasProduct(productID string) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

type CheckoutRequest struct {
	ShippingAddress string  `json:"shipping_address" binding:"required,min=5,max=500"`
	Notes           string  `json:"notes" binding:"max=1000"`
	ProjectID       *string `json:"project_id,omitempty" binding:"omitempty,uuid"`
}

type OrderStatusUpdate struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status OrderStatus `form:"status"`
	Page
}

// OrderStats is one consistent aggregate over a set of orders.
type OrderStats struct {
	Count     int             `json:"orders_count"`
	Open      int             `json:"pending_orders"`
	Completed int             `json:"completed_orders"`
	Amount    decimal.Decimal `json:"amount"`
}
