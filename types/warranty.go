package types

import "time"

type WarrantyStatus string

const (
	WarrantyStatusActive  WarrantyStatus = "active"
	WarrantyStatusExpired WarrantyStatus = "expired"
)

type Warranty struct {
	ID          string         `json:"id"`
	OrderID     string         `json:"order_id"`
	ProductID   string         `json:"product_id"`
	ProductName string         `json:"product_name,omitempty"`
	UserID      string         `json:"user_id"`
	StoreID     string         `json:"store_id"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Terms       string         `json:"terms,omitempty"`
	Status      WarrantyStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

// StatusAt derives the warranty state at the given instant.
func (w *Warranty) StatusAt(now time.Time) WarrantyStatus {
	if now.After(w.EndDate) {
		return WarrantyStatusExpired
	}
	return WarrantyStatusActive
}

type WarrantyCreate struct {
	OrderID        string `json:"order_id" binding:"required,uuid"`
	ProductID      string `json:"product_id" binding:"required,uuid"`
	DurationMonths int    `json:"duration_months" binding:"required,min=1,max=120"`
	Terms          string `json:"terms" binding:"max=4000"`
}
