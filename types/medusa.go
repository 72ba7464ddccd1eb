package types

import "time"

// Medusa admin API shapes. Only the fields the admin views show are mapped.

type MedusaProduct struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Handle    string          `json:"handle"`
	Status    string          `json:"status"`
	Thumbnail string          `json:"thumbnail,omitempty"`
	Variants  []MedusaVariant `json:"variants,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type MedusaVariant struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	SKU               string `json:"sku,omitempty"`
	ManageInventory   bool   `json:"manage_inventory"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

type MedusaInventoryLevel struct {
	LocationID        string `json:"location_id"`
	StockedQuantity   int    `json:"stocked_quantity"`
	ReservedQuantity  int    `json:"reserved_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
}

type MedusaInventoryItem struct {
	ID             string                 `json:"id"`
	SKU            string                 `json:"sku,omitempty"`
	Title          string                 `json:"title,omitempty"`
	LocationLevels []MedusaInventoryLevel `json:"location_levels,omitempty"`
}

type MedusaOrder struct {
	ID           string    `json:"id"`
	DisplayID    int       `json:"display_id"`
	Status       string    `json:"status"`
	Email        string    `json:"email"`
	CurrencyCode string    `json:"currency_code"`
	Total        float64   `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
}

// MedusaList is the common list envelope of the Medusa admin API.
type MedusaList[T any] struct {
	Items  []T `json:"items"`
	Count  int `json:"count"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// MedusaQuery narrows an admin listing.
type MedusaQuery struct {
	Query string `form:"q"`
	Page
}
