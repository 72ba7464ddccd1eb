package types

import "github.com/shopspring/decimal"

type UserDashboard struct {
	OrdersCount     int             `json:"orders_count"`
	PendingOrders   int             `json:"pending_orders"`
	CompletedOrders int             `json:"completed_orders"`
	TotalSpent      decimal.Decimal `json:"total_spent"`
	ActiveProjects  int             `json:"active_projects"`
	CartItems       int             `json:"cart_items"`
	Currency        string          `json:"currency"`
	RecentOrders    []*Order        `json:"recent_orders"`
}

type StoreDashboard struct {
	StoreID         string          `json:"store_id"`
	OrdersCount     int             `json:"orders_count"`
	PendingOrders   int             `json:"pending_orders"`
	CompletedOrders int             `json:"completed_orders"`
	Revenue         decimal.Decimal `json:"revenue"`
	ProductsCount   int             `json:"products_count"`
	LowStockCount   int             `json:"low_stock_count"`
	Currency        string          `json:"currency"`
	RecentOrders    []*Order        `json:"recent_orders"`
}

// InventoryStats is one consistent aggregate over a store's active products.
type InventoryStats struct {
	Products int `json:"products_count"`
	LowStock int `json:"low_stock_count"`
}
