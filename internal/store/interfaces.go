// Package store declares the persistence contracts used by the services.
// The postgres subpackage implements them over pgx.
package store

import (
	"context"

	"github.com/binna/binna-backend/pkg/valueobjects"
	"github.com/binna/binna-backend/types"
)

type UserStore interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetAccountType(ctx context.Context, id string) (types.AccountType, error)
	UpdateUser(ctx context.Context, id string, update *types.UserUpdate) (*types.User, error)
}

type ProductStore interface {
	GetProduct(ctx context.Context, id string) (*types.Product, error)
	ListProducts(ctx context.Context, filter types.ProductFilter) ([]*types.Product, int, error)
	ListStoreProducts(ctx context.Context, storeID string, page types.Page) ([]*types.Product, int, error)
	CreateProduct(ctx context.Context, storeID string, p *types.ProductCreate) (*types.Product, error)
	UpdateProduct(ctx context.Context, storeID, id string, update *types.ProductUpdate) (*types.Product, error)
	DeactivateProduct(ctx context.Context, storeID, id string) error
	InventoryStats(ctx context.Context, storeID string, lowStockThreshold int) (*types.InventoryStats, error)
}

type CartStore interface {
	ListItems(ctx context.Context, userID string) ([]*types.CartItem, error)
	GetItem(ctx context.Context, userID, itemID string) (*types.CartItem, error)
	FindItemByProduct(ctx context.Context, userID, productID string) (*types.CartItem, error)
	// UpsertItem adds quantity to the user's line for productID, creating it if needed.
	UpsertItem(ctx context.Context, userID, productID string, quantity int) (*types.CartItem, error)
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
	CountItems(ctx context.Context, userID string) (int, error)
}

type OrderStore interface {
	// Checkout turns the user's cart into one order per store inside a
	// single transaction, locking and decrementing product stock.
	Checkout(ctx context.Context, userID string, req *types.CheckoutRequest, pricing valueobjects.TaxPolicy) ([]*types.Order, error)
	GetOrder(ctx context.Context, id string) (*types.Order, error)
	ListUserOrders(ctx context.Context, userID string, filter types.OrderFilter) ([]*types.Order, int, error)
	ListStoreOrders(ctx context.Context, storeID string, filter types.OrderFilter) ([]*types.Order, int, error)
	// UpdateStatus moves an order along the status machine under a row lock.
	// Cancelling restores product stock in the same transaction.
	UpdateStatus(ctx context.Context, id string, next types.OrderStatus) (*types.Order, types.OrderStatus, error)
	UserOrderStats(ctx context.Context, userID string) (*types.OrderStats, error)
	StoreOrderStats(ctx context.Context, storeID string) (*types.OrderStats, error)
}

type ProjectStore interface {
	CreateProject(ctx context.Context, userID string, p *types.ProjectCreate) (*types.Project, error)
	GetProject(ctx context.Context, id string) (*types.Project, error)
	ListProjects(ctx context.Context, userID string, page types.Page) ([]*types.Project, int, error)
	UpdateProject(ctx context.Context, id string, update *types.ProjectUpdate) (*types.Project, error)
	DeactivateProject(ctx context.Context, id string) error
	AssignSupervisor(ctx context.Context, id, supervisorID string) error
	CountActiveProjects(ctx context.Context, userID string) (int, error)
	ListCategories(ctx context.Context) ([]*types.ConstructionCategory, error)
	AddExpense(ctx context.Context, projectID string, e *types.ExpenseCreate) (*types.ConstructionExpense, error)
	ListExpenses(ctx context.Context, projectID string) ([]*types.ConstructionExpense, error)
	ExpenseTotals(ctx context.Context, projectID string) ([]types.CategoryTotal, error)
}

type StorefrontStore interface {
	CreateStorefront(ctx context.Context, ownerID string, s *types.StorefrontCreate) (*types.Storefront, error)
	GetStorefront(ctx context.Context, id string) (*types.Storefront, error)
	GetStorefrontByOwner(ctx context.Context, ownerID string) (*types.Storefront, error)
	ListStorefronts(ctx context.Context, filter types.StorefrontFilter) ([]*types.Storefront, int, error)
	UpdateStorefront(ctx context.Context, id string, update *types.StorefrontUpdate) (*types.Storefront, error)
}

type SupervisorStore interface {
	GetSupervisor(ctx context.Context, id string) (*types.Supervisor, error)
	ListSupervisors(ctx context.Context, filter types.SupervisorFilter) ([]*types.Supervisor, int, error)
	UpsertSupervisor(ctx context.Context, userID string, s *types.SupervisorUpsert) (*types.Supervisor, error)
}

type WarrantyStore interface {
	CreateWarranty(ctx context.Context, w *types.Warranty) (*types.Warranty, error)
	GetWarranty(ctx context.Context, id string) (*types.Warranty, error)
	ListUserWarranties(ctx context.Context, userID string, page types.Page) ([]*types.Warranty, int, error)
}

type InvoiceStore interface {
	CreateInvoice(ctx context.Context, inv *types.Invoice) (*types.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*types.Invoice, error)
	GetInvoiceByOrder(ctx context.Context, orderID string) (*types.Invoice, error)
	ListUserInvoices(ctx context.Context, userID string, page types.Page) ([]*types.Invoice, int, error)
}
