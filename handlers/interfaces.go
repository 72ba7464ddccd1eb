package handlers

import (
	"context"
	"net/http"

	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/services"
	"github.com/binna/binna-backend/types"
)

// AuthServiceInterface is the session surface used by AuthHandler.
type AuthServiceInterface interface {
	Login(ctx context.Context, w http.ResponseWriter, req *types.LoginRequest) (*types.AuthResponse, error)
	SyncLogin(ctx context.Context, w http.ResponseWriter, req *types.SyncLoginRequest) (*types.AuthResponse, error)
	Refresh(ctx context.Context, w http.ResponseWriter, r *http.Request, refreshToken string) (*types.AuthResponse, error)
	Logout(ctx context.Context, w http.ResponseWriter, accessToken string)
	SessionInfo(session *auth.Session) *types.SessionResponse
}

type CartServiceInterface interface {
	GetCart(ctx context.Context, userID string) (*types.CartSummary, error)
	AddItem(ctx context.Context, userID string, req *types.AddCartItemRequest) (*types.CartItem, error)
	UpdateItem(ctx context.Context, userID, itemID string, req *types.UpdateCartItemRequest) (*types.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type OrderServiceInterface interface {
	Checkout(ctx context.Context, userID string, req *types.CheckoutRequest) ([]*types.Order, error)
	ListUserOrders(ctx context.Context, userID string, filter types.OrderFilter) ([]*types.Order, int, error)
	GetUserOrder(ctx context.Context, userID, orderID string) (*types.Order, error)
	CancelUserOrder(ctx context.Context, userID, orderID string) (*types.Order, error)
	ListStoreOrders(ctx context.Context, storeID string, filter types.OrderFilter) ([]*types.Order, int, error)
	GetStoreOrder(ctx context.Context, storeID, orderID string) (*types.Order, error)
	UpdateStoreOrderStatus(ctx context.Context, storeID, orderID string, next types.OrderStatus) (*types.Order, error)
}

type ProductServiceInterface interface {
	ListProducts(ctx context.Context, filter types.ProductFilter) ([]*types.Product, int, error)
	GetProduct(ctx context.Context, id string) (*types.Product, error)
	ListStoreProducts(ctx context.Context, storeID string, page types.Page) ([]*types.Product, int, error)
	CreateProduct(ctx context.Context, storeID string, in *types.ProductCreate) (*types.Product, error)
	UpdateProduct(ctx context.Context, storeID, id string, update *types.ProductUpdate) (*types.Product, error)
	DeleteProduct(ctx context.Context, storeID, id string) error
}

type DashboardServiceInterface interface {
	UserDashboard(ctx context.Context, userID string) (*types.UserDashboard, error)
	StoreDashboard(ctx context.Context, storeID string) (*types.StoreDashboard, error)
}

type ProjectServiceInterface interface {
	ListProjects(ctx context.Context, userID string, page types.Page) ([]*types.Project, int, error)
	CreateProject(ctx context.Context, userID string, in *types.ProjectCreate) (*types.Project, error)
	GetProject(ctx context.Context, userID, projectID string) (*types.Project, error)
	UpdateProject(ctx context.Context, userID, projectID string, update *types.ProjectUpdate) (*types.Project, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
	Summary(ctx context.Context, userID, projectID string) (*types.ProjectSummary, error)
	ListExpenses(ctx context.Context, userID, projectID string) ([]*types.ConstructionExpense, error)
	AddExpense(ctx context.Context, userID, projectID string, in *types.ExpenseCreate) (*types.ConstructionExpense, error)
	ListCategories(ctx context.Context) ([]*types.ConstructionCategory, error)
	AssignSupervisor(ctx context.Context, userID, projectID, supervisorID string) (*types.Project, error)
}

type StorefrontServiceInterface interface {
	ListStorefronts(ctx context.Context, filter types.StorefrontFilter) ([]*types.Storefront, int, error)
	GetStorefront(ctx context.Context, id string) (*types.Storefront, error)
	CreateStorefront(ctx context.Context, ownerID string, in *types.StorefrontCreate) (*types.Storefront, error)
	GetOwnStorefront(ctx context.Context, ownerID string) (*types.Storefront, error)
	UpdateOwnStorefront(ctx context.Context, ownerID string, update *types.StorefrontUpdate) (*types.Storefront, error)
}

type SupervisorServiceInterface interface {
	ListSupervisors(ctx context.Context, filter types.SupervisorFilter) ([]*types.Supervisor, int, error)
	GetSupervisor(ctx context.Context, id string) (*types.Supervisor, error)
	UpsertProfile(ctx context.Context, userID string, in *types.SupervisorUpsert) (*types.Supervisor, error)
}

type WarrantyServiceInterface interface {
	IssueWarranty(ctx context.Context, storeID string, in *types.WarrantyCreate) (*types.Warranty, error)
	ListUserWarranties(ctx context.Context, userID string, page types.Page) ([]*types.Warranty, int, error)
	GetUserWarranty(ctx context.Context, userID, id string) (*types.Warranty, error)
}

type InvoiceServiceInterface interface {
	Upload(ctx context.Context, storeID, orderID string, upload services.InvoiceUpload) (*types.Invoice, error)
	ListUserInvoices(ctx context.Context, userID string, page types.Page) ([]*types.Invoice, int, error)
	GetInvoice(ctx context.Context, viewer services.InvoiceViewer, id string) (*types.Invoice, error)
}

type UserServiceInterface interface {
	GetMe(ctx context.Context, userID string) (*types.User, error)
	UpdateMe(ctx context.Context, userID string, update *types.UserUpdate) (*types.User, error)
}

// MedusaCatalog is the read-only Medusa admin client.
type MedusaCatalog interface {
	ListProducts(ctx context.Context, q types.MedusaQuery) (*types.MedusaList[types.MedusaProduct], error)
	GetProduct(ctx context.Context, id string) (*types.MedusaProduct, error)
	ListInventoryItems(ctx context.Context, q types.MedusaQuery) (*types.MedusaList[types.MedusaInventoryItem], error)
	ListOrders(ctx context.Context, q types.MedusaQuery) (*types.MedusaList[types.MedusaOrder], error)
}

type HealthServiceInterface interface {
	CheckHealth(ctx context.Context) types.HealthCheck
	Ready(ctx context.Context) bool
}
