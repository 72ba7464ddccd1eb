package services

import (
	"context"
	"io"
	"sync"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/pkg/valueobjects"
	"github.com/binna/binna-backend/types"
	"github.com/stretchr/testify/mock"
)

type mockUserStore struct{ mock.Mock }

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*types.User)
	return u, args.Error(1)
}

func (m *mockUserStore) GetAccountType(ctx context.Context, id string) (types.AccountType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.AccountType), args.Error(1)
}

func (m *mockUserStore) UpdateUser(ctx context.Context, id string, update *types.UserUpdate) (*types.User, error) {
	args := m.Called(ctx, id, update)
	u, _ := args.Get(0).(*types.User)
	return u, args.Error(1)
}

type mockProductStore struct{ mock.Mock }

var _ store.ProductStore = (*mockProductStore)(nil)

func (m *mockProductStore) GetProduct(ctx context.Context, id string) (*types.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*types.Product)
	return p, args.Error(1)
}

func (m *mockProductStore) ListProducts(ctx context.Context, filter types.ProductFilter) ([]*types.Product, int, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*types.Product)
	return list, args.Int(1), args.Error(2)
}

func (m *mockProductStore) ListStoreProducts(ctx context.Context, storeID string, page types.Page) ([]*types.Product, int, error) {
	args := m.Called(ctx, storeID, page)
	list, _ := args.Get(0).([]*types.Product)
	return list, args.Int(1), args.Error(2)
}

func (m *mockProductStore) CreateProduct(ctx context.Context, storeID string, p *types.ProductCreate) (*types.Product, error) {
	args := m.Called(ctx, storeID, p)
	out, _ := args.Get(0).(*types.Product)
	return out, args.Error(1)
}

func (m *mockProductStore) UpdateProduct(ctx context.Context, storeID, id string, update *types.ProductUpdate) (*types.Product, error) {
	args := m.Called(ctx, storeID, id, update)
	out, _ := args.Get(0).(*types.Product)
	return out, args.Error(1)
}

func (m *mockProductStore) DeactivateProduct(ctx context.Context, storeID, id string) error {
	return m.Called(ctx, storeID, id).Error(0)
}

func (m *mockProductStore) InventoryStats(ctx context.Context, storeID string, threshold int) (*types.InventoryStats, error) {
	args := m.Called(ctx, storeID, threshold)
	s, _ := args.Get(0).(*types.InventoryStats)
	return s, args.Error(1)
}

type mockCartStore struct{ mock.Mock }

var _ store.CartStore = (*mockCartStore)(nil)

func (m *mockCartStore) ListItems(ctx context.Context, userID string) ([]*types.CartItem, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]*types.CartItem)
	return list, args.Error(1)
}

func (m *mockCartStore) GetItem(ctx context.Context, userID, itemID string) (*types.CartItem, error) {
	args := m.Called(ctx, userID, itemID)
	item, _ := args.Get(0).(*types.CartItem)
	return item, args.Error(1)
}

func (m *mockCartStore) FindItemByProduct(ctx context.Context, userID, productID string) (*types.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	item, _ := args.Get(0).(*types.CartItem)
	return item, args.Error(1)
}

func (m *mockCartStore) UpsertItem(ctx context.Context, userID, productID string, quantity int) (*types.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	item, _ := args.Get(0).(*types.CartItem)
	return item, args.Error(1)
}

func (m *mockCartStore) SetQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	return m.Called(ctx, userID, itemID, quantity).Error(0)
}

func (m *mockCartStore) RemoveItem(ctx context.Context, userID, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *mockCartStore) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCartStore) CountItems(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type mockOrderStore struct{ mock.Mock }

var _ store.OrderStore = (*mockOrderStore)(nil)

func (m *mockOrderStore) Checkout(ctx context.Context, userID string, req *types.CheckoutRequest, pricing valueobjects.TaxPolicy) ([]*types.Order, error) {
	args := m.Called(ctx, userID, req, pricing)
	list, _ := args.Get(0).([]*types.Order)
	return list, args.Error(1)
}

func (m *mockOrderStore) GetOrder(ctx context.Context, id string) (*types.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*types.Order)
	return o, args.Error(1)
}

func (m *mockOrderStore) ListUserOrders(ctx context.Context, userID string, filter types.OrderFilter) ([]*types.Order, int, error) {
	args := m.Called(ctx, userID, filter)
	list, _ := args.Get(0).([]*types.Order)
	return list, args.Int(1), args.Error(2)
}

func (m *mockOrderStore) ListStoreOrders(ctx context.Context, storeID string, filter types.OrderFilter) ([]*types.Order, int, error) {
	args := m.Called(ctx, storeID, filter)
	list, _ := args.Get(0).([]*types.Order)
	return list, args.Int(1), args.Error(2)
}

func (m *mockOrderStore) UpdateStatus(ctx context.Context, id string, next types.OrderStatus) (*types.Order, types.OrderStatus, error) {
	args := m.Called(ctx, id, next)
	o, _ := args.Get(0).(*types.Order)
	prev, _ := args.Get(1).(types.OrderStatus)
	return o, prev, args.Error(2)
}

func (m *mockOrderStore) UserOrderStats(ctx context.Context, userID string) (*types.OrderStats, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*types.OrderStats)
	return s, args.Error(1)
}

func (m *mockOrderStore) StoreOrderStats(ctx context.Context, storeID string) (*types.OrderStats, error) {
	args := m.Called(ctx, storeID)
	s, _ := args.Get(0).(*types.OrderStats)
	return s, args.Error(1)
}

type mockProjectStore struct{ mock.Mock }

var _ store.ProjectStore = (*mockProjectStore)(nil)

func (m *mockProjectStore) CreateProject(ctx context.Context, userID string, p *types.ProjectCreate) (*types.Project, error) {
	args := m.Called(ctx, userID, p)
	out, _ := args.Get(0).(*types.Project)
	return out, args.Error(1)
}

func (m *mockProjectStore) GetProject(ctx context.Context, id string) (*types.Project, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*types.Project)
	return out, args.Error(1)
}

func (m *mockProjectStore) ListProjects(ctx context.Context, userID string, page types.Page) ([]*types.Project, int, error) {
	args := m.Called(ctx, userID, page)
	list, _ := args.Get(0).([]*types.Project)
	return list, args.Int(1), args.Error(2)
}

func (m *mockProjectStore) UpdateProject(ctx context.Context, id string, update *types.ProjectUpdate) (*types.Project, error) {
	args := m.Called(ctx, id, update)
	out, _ := args.Get(0).(*types.Project)
	return out, args.Error(1)
}

func (m *mockProjectStore) DeactivateProject(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProjectStore) AssignSupervisor(ctx context.Context, id, supervisorID string) error {
	return m.Called(ctx, id, supervisorID).Error(0)
}

func (m *mockProjectStore) CountActiveProjects(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockProjectStore) ListCategories(ctx context.Context) ([]*types.ConstructionCategory, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*types.ConstructionCategory)
	return list, args.Error(1)
}

func (m *mockProjectStore) AddExpense(ctx context.Context, projectID string, e *types.ExpenseCreate) (*types.ConstructionExpense, error) {
	args := m.Called(ctx, projectID, e)
	out, _ := args.Get(0).(*types.ConstructionExpense)
	return out, args.Error(1)
}

func (m *mockProjectStore) ListExpenses(ctx context.Context, projectID string) ([]*types.ConstructionExpense, error) {
	args := m.Called(ctx, projectID)
	list, _ := args.Get(0).([]*types.ConstructionExpense)
	return list, args.Error(1)
}

func (m *mockProjectStore) ExpenseTotals(ctx context.Context, projectID string) ([]types.CategoryTotal, error) {
	args := m.Called(ctx, projectID)
	list, _ := args.Get(0).([]types.CategoryTotal)
	return list, args.Error(1)
}

type mockStorefrontStore struct{ mock.Mock }

var _ store.StorefrontStore = (*mockStorefrontStore)(nil)

func (m *mockStorefrontStore) CreateStorefront(ctx context.Context, ownerID string, s *types.StorefrontCreate) (*types.Storefront, error) {
	args := m.Called(ctx, ownerID, s)
	out, _ := args.Get(0).(*types.Storefront)
	return out, args.Error(1)
}

func (m *mockStorefrontStore) GetStorefront(ctx context.Context, id string) (*types.Storefront, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*types.Storefront)
	return out, args.Error(1)
}

func (m *mockStorefrontStore) GetStorefrontByOwner(ctx context.Context, ownerID string) (*types.Storefront, error) {
	args := m.Called(ctx, ownerID)
	out, _ := args.Get(0).(*types.Storefront)
	return out, args.Error(1)
}

func (m *mockStorefrontStore) ListStorefronts(ctx context.Context, filter types.StorefrontFilter) ([]*types.Storefront, int, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*types.Storefront)
	return list, args.Int(1), args.Error(2)
}

func (m *mockStorefrontStore) UpdateStorefront(ctx context.Context, id string, update *types.StorefrontUpdate) (*types.Storefront, error) {
	args := m.Called(ctx, id, update)
	out, _ := args.Get(0).(*types.Storefront)
	return out, args.Error(1)
}

type mockSupervisorStore struct{ mock.Mock }

var _ store.SupervisorStore = (*mockSupervisorStore)(nil)

func (m *mockSupervisorStore) GetSupervisor(ctx context.Context, id string) (*types.Supervisor, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*types.Supervisor)
	return out, args.Error(1)
}

func (m *mockSupervisorStore) ListSupervisors(ctx context.Context, filter types.SupervisorFilter) ([]*types.Supervisor, int, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*types.Supervisor)
	return list, args.Int(1), args.Error(2)
}

func (m *mockSupervisorStore) UpsertSupervisor(ctx context.Context, userID string, s *types.SupervisorUpsert) (*types.Supervisor, error) {
	args := m.Called(ctx, userID, s)
	out, _ := args.Get(0).(*types.Supervisor)
	return out, args.Error(1)
}

type mockWarrantyStore struct{ mock.Mock }

var _ store.WarrantyStore = (*mockWarrantyStore)(nil)

func (m *mockWarrantyStore) CreateWarranty(ctx context.Context, w *types.Warranty) (*types.Warranty, error) {
	args := m.Called(ctx, w)
	out, _ := args.Get(0).(*types.Warranty)
	return out, args.Error(1)
}

func (m *mockWarrantyStore) GetWarranty(ctx context.Context, id string) (*types.Warranty, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*types.Warranty)
	return out, args.Error(1)
}

func (m *mockWarrantyStore) ListUserWarranties(ctx context.Context, userID string, page types.Page) ([]*types.Warranty, int, error) {
	args := m.Called(ctx, userID, page)
	list, _ := args.Get(0).([]*types.Warranty)
	return list, args.Int(1), args.Error(2)
}

type mockInvoiceStore struct{ mock.Mock }

var _ store.InvoiceStore = (*mockInvoiceStore)(nil)

func (m *mockInvoiceStore) CreateInvoice(ctx context.Context, inv *types.Invoice) (*types.Invoice, error) {
	args := m.Called(ctx, inv)
	out, _ := args.Get(0).(*types.Invoice)
	return out, args.Error(1)
}

func (m *mockInvoiceStore) GetInvoice(ctx context.Context, id string) (*types.Invoice, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*types.Invoice)
	return out, args.Error(1)
}

func (m *mockInvoiceStore) GetInvoiceByOrder(ctx context.Context, orderID string) (*types.Invoice, error) {
	args := m.Called(ctx, orderID)
	out, _ := args.Get(0).(*types.Invoice)
	return out, args.Error(1)
}

func (m *mockInvoiceStore) ListUserInvoices(ctx context.Context, userID string, page types.Page) ([]*types.Invoice, int, error) {
	args := m.Called(ctx, userID, page)
	list, _ := args.Get(0).([]*types.Invoice)
	return list, args.Int(1), args.Error(2)
}

type mockFileStorage struct{ mock.Mock }

func (m *mockFileStorage) Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, body, size, contentType).Error(0)
}

func (m *mockFileStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockFileStorage) PresignedURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []types.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event types.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []types.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.OrderEvent(nil), p.events...)
}

// inlineJobs runs submitted jobs synchronously.
type inlineJobs struct {
	ran  []string
	errs []error
}

func (j *inlineJobs) Submit(job Job) bool {
	j.ran = append(j.ran, job.Name)
	j.errs = append(j.errs, job.Execute(context.Background()))
	return true
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendOrderConfirmation(ctx context.Context, data OrderConfirmation) error {
	return m.Called(ctx, data).Error(0)
}
