package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/middleware"
	"github.com/binna/binna-backend/services"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

// newTestRouter mounts the error middleware and pre-authenticates requests
// as userID, optionally with a resolved store.
func newTestRouter(userID, storeID string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(string(middleware.UserIDKey), userID)
		}
		if storeID != "" {
			c.Set(string(middleware.StoreIDKey), storeID)
		}
		c.Next()
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, w http.ResponseWriter, req *types.LoginRequest) (*types.AuthResponse, error) {
	args := m.Called(ctx, w, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthResponse), args.Error(1)
}

func (m *mockAuthService) SyncLogin(ctx context.Context, w http.ResponseWriter, req *types.SyncLoginRequest) (*types.AuthResponse, error) {
	args := m.Called(ctx, w, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthResponse), args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, w http.ResponseWriter, r *http.Request, refreshToken string) (*types.AuthResponse, error) {
	args := m.Called(ctx, w, r, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthResponse), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, w http.ResponseWriter, accessToken string) {
	m.Called(ctx, w, accessToken)
}

func (m *mockAuthService) SessionInfo(session *auth.Session) *types.SessionResponse {
	return m.Called(session).Get(0).(*types.SessionResponse)
}

// staticSessions resolves every request to the same session.
type staticSessions struct{ session *auth.Session }

func (s staticSessions) Resolve(http.ResponseWriter, *http.Request) *auth.Session { return s.session }

type mockCartService struct{ mock.Mock }

func (m *mockCartService) GetCart(ctx context.Context, userID string) (*types.CartSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CartSummary), args.Error(1)
}

func (m *mockCartService) AddItem(ctx context.Context, userID string, req *types.AddCartItemRequest) (*types.CartItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CartItem), args.Error(1)
}

func (m *mockCartService) UpdateItem(ctx context.Context, userID, itemID string, req *types.UpdateCartItemRequest) (*types.CartItem, error) {
	args := m.Called(ctx, userID, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CartItem), args.Error(1)
}

func (m *mockCartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *mockCartService) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) Checkout(ctx context.Context, userID string, req *types.CheckoutRequest) ([]*types.Order, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Order), args.Error(1)
}

func (m *mockOrderService) ListUserOrders(ctx context.Context, userID string, filter types.OrderFilter) ([]*types.Order, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*types.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderService) GetUserOrder(ctx context.Context, userID, orderID string) (*types.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Order), args.Error(1)
}

func (m *mockOrderService) CancelUserOrder(ctx context.Context, userID, orderID string) (*types.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Order), args.Error(1)
}

func (m *mockOrderService) ListStoreOrders(ctx context.Context, storeID string, filter types.OrderFilter) ([]*types.Order, int, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*types.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderService) GetStoreOrder(ctx context.Context, storeID, orderID string) (*types.Order, error) {
	args := m.Called(ctx, storeID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Order), args.Error(1)
}

func (m *mockOrderService) UpdateStoreOrderStatus(ctx context.Context, storeID, orderID string, next types.OrderStatus) (*types.Order, error) {
	args := m.Called(ctx, storeID, orderID, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Order), args.Error(1)
}

type mockInvoiceService struct{ mock.Mock }

func (m *mockInvoiceService) Upload(ctx context.Context, storeID, orderID string, upload services.InvoiceUpload) (*types.Invoice, error) {
	args := m.Called(ctx, storeID, orderID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Invoice), args.Error(1)
}

func (m *mockInvoiceService) ListUserInvoices(ctx context.Context, userID string, page types.Page) ([]*types.Invoice, int, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*types.Invoice), args.Int(1), args.Error(2)
}

func (m *mockInvoiceService) GetInvoice(ctx context.Context, viewer services.InvoiceViewer, id string) (*types.Invoice, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Invoice), args.Error(1)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListProducts(ctx context.Context, q types.MedusaQuery) (*types.MedusaList[types.MedusaProduct], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MedusaList[types.MedusaProduct]), args.Error(1)
}

func (m *mockCatalog) GetProduct(ctx context.Context, id string) (*types.MedusaProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MedusaProduct), args.Error(1)
}

func (m *mockCatalog) ListInventoryItems(ctx context.Context, q types.MedusaQuery) (*types.MedusaList[types.MedusaInventoryItem], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MedusaList[types.MedusaInventoryItem]), args.Error(1)
}

func (m *mockCatalog) ListOrders(ctx context.Context, q types.MedusaQuery) (*types.MedusaList[types.MedusaOrder], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MedusaList[types.MedusaOrder]), args.Error(1)
}

type stubHealth struct {
	check types.HealthCheck
	ready bool
}

func (s stubHealth) CheckHealth(context.Context) types.HealthCheck { return s.check }
func (s stubHealth) Ready(context.Context) bool                    { return s.ready }

type mockProjectService struct {
	mock.Mock
	ProjectServiceInterface
}

func (m *mockProjectService) CreateProject(ctx context.Context, userID string, in *types.ProjectCreate) (*types.Project, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Project), args.Error(1)
}

func (m *mockProjectService) ListCategories(ctx context.Context) ([]*types.ConstructionCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.ConstructionCategory), args.Error(1)
}
