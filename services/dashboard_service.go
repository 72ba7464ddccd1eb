package services

import (
	"context"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
	"golang.org/x/sync/errgroup"
)

const recentOrdersLimit = 5

// DashboardService aggregates the landing page numbers. Each statistic
// group is one statement, so groups are consistent internally but not
// with each other.
type DashboardService struct {
	orders            store.OrderStore
	projects          store.ProjectStore
	carts             store.CartStore
	products          store.ProductStore
	currency          string
	lowStockThreshold int
}

func NewDashboardService(orders store.OrderStore, projects store.ProjectStore, carts store.CartStore,
	products store.ProductStore, currency string, lowStockThreshold int) *DashboardService {
	return &DashboardService{
		orders:            orders,
		projects:          projects,
		carts:             carts,
		products:          products,
		currency:          currency,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *DashboardService) UserDashboard(ctx context.Context, userID string) (*types.UserDashboard, error) {
	var (
		stats    *types.OrderStats
		projects int
		cart     int
		recent   []*types.Order
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = s.orders.UserOrderStats(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.projects.CountActiveProjects(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		cart, err = s.carts.CountItems(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		recent, _, err = s.orders.ListUserOrders(ctx, userID, types.OrderFilter{Page: types.Page{Limit: recentOrdersLimit}})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []*types.Order{}
	}
	return &types.UserDashboard{
		OrdersCount:     stats.Count,
		PendingOrders:   stats.Open,
		CompletedOrders: stats.Completed,
		TotalSpent:      stats.Amount,
		ActiveProjects:  projects,
		CartItems:       cart,
		Currency:        s.currency,
		RecentOrders:    recent,
	}, nil
}

func (s *DashboardService) StoreDashboard(ctx context.Context, storeID string) (*types.StoreDashboard, error) {
	var (
		stats     *types.OrderStats
		inventory *types.InventoryStats
		recent    []*types.Order
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = s.orders.StoreOrderStats(ctx, storeID)
		return err
	})
	g.Go(func() (err error) {
		inventory, err = s.products.InventoryStats(ctx, storeID, s.lowStockThreshold)
		return err
	})
	g.Go(func() (err error) {
		recent, _, err = s.orders.ListStoreOrders(ctx, storeID, types.OrderFilter{Page: types.Page{Limit: recentOrdersLimit}})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []*types.Order{}
	}
	return &types.StoreDashboard{
		StoreID:         storeID,
		OrdersCount:     stats.Count,
		PendingOrders:   stats.Open,
		CompletedOrders: stats.Completed,
		Revenue:         stats.Amount,
		ProductsCount:   inventory.Products,
		LowStockCount:   inventory.LowStock,
		Currency:        s.currency,
		RecentOrders:    recent,
	}, nil
}
