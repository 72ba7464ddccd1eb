package services

import (
	"context"
	"time"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
)

type WarrantyService struct {
	warranties store.WarrantyStore
	orders     store.OrderStore
	now        func() time.Time
}

func NewWarrantyService(warranties store.WarrantyStore, orders store.OrderStore) *WarrantyService {
	return &WarrantyService{warranties: warranties, orders: orders, now: time.Now}
}

// IssueWarranty is done by the selling store once the order is delivered.
// The warranty starts today and runs for the given number of months.
func (s *WarrantyService) IssueWarranty(ctx context.Context, storeID string, in *types.WarrantyCreate) (*types.Warranty, error) {
	order, err := s.orders.GetOrder(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order.StoreID != storeID {
		return nil, apperrors.Forbidden("Order belongs to another store", "")
	}
	if order.Status != types.OrderStatusDelivered {
		return nil, apperrors.ValidationFailed("warranties can only be issued for delivered orders", string(order.Status))
	}
	if !order.HasProduct(in.ProductID) {
		return nil, apperrors.ValidationFailed("product is not part of the order", in.ProductID)
	}

	start := s.now().UTC()
	created, err := s.warranties.CreateWarranty(ctx, &types.Warranty{
		OrderID:   order.ID,
		ProductID: in.ProductID,
		UserID:    order.UserID,
		StoreID:   storeID,
		StartDate: start,
		EndDate:   start.AddDate(0, in.DurationMonths, 0),
		Terms:     in.Terms,
	})
	if err != nil {
		return nil, err
	}
	created.Status = created.StatusAt(s.now())
	return created, nil
}

func (s *WarrantyService) ListUserWarranties(ctx context.Context, userID string, page types.Page) ([]*types.Warranty, int, error) {
	list, total, err := s.warranties.ListUserWarranties(ctx, userID, page.Normalize())
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	for _, w := range list {
		w.Status = w.StatusAt(now)
	}
	return list, total, nil
}

// GetUserWarranty hides warranties of other users behind a 404.
func (s *WarrantyService) GetUserWarranty(ctx context.Context, userID, id string) (*types.Warranty, error) {
	w, err := s.warranties.GetWarranty(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.UserID != userID {
		return nil, apperrors.NotFound("Warranty", id)
	}
	w.Status = w.StatusAt(s.now())
	return w, nil
}
