package services

import (
	"context"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/pkg/valueobjects"
	"github.com/binna/binna-backend/types"
)

// OrderEventPublisher publishes order changes to the store's channel.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event types.OrderEvent) error
}

type OrderService struct {
	orders    store.OrderStore
	users     store.UserStore
	pricing   valueobjects.TaxPolicy
	publisher OrderEventPublisher
	jobs      JobSubmitter
	mailer    OrderMailer
}

func NewOrderService(orders store.OrderStore, users store.UserStore, pricing valueobjects.TaxPolicy,
	publisher OrderEventPublisher, jobs JobSubmitter, mailer OrderMailer) *OrderService {
	return &OrderService{
		orders:    orders,
		users:     users,
		pricing:   pricing,
		publisher: publisher,
		jobs:      jobs,
		mailer:    mailer,
	}
}

// Checkout converts the cart into one order per store. Event publishing and
// the confirmation mail happen after commit and never fail the checkout.
func (s *OrderService) Checkout(ctx context.Context, userID string, req *types.CheckoutRequest) ([]*types.Order, error) {
	orders, err := s.orders.Checkout(ctx, userID, req, s.pricing)
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Infow("Checkout completed", "userID", userID, "orders", len(orders))

	for _, order := range orders {
		s.publish(ctx, types.OrderEvent{
			Type:    types.OrderEventCreated,
			OrderID: order.ID,
			StoreID: order.StoreID,
			UserID:  order.UserID,
			Status:  order.Status,
			Total:   order.Total.StringFixed(2),
		})
	}
	s.queueConfirmation(userID, orders)
	return orders, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID string, filter types.OrderFilter) ([]*types.Order, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, apperrors.ValidationFailed("invalid status filter", string(filter.Status))
	}
	filter.Page = filter.Page.Normalize()
	return s.orders.ListUserOrders(ctx, userID, filter)
}

// GetUserOrder hides orders of other users behind a 404.
func (s *OrderService) GetUserOrder(ctx context.Context, userID, orderID string) (*types.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("Order", orderID)
	}
	return order, nil
}

// CancelUserOrder cancels one of the caller's pending or confirmed orders.
func (s *OrderService) CancelUserOrder(ctx context.Context, userID, orderID string) (*types.Order, error) {
	order, err := s.GetUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(types.OrderStatusCancelled) {
		return nil, apperrors.InvalidStatusTransition(string(order.Status), string(types.OrderStatusCancelled))
	}
	return s.transition(ctx, orderID, types.OrderStatusCancelled)
}

func (s *OrderService) ListStoreOrders(ctx context.Context, storeID string, filter types.OrderFilter) ([]*types.Order, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, apperrors.ValidationFailed("invalid status filter", string(filter.Status))
	}
	filter.Page = filter.Page.Normalize()
	return s.orders.ListStoreOrders(ctx, storeID, filter)
}

// GetStoreOrder returns 403 when the order belongs to another store.
func (s *OrderService) GetStoreOrder(ctx context.Context, storeID, orderID string) (*types.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.StoreID != storeID {
		return nil, apperrors.Forbidden("Order belongs to another store", "")
	}
	return order, nil
}

func (s *OrderService) UpdateStoreOrderStatus(ctx context.Context, storeID, orderID string, next types.OrderStatus) (*types.Order, error) {
	if !next.IsValid() {
		return nil, apperrors.ValidationFailed("invalid order status", string(next))
	}
	if _, err := s.GetStoreOrder(ctx, storeID, orderID); err != nil {
		return nil, err
	}
	return s.transition(ctx, orderID, next)
}

func (s *OrderService) transition(ctx context.Context, orderID string, next types.OrderStatus) (*types.Order, error) {
	order, previous, err := s.orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Infow("Order status changed",
		"orderID", orderID,
		"from", previous,
		"to", order.Status)

	s.publish(ctx, types.OrderEvent{
		Type:           types.OrderEventStatusChanged,
		OrderID:        order.ID,
		StoreID:        order.StoreID,
		UserID:         order.UserID,
		Status:         order.Status,
		PreviousStatus: previous,
		Total:          order.Total.StringFixed(2),
	})
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event types.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.GetLogger().Warnw("Failed to publish order event",
			"type", event.Type,
			"orderID", event.OrderID,
			"error", err)
	}
}

func (s *OrderService) queueConfirmation(userID string, orders []*types.Order) {
	if s.jobs == nil || s.mailer == nil || len(orders) == 0 {
		return
	}
	currency := string(s.pricing.Currency)
	s.jobs.Submit(Job{
		Name: "order_confirmation_email",
		Execute: func(ctx context.Context) error {
			user, err := s.users.GetUser(ctx, userID)
			if err != nil {
				return err
			}
			return s.mailer.SendOrderConfirmation(ctx, OrderConfirmation{
				To:           user.Email,
				CustomerName: user.FullName,
				Currency:     currency,
				Orders:       orders,
			})
		},
	})
}
