package services

import (
	"context"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/pkg/valueobjects"
	"github.com/binna/binna-backend/types"
)

// CartService manages a user's cart. Stock checks here are advisory; stock
// is reserved at checkout.
type CartService struct {
	carts    store.CartStore
	products store.ProductStore
	pricing  valueobjects.TaxPolicy
}

func NewCartService(carts store.CartStore, products store.ProductStore, pricing valueobjects.TaxPolicy) *CartService {
	return &CartService{carts: carts, products: products, pricing: pricing}
}

// GetCart returns the cart priced with the configured tax policy.
func (s *CartService) GetCart(ctx context.Context, userID string) (*types.CartSummary, error) {
	items, err := s.carts.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*types.CartItem{}
	}

	lines := make([]valueobjects.LineItem, 0, len(items))
	count := 0
	for _, item := range items {
		lines = append(lines, valueobjects.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
		count += item.Quantity
	}
	totals := s.pricing.Compute(lines)

	return &types.CartSummary{
		Items:     items,
		ItemCount: count,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Currency:  string(s.pricing.Currency),
	}, nil
}

// AddItem adds quantity to the user's line for the product, creating it
// when absent.
func (s *CartService) AddItem(ctx context.Context, userID string, req *types.AddCartItemRequest) (*types.CartItem, error) {
	product, err := s.activeProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	existing, err := s.carts.FindItemByProduct(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	requested := req.Quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if requested > product.StockQuantity {
		return nil, apperrors.InsufficientStock(product.Name, requested, product.StockQuantity)
	}

	item, err := s.carts.UpsertItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	logger.GetLogger().Debugw("Cart item added", "userID", userID, "productID", req.ProductID, "quantity", item.Quantity)
	return item, nil
}

// UpdateItem sets the quantity of one of the user's lines.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, req *types.UpdateCartItemRequest) (*types.CartItem, error) {
	item, err := s.carts.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	product, err := s.activeProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if req.Quantity > product.StockQuantity {
		return nil, apperrors.InsufficientStock(product.Name, req.Quantity, product.StockQuantity)
	}

	if err := s.carts.SetQuantity(ctx, userID, itemID, req.Quantity); err != nil {
		return nil, err
	}
	item.Quantity = req.Quantity
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	return s.carts.RemoveItem(ctx, userID, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

func (s *CartService) activeProduct(ctx context.Context, productID string) (*types.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, apperrors.NotFound("Product", productID)
	}
	return product, nil
}
