package postgres

import (
	"context"
	"errors"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.CartStore = (*CartStore)(nil)

const cartItemSelect = `
	SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, p.name, p.store_id, p.price,
	       p.stock_quantity, COALESCE(p.image_url, ''), p.is_active, ci.created_at, ci.updated_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id`

type CartStore struct {
	db DBTX
}

func NewCartStore(db DBTX) *CartStore {
	return &CartStore{db: db}
}

func scanCartItem(row pgx.Row) (*types.CartItem, error) {
	i := &types.CartItem{}
	err := row.Scan(&i.ID, &i.UserID, &i.ProductID, &i.Quantity, &i.ProductName, &i.StoreID, &i.UnitPrice,
		&i.StockQuantity, &i.ImageURL, &i.IsAvailable, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (s *CartStore) ListItems(ctx context.Context, userID string) ([]*types.CartItem, error) {
	rows, err := s.db.Query(ctx, cartItemSelect+` WHERE ci.user_id = $1 ORDER BY ci.created_at`, userID)
	if err != nil {
		return nil, mapError(err, "Cart", userID)
	}
	defer rows.Close()

	items := make([]*types.CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, mapError(err, "Cart", userID)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "Cart", userID)
	}
	return items, nil
}

func (s *CartStore) GetItem(ctx context.Context, userID, itemID string) (*types.CartItem, error) {
	item, err := scanCartItem(s.db.QueryRow(ctx, cartItemSelect+` WHERE ci.user_id = $1 AND ci.id = $2`, userID, itemID))
	if err != nil {
		return nil, mapError(err, "Cart item", itemID)
	}
	return item, nil
}

// FindItemByProduct returns nil without error when the product is not in the cart.
func (s *CartStore) FindItemByProduct(ctx context.Context, userID, productID string) (*types.CartItem, error) {
	item, err := scanCartItem(s.db.QueryRow(ctx, cartItemSelect+` WHERE ci.user_id = $1 AND ci.product_id = $2`, userID, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, "Cart item", productID)
	}
	return item, nil
}

func (s *CartStore) UpsertItem(ctx context.Context, userID, productID string, quantity int) (*types.CartItem, error) {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id`

	var id string
	if err := s.db.QueryRow(ctx, query, userID, productID, quantity).Scan(&id); err != nil {
		return nil, mapError(err, "Cart item", productID)
	}
	return s.GetItem(ctx, userID, id)
}

func (s *CartStore) SetQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = NOW() WHERE user_id = $1 AND id = $2`,
		userID, itemID, quantity)
	if err != nil {
		return mapError(err, "Cart item", itemID)
	}
	return notFoundIfNoRows(tag, "Cart item", itemID)
}

func (s *CartStore) RemoveItem(ctx context.Context, userID, itemID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = $2`, userID, itemID)
	if err != nil {
		return mapError(err, "Cart item", itemID)
	}
	return notFoundIfNoRows(tag, "Cart item", itemID)
}

func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return mapError(err, "Cart", userID)
	}
	return nil
}

// CountItems counts cart lines, not units.
func (s *CartStore) CountItems(ctx context.Context, userID string) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, mapError(err, "Cart", userID)
	}
	return n, nil
}
