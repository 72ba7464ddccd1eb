package postgres

import (
	"context"
	"sort"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/pkg/valueobjects"
	"github.com/binna/binna-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var _ store.OrderStore = (*OrderStore)(nil)

const orderColumns = `o.id, o.user_id, o.store_id, o.project_id, o.status, o.subtotal, o.tax, o.total,
	COALESCE(o.shipping_address, ''), COALESCE(o.notes, ''), o.created_at, o.updated_at`

type OrderStore struct {
	db DBTX
}

func NewOrderStore(db DBTX) *OrderStore {
	return &OrderStore{db: db}
}

func orderScanTargets(o *types.Order) []any {
	return []any{&o.ID, &o.UserID, &o.StoreID, &o.ProjectID, &o.Status, &o.Subtotal, &o.Tax, &o.Total,
		&o.ShippingAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt}
}

// lockedLine is a cart line joined with its product row, read under FOR UPDATE.
type lockedLine struct {
	productID string
	quantity  int
	name      string
	storeID   string
	price     decimal.Decimal
	stock     int
	active    bool
}

func (s *OrderStore) Checkout(ctx context.Context, userID string, req *types.CheckoutRequest, pricing valueobjects.TaxPolicy) ([]*types.Order, error) {
	var orders []*types.Order

	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		if req.ProjectID != nil {
			if err := requireOwnedProject(ctx, tx, userID, *req.ProjectID); err != nil {
				return err
			}
		}

		lines, err := lockCartLines(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperrors.ValidationFailed("cart is empty", store.ErrCartEmpty.Error())
		}

		for _, l := range lines {
			if !l.active {
				return apperrors.ValidationFailed("product is no longer available", l.name)
			}
			if l.stock < l.quantity {
				return apperrors.InsufficientStock(l.name, l.quantity, l.stock)
			}
		}

		byStore := make(map[string][]lockedLine)
		for _, l := range lines {
			byStore[l.storeID] = append(byStore[l.storeID], l)
		}
		storeIDs := make([]string, 0, len(byStore))
		for id := range byStore {
			storeIDs = append(storeIDs, id)
		}
		sort.Strings(storeIDs)

		for _, storeID := range storeIDs {
			order, err := insertOrder(ctx, tx, userID, storeID, byStore[storeID], req, pricing)
			if err != nil {
				return err
			}
			orders = append(orders, order)
		}

		for _, l := range lines {
			_, err := tx.Exec(ctx,
				`UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = NOW() WHERE id = $1`,
				l.productID, l.quantity)
			if err != nil {
				return mapError(err, "Product", l.productID)
			}
		}

		// Lines added after the lock stay in the cart.
		productIDs := make([]string, len(lines))
		for i, l := range lines {
			productIDs[i] = l.productID
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM cart_items WHERE user_id = $1 AND product_id = ANY($2)`,
			userID, productIDs); err != nil {
			return mapError(err, "Cart", userID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// requireOwnedProject reports a 404 for projects the user does not own or
// has deleted.
func requireOwnedProject(ctx context.Context, tx pgx.Tx, userID, projectID string) error {
	var owned bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND user_id = $2 AND is_active)`,
		projectID, userID).Scan(&owned)
	if err != nil {
		return mapError(err, "Project", projectID)
	}
	if !owned {
		return apperrors.NotFound("Project", projectID)
	}
	return nil
}

// lockCartLines locks the cart and product rows in product id order so
// concurrent checkouts touching the same products queue instead of deadlocking.
func lockCartLines(ctx context.Context, tx pgx.Tx, userID string) ([]lockedLine, error) {
	query := `
		SELECT ci.product_id, ci.quantity, p.name, p.store_id, p.price, p.stock_quantity, p.is_active
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY p.id
		FOR UPDATE OF ci, p`

	rows, err := tx.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "Cart", userID)
	}
	defer rows.Close()

	var lines []lockedLine
	for rows.Next() {
		var l lockedLine
		if err := rows.Scan(&l.productID, &l.quantity, &l.name, &l.storeID, &l.price, &l.stock, &l.active); err != nil {
			return nil, mapError(err, "Cart", userID)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "Cart", userID)
	}
	return lines, nil
}

func insertOrder(ctx context.Context, tx pgx.Tx, userID, storeID string, lines []lockedLine,
	req *types.CheckoutRequest, pricing valueobjects.TaxPolicy) (*types.Order, error) {

	priced := make([]valueobjects.LineItem, len(lines))
	for i, l := range lines {
		priced[i] = valueobjects.LineItem{Quantity: l.quantity, UnitPrice: l.price}
	}
	totals := pricing.Compute(priced)

	order := &types.Order{
		UserID:          userID,
		StoreID:         storeID,
		ProjectID:       req.ProjectID,
		Status:          types.OrderStatusPending,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, store_id, project_id, status, subtotal, tax, total, shipping_address, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		userID, storeID, req.ProjectID, string(order.Status), order.Subtotal, order.Tax, order.Total,
		req.ShippingAddress, req.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "Order", storeID)
	}

	order.Items = make([]types.OrderItem, 0, len(lines))
	for _, l := range lines {
		item := types.OrderItem{
			OrderID:     order.ID,
			ProductID:   l.productID,
			ProductName: l.name,
			Quantity:    l.quantity,
			UnitPrice:   l.price,
			LineTotal:   l.price.Mul(decimal.NewFromInt(int64(l.quantity))),
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.LineTotal,
		).Scan(&item.ID)
		if err != nil {
			return nil, mapError(err, "Order item", l.productID)
		}
		order.Items = append(order.Items, item)
	}

	return order, nil
}

func (s *OrderStore) GetOrder(ctx context.Context, id string) (*types.Order, error) {
	o := &types.Order{}
	err := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id).Scan(orderScanTargets(o)...)
	if err != nil {
		return nil, mapError(err, "Order", id)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name`, id)
	if err != nil {
		return nil, mapError(err, "Order", id)
	}
	defer rows.Close()

	o.Items = make([]types.OrderItem, 0)
	for rows.Next() {
		var item types.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, mapError(err, "Order", id)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "Order", id)
	}
	return o, nil
}

func (s *OrderStore) ListUserOrders(ctx context.Context, userID string, filter types.OrderFilter) ([]*types.Order, int, error) {
	return s.listOrders(ctx, "o.user_id", userID, filter)
}

func (s *OrderStore) ListStoreOrders(ctx context.Context, storeID string, filter types.OrderFilter) ([]*types.Order, int, error) {
	return s.listOrders(ctx, "o.store_id", storeID, filter)
}

// listOrders lists orders without their items. ownerColumn is a fixed
// identifier chosen by the caller, never user input.
func (s *OrderStore) listOrders(ctx context.Context, ownerColumn, ownerID string, filter types.OrderFilter) ([]*types.Order, int, error) {
	page := filter.Page.Normalize()
	query := `
		SELECT ` + orderColumns + `, COUNT(*) OVER ()
		FROM orders o
		WHERE ` + ownerColumn + ` = $1
		  AND ($2 = '' OR o.status = $2)
		ORDER BY o.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := s.db.Query(ctx, query, ownerID, string(filter.Status), page.Limit, page.Offset)
	if err != nil {
		return nil, 0, mapError(err, "Order", ownerID)
	}
	defer rows.Close()

	orders := make([]*types.Order, 0)
	total := 0
	for rows.Next() {
		o := &types.Order{}
		if err := rows.Scan(append(orderScanTargets(o), &total)...); err != nil {
			return nil, 0, mapError(err, "Order", ownerID)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Order", ownerID)
	}
	return orders, total, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id string, next types.OrderStatus) (*types.Order, types.OrderStatus, error) {
	var previous types.OrderStatus

	err := withTx(ctx, s.db, func(tx pgx.Tx) error {
		var current string
		if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current); err != nil {
			return mapError(err, "Order", id)
		}
		previous = types.OrderStatus(current)
		if !previous.CanTransitionTo(next) {
			return apperrors.InvalidStatusTransition(current, string(next))
		}

		if _, err := tx.Exec(ctx, `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(next)); err != nil {
			return mapError(err, "Order", id)
		}

		if next == types.OrderStatusCancelled {
			_, err := tx.Exec(ctx, `
				UPDATE products AS p
				SET stock_quantity = p.stock_quantity + oi.quantity, updated_at = NOW()
				FROM order_items oi
				WHERE oi.order_id = $1 AND p.id = oi.product_id`, id)
			if err != nil {
				return mapError(err, "Order", id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return order, previous, nil
}

const orderStatsQuery = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed', 'shipped')),
	       COUNT(*) FILTER (WHERE status = 'delivered'),
	       COALESCE(SUM(total) FILTER (WHERE status <> 'cancelled'), 0)
	FROM orders
	WHERE `

func (s *OrderStore) UserOrderStats(ctx context.Context, userID string) (*types.OrderStats, error) {
	return s.stats(ctx, "user_id", userID)
}

func (s *OrderStore) StoreOrderStats(ctx context.Context, storeID string) (*types.OrderStats, error) {
	return s.stats(ctx, "store_id", storeID)
}

func (s *OrderStore) stats(ctx context.Context, ownerColumn, ownerID string) (*types.OrderStats, error) {
	st := &types.OrderStats{}
	err := s.db.QueryRow(ctx, orderStatsQuery+ownerColumn+` = $1`, ownerID).
		Scan(&st.Count, &st.Open, &st.Completed, &st.Amount)
	if err != nil {
		return nil, mapError(err, "Order stats", ownerID)
	}
	return st, nil
}
