package postgres

import (
	"context"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
)

var _ store.WarrantyStore = (*WarrantyStore)(nil)

const warrantyColumns = `w.id, w.order_id, w.product_id, COALESCE(p.name, ''), w.user_id, w.store_id,
	w.start_date, w.end_date, COALESCE(w.terms, ''), w.created_at`

type WarrantyStore struct {
	db DBTX
}

func NewWarrantyStore(db DBTX) *WarrantyStore {
	return &WarrantyStore{db: db}
}

func warrantyScanTargets(w *types.Warranty) []any {
	return []any{&w.ID, &w.OrderID, &w.ProductID, &w.ProductName, &w.UserID, &w.StoreID,
		&w.StartDate, &w.EndDate, &w.Terms, &w.CreatedAt}
}

func (s *WarrantyStore) CreateWarranty(ctx context.Context, w *types.Warranty) (*types.Warranty, error) {
	out := *w
	err := s.db.QueryRow(ctx, `
		INSERT INTO warranties (order_id, product_id, user_id, store_id, start_date, end_date, terms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		w.OrderID, w.ProductID, w.UserID, w.StoreID, w.StartDate, w.EndDate, w.Terms,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, mapError(err, "Warranty", w.OrderID)
	}
	return &out, nil
}

func (s *WarrantyStore) GetWarranty(ctx context.Context, id string) (*types.Warranty, error) {
	w := &types.Warranty{}
	err := s.db.QueryRow(ctx, `
		SELECT `+warrantyColumns+`
		FROM warranties w
		LEFT JOIN products p ON p.id = w.product_id
		WHERE w.id = $1`, id).Scan(warrantyScanTargets(w)...)
	if err != nil {
		return nil, mapError(err, "Warranty", id)
	}
	return w, nil
}

func (s *WarrantyStore) ListUserWarranties(ctx context.Context, userID string, page types.Page) ([]*types.Warranty, int, error) {
	page = page.Normalize()
	rows, err := s.db.Query(ctx, `
		SELECT `+warrantyColumns+`, COUNT(*) OVER ()
		FROM warranties w
		LEFT JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.end_date DESC
		LIMIT $2 OFFSET $3`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, mapError(err, "Warranty", userID)
	}
	defer rows.Close()

	warranties := make([]*types.Warranty, 0)
	total := 0
	for rows.Next() {
		w := &types.Warranty{}
		if err := rows.Scan(append(warrantyScanTargets(w), &total)...); err != nil {
			return nil, 0, mapError(err, "Warranty", userID)
		}
		warranties = append(warranties, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Warranty", userID)
	}
	return warranties, total, nil
}
