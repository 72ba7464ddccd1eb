package postgres

import (
	"context"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.ProductStore = (*ProductStore)(nil)

const productColumns = `p.id, p.store_id, p.name, COALESCE(p.description, ''), COALESCE(p.category, ''),
	p.price, p.stock_quantity, COALESCE(p.image_url, ''), p.is_active, p.created_at, p.updated_at`

type ProductStore struct {
	db DBTX
}

func NewProductStore(db DBTX) *ProductStore {
	return &ProductStore{db: db}
}

func productScanTargets(p *types.Product) []any {
	return []any{&p.ID, &p.StoreID, &p.Name, &p.Description, &p.Category,
		&p.Price, &p.StockQuantity, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt}
}

func scanProduct(row pgx.Row) (*types.Product, error) {
	p := &types.Product{}
	if err := row.Scan(productScanTargets(p)...); err != nil {
		return nil, err
	}
	return p, nil
}

// collectProducts reads rows carrying a trailing COUNT(*) OVER () column.
func collectProducts(rows pgx.Rows) ([]*types.Product, int, error) {
	defer rows.Close()

	products := make([]*types.Product, 0)
	total := 0
	for rows.Next() {
		p := &types.Product{}
		if err := rows.Scan(append(productScanTargets(p), &total)...); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (s *ProductStore) GetProduct(ctx context.Context, id string) (*types.Product, error) {
	p, err := scanProduct(s.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Product", id)
	}
	return p, nil
}

// ListProducts returns the active public catalogue.
func (s *ProductStore) ListProducts(ctx context.Context, filter types.ProductFilter) ([]*types.Product, int, error) {
	page := filter.Page.Normalize()
	query := `
		SELECT ` + productColumns + `, COUNT(*) OVER ()
		FROM products p
		JOIN stores st ON st.id = p.store_id AND st.is_active
		WHERE p.is_active
		  AND ($1 = '' OR p.store_id::text = $1)
		  AND ($2 = '' OR p.category = $2)
		  AND ($3 = '' OR p.name ILIKE '%' || $3 || '%')
		ORDER BY p.created_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := s.db.Query(ctx, query, filter.StoreID, filter.Category, filter.Query, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, mapError(err, "Product", "list")
	}
	products, total, err := collectProducts(rows)
	if err != nil {
		return nil, 0, mapError(err, "Product", "list")
	}
	return products, total, nil
}

// ListStoreProducts includes deactivated products so owners can restore them.
func (s *ProductStore) ListStoreProducts(ctx context.Context, storeID string, page types.Page) ([]*types.Product, int, error) {
	page = page.Normalize()
	query := `
		SELECT ` + productColumns + `, COUNT(*) OVER ()
		FROM products p
		WHERE p.store_id = $1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.Query(ctx, query, storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, mapError(err, "Product", storeID)
	}
	products, total, err := collectProducts(rows)
	if err != nil {
		return nil, 0, mapError(err, "Product", storeID)
	}
	return products, total, nil
}

func (s *ProductStore) CreateProduct(ctx context.Context, storeID string, in *types.ProductCreate) (*types.Product, error) {
	query := `
		INSERT INTO products AS p (store_id, name, description, category, price, stock_quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns

	p, err := scanProduct(s.db.QueryRow(ctx, query,
		storeID, in.Name, in.Description, in.Category, in.Price, in.StockQuantity, in.ImageURL))
	if err != nil {
		return nil, mapError(err, "Product", in.Name)
	}
	return p, nil
}

func (s *ProductStore) UpdateProduct(ctx context.Context, storeID, id string, u *types.ProductUpdate) (*types.Product, error) {
	query := `
		UPDATE products AS p
		SET name           = COALESCE($3, p.name),
		    description    = COALESCE($4, p.description),
		    category       = COALESCE($5, p.category),
		    price          = COALESCE($6, p.price),
		    stock_quantity = COALESCE($7, p.stock_quantity),
		    image_url      = COALESCE($8, p.image_url),
		    is_active      = COALESCE($9, p.is_active),
		    updated_at     = NOW()
		WHERE p.id = $1 AND p.store_id = $2
		RETURNING ` + productColumns

	p, err := scanProduct(s.db.QueryRow(ctx, query, id, storeID,
		u.Name, u.Description, u.Category, u.Price, u.StockQuantity, u.ImageURL, u.IsActive))
	if err != nil {
		return nil, mapError(err, "Product", id)
	}
	return p, nil
}

// DeactivateProduct soft-deletes a product owned by storeID.
func (s *ProductStore) DeactivateProduct(ctx context.Context, storeID, id string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND store_id = $2`, id, storeID)
	if err != nil {
		return mapError(err, "Product", id)
	}
	return notFoundIfNoRows(tag, "Product", id)
}

func (s *ProductStore) InventoryStats(ctx context.Context, storeID string, lowStockThreshold int) (*types.InventoryStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE stock_quantity <= $2)
		FROM products
		WHERE store_id = $1 AND is_active`

	stats := &types.InventoryStats{}
	if err := s.db.QueryRow(ctx, query, storeID, lowStockThreshold).Scan(&stats.Products, &stats.LowStock); err != nil {
		return nil, mapError(err, "Store", storeID)
	}
	return stats, nil
}
