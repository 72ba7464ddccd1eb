package postgres

import (
	"context"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.StorefrontStore = (*StorefrontStore)(nil)

const storefrontColumns = `st.id, st.owner_id, st.name, COALESCE(st.description, ''), COALESCE(st.city, ''),
	COALESCE(st.phone, ''), COALESCE(st.logo_url, ''), st.is_active, st.created_at, st.updated_at`

type StorefrontStore struct {
	db DBTX
}

func NewStorefrontStore(db DBTX) *StorefrontStore {
	return &StorefrontStore{db: db}
}

func storefrontScanTargets(s *types.Storefront) []any {
	return []any{&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.City, &s.Phone, &s.LogoURL,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt}
}

func scanStorefront(row pgx.Row) (*types.Storefront, error) {
	sf := &types.Storefront{}
	if err := row.Scan(storefrontScanTargets(sf)...); err != nil {
		return nil, err
	}
	return sf, nil
}

// CreateStorefront relies on the unique owner_id constraint for the
// one-store-per-owner rule; a second insert maps to a conflict.
func (s *StorefrontStore) CreateStorefront(ctx context.Context, ownerID string, in *types.StorefrontCreate) (*types.Storefront, error) {
	query := `
		INSERT INTO stores AS st (owner_id, name, description, city, phone, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + storefrontColumns

	sf, err := scanStorefront(s.db.QueryRow(ctx, query, ownerID, in.Name, in.Description, in.City, in.Phone, in.LogoURL))
	if err != nil {
		return nil, mapError(err, "Store", ownerID)
	}
	return sf, nil
}

func (s *StorefrontStore) GetStorefront(ctx context.Context, id string) (*types.Storefront, error) {
	sf, err := scanStorefront(s.db.QueryRow(ctx, `SELECT `+storefrontColumns+` FROM stores st WHERE st.id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Store", id)
	}
	return sf, nil
}

func (s *StorefrontStore) GetStorefrontByOwner(ctx context.Context, ownerID string) (*types.Storefront, error) {
	sf, err := scanStorefront(s.db.QueryRow(ctx, `SELECT `+storefrontColumns+` FROM stores st WHERE st.owner_id = $1`, ownerID))
	if err != nil {
		return nil, mapError(err, "Store", ownerID)
	}
	return sf, nil
}

func (s *StorefrontStore) ListStorefronts(ctx context.Context, filter types.StorefrontFilter) ([]*types.Storefront, int, error) {
	page := filter.Page.Normalize()
	query := `
		SELECT ` + storefrontColumns + `, COUNT(*) OVER ()
		FROM stores st
		WHERE st.is_active
		  AND ($1 = '' OR st.city = $1)
		  AND ($2 = '' OR st.name ILIKE '%' || $2 || '%')
		ORDER BY st.name
		LIMIT $3 OFFSET $4`

	rows, err := s.db.Query(ctx, query, filter.City, filter.Query, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, mapError(err, "Store", "list")
	}
	defer rows.Close()

	stores := make([]*types.Storefront, 0)
	total := 0
	for rows.Next() {
		sf := &types.Storefront{}
		if err := rows.Scan(append(storefrontScanTargets(sf), &total)...); err != nil {
			return nil, 0, mapError(err, "Store", "list")
		}
		stores = append(stores, sf)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Store", "list")
	}
	return stores, total, nil
}

func (s *StorefrontStore) UpdateStorefront(ctx context.Context, id string, u *types.StorefrontUpdate) (*types.Storefront, error) {
	query := `
		UPDATE stores AS st
		SET name        = COALESCE($2, st.name),
		    description = COALESCE($3, st.description),
		    city        = COALESCE($4, st.city),
		    phone       = COALESCE($5, st.phone),
		    logo_url    = COALESCE($6, st.logo_url),
		    updated_at  = NOW()
		WHERE st.id = $1
		RETURNING ` + storefrontColumns

	sf, err := scanStorefront(s.db.QueryRow(ctx, query, id, u.Name, u.Description, u.City, u.Phone, u.LogoURL))
	if err != nil {
		return nil, mapError(err, "Store", id)
	}
	return sf, nil
}
