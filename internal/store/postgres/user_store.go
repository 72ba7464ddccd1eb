package postgres

import (
	"context"

	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
	"github.com/jackc/pgx/v5"
)

var _ store.UserStore = (*UserStore)(nil)

const userColumns = `id, email, COALESCE(full_name, ''), COALESCE(phone, ''), COALESCE(avatar_url, ''),
	COALESCE(account_type, ''), is_active, created_at, updated_at`

type UserStore struct {
	db DBTX
}

func NewUserStore(db DBTX) *UserStore {
	return &UserStore{db: db}
}

func scanUser(row pgx.Row) (*types.User, error) {
	u := &types.User{}
	var accountType string
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.AvatarURL,
		&accountType, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.AccountType = types.ParseAccountType(accountType)
	return u, nil
}

func (s *UserStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "User", id)
	}
	return u, nil
}

// GetAccountType returns the stored account type, normalised.
func (s *UserStore) GetAccountType(ctx context.Context, id string) (types.AccountType, error) {
	var raw string
	err := s.db.QueryRow(ctx, `SELECT COALESCE(account_type, '') FROM users WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		return "", mapError(err, "User", id)
	}
	return types.ParseAccountType(raw), nil
}

func (s *UserStore) UpdateUser(ctx context.Context, id string, update *types.UserUpdate) (*types.User, error) {
	query := `
		UPDATE users
		SET full_name  = COALESCE($2, full_name),
		    phone      = COALESCE($3, phone),
		    avatar_url = COALESCE($4, avatar_url),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRow(ctx, query, id, update.FullName, update.Phone, update.AvatarURL))
	if err != nil {
		return nil, mapError(err, "User", id)
	}
	return u, nil
}
