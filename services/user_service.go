package services

import (
	"context"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
)

type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetMe(ctx context.Context, userID string) (*types.User, error) {
	return s.users.GetUser(ctx, userID)
}

// UpdateMe changes the caller's profile fields. Account type is not
// editable here.
func (s *UserService) UpdateMe(ctx context.Context, userID string, update *types.UserUpdate) (*types.User, error) {
	if update.IsEmpty() {
		return nil, apperrors.ValidationFailed("no fields to update", "")
	}
	return s.users.UpdateUser(ctx, userID, update)
}
