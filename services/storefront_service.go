package services

import (
	"context"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/types"
)

type StorefrontService struct {
	stores store.StorefrontStore
}

func NewStorefrontService(stores store.StorefrontStore) *StorefrontService {
	return &StorefrontService{stores: stores}
}

// ListStorefronts is the public directory of active stores.
func (s *StorefrontService) ListStorefronts(ctx context.Context, filter types.StorefrontFilter) ([]*types.Storefront, int, error) {
	filter.Page = filter.Page.Normalize()
	return s.stores.ListStorefronts(ctx, filter)
}

func (s *StorefrontService) GetStorefront(ctx context.Context, id string) (*types.Storefront, error) {
	sf, err := s.stores.GetStorefront(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sf.IsActive {
		return nil, apperrors.NotFound("Store", id)
	}
	return sf, nil
}

// CreateStorefront opens the caller's store. An owner has at most one.
func (s *StorefrontService) CreateStorefront(ctx context.Context, ownerID string, in *types.StorefrontCreate) (*types.Storefront, error) {
	existing, err := s.stores.GetStorefrontByOwner(ctx, ownerID)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.NewConflictError("Store already exists", existing.ID)
	case err != nil && !apperrors.IsType(err, apperrors.NotFoundError):
		return nil, err
	}
	return s.stores.CreateStorefront(ctx, ownerID, in)
}

func (s *StorefrontService) GetOwnStorefront(ctx context.Context, ownerID string) (*types.Storefront, error) {
	return s.stores.GetStorefrontByOwner(ctx, ownerID)
}

func (s *StorefrontService) UpdateOwnStorefront(ctx context.Context, ownerID string, update *types.StorefrontUpdate) (*types.Storefront, error) {
	sf, err := s.stores.GetStorefrontByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.stores.UpdateStorefront(ctx, sf.ID, update)
}

// StoreIDForOwner resolves the store a store account operates.
func (s *StorefrontService) StoreIDForOwner(ctx context.Context, ownerID string) (string, error) {
	sf, err := s.stores.GetStorefrontByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return sf.ID, nil
}
