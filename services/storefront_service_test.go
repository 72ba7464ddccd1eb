package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStorefrontService_CreateOnePerOwner(t *testing.T) {
	stores := &mockStorefrontStore{}
	svc := NewStorefrontService(stores)
	in := &types.StorefrontCreate{Name: "Al Bina Supplies"}

	stores.On("GetStorefrontByOwner", mock.Anything, "u-1").Return(nil, apperrors.NotFound("Store", "u-1")).Once()
	stores.On("CreateStorefront", mock.Anything, "u-1", in).Return(&types.Storefront{ID: "s-1", OwnerID: "u-1"}, nil)
	sf, err := svc.CreateStorefront(context.Background(), "u-1", in)
	require.NoError(t, err)
	assert.Equal(t, "s-1", sf.ID)

	stores.On("GetStorefrontByOwner", mock.Anything, "u-1").Return(&types.Storefront{ID: "s-1"}, nil).Once()
	_, err = svc.CreateStorefront(context.Background(), "u-1", in)
	requireAppError(t, err, http.StatusConflict, "")

	stores.On("GetStorefrontByOwner", mock.Anything, "u-1").Return(nil, errors.New("db down")).Once()
	_, err = svc.CreateStorefront(context.Background(), "u-1", in)
	assert.EqualError(t, err, "db down")
	stores.AssertNumberOfCalls(t, "CreateStorefront", 1)
}

func TestStorefrontService_InactiveStoreIsHidden(t *testing.T) {
	stores := &mockStorefrontStore{}
	stores.On("GetStorefront", mock.Anything, "s-1").Return(&types.Storefront{ID: "s-1"}, nil)

	_, err := NewStorefrontService(stores).GetStorefront(context.Background(), "s-1")
	requireAppError(t, err, http.StatusNotFound, "")
}

func TestStorefrontService_UpdateOwn(t *testing.T) {
	stores := &mockStorefrontStore{}
	name := "Renamed"
	update := &types.StorefrontUpdate{Name: &name}
	stores.On("GetStorefrontByOwner", mock.Anything, "u-1").Return(&types.Storefront{ID: "s-1"}, nil)
	stores.On("UpdateStorefront", mock.Anything, "s-1", update).Return(&types.Storefront{ID: "s-1", Name: name}, nil)

	sf, err := NewStorefrontService(stores).UpdateOwnStorefront(context.Background(), "u-1", update)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", sf.Name)
}

func TestStorefrontService_StoreIDForOwner(t *testing.T) {
	stores := &mockStorefrontStore{}
	stores.On("GetStorefrontByOwner", mock.Anything, "u-1").Return(&types.Storefront{ID: "s-1"}, nil)

	id, err := NewStorefrontService(stores).StoreIDForOwner(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", id)
}
