package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/binna/binna-backend/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_ListNormalizesPage(t *testing.T) {
	products := &mockProductStore{}
	products.On("ListProducts", mock.Anything, types.ProductFilter{Category: "tiles", Page: types.Page{Limit: 100}}).
		Return([]*types.Product{{ID: "p-1"}}, 1, nil)

	list, total, err := NewProductService(products).ListProducts(context.Background(),
		types.ProductFilter{Category: "tiles", Page: types.Page{Limit: 500}})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
}

func TestProductService_GetHidesInactive(t *testing.T) {
	products := &mockProductStore{}
	products.On("GetProduct", mock.Anything, "p-1").Return(&types.Product{ID: "p-1"}, nil)

	_, err := NewProductService(products).GetProduct(context.Background(), "p-1")
	requireAppError(t, err, http.StatusNotFound, "")
}

func TestProductService_CreateRequiresPositivePrice(t *testing.T) {
	_, err := NewProductService(&mockProductStore{}).CreateProduct(context.Background(), "s-1",
		&types.ProductCreate{Name: "Gravel", Price: decimal.Zero})
	requireAppError(t, err, http.StatusBadRequest, "")
}

func TestProductService_UpdateOtherStoreForbidden(t *testing.T) {
	products := &mockProductStore{}
	products.On("GetProduct", mock.Anything, "p-1").Return(&types.Product{ID: "p-1", StoreID: "s-2", IsActive: true}, nil)
	svc := NewProductService(products)

	stock := 3
	_, err := svc.UpdateProduct(context.Background(), "s-1", "p-1", &types.ProductUpdate{StockQuantity: &stock})
	requireAppError(t, err, http.StatusForbidden, "")

	err = svc.DeleteProduct(context.Background(), "s-1", "p-1")
	requireAppError(t, err, http.StatusForbidden, "")
	products.AssertNotCalled(t, "DeactivateProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_DeleteOwnIsSoft(t *testing.T) {
	products := &mockProductStore{}
	products.On("GetProduct", mock.Anything, "p-1").Return(&types.Product{ID: "p-1", StoreID: "s-1", IsActive: true}, nil)
	products.On("DeactivateProduct", mock.Anything, "s-1", "p-1").Return(nil)

	require.NoError(t, NewProductService(products).DeleteProduct(context.Background(), "s-1", "p-1"))
	products.AssertExpectations(t)
}
