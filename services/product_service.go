package services

import (
	"context"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/store"
	"github.com/binna/binna-backend/pkg/valueobjects"
	"github.com/binna/binna-backend/types"
)

type ProductService struct {
	products store.ProductStore
}

func NewProductService(products store.ProductStore) *ProductService {
	return &ProductService{products: products}
}

// ListProducts is the public catalogue; only active products are listed.
func (s *ProductService) ListProducts(ctx context.Context, filter types.ProductFilter) ([]*types.Product, int, error) {
	filter.Page = filter.Page.Normalize()
	return s.products.ListProducts(ctx, filter)
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*types.Product, error) {
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, apperrors.NotFound("Product", id)
	}
	return p, nil
}

func (s *ProductService) ListStoreProducts(ctx context.Context, storeID string, page types.Page) ([]*types.Product, int, error) {
	return s.products.ListStoreProducts(ctx, storeID, page.Normalize())
}

func (s *ProductService) CreateProduct(ctx context.Context, storeID string, in *types.ProductCreate) (*types.Product, error) {
	if err := valueobjects.CheckAmount("price", in.Price, valueobjects.Positive); err != nil {
		return nil, err
	}
	return s.products.CreateProduct(ctx, storeID, in)
}

// UpdateProduct edits a product of the caller's store. Products of other
// stores are forbidden.
func (s *ProductService) UpdateProduct(ctx context.Context, storeID, id string, update *types.ProductUpdate) (*types.Product, error) {
	if update.Price != nil {
		if err := valueobjects.CheckAmount("price", *update.Price, valueobjects.Positive); err != nil {
			return nil, err
		}
	}
	if err := s.checkOwnership(ctx, storeID, id); err != nil {
		return nil, err
	}
	return s.products.UpdateProduct(ctx, storeID, id, update)
}

func (s *ProductService) DeleteProduct(ctx context.Context, storeID, id string) error {
	if err := s.checkOwnership(ctx, storeID, id); err != nil {
		return err
	}
	return s.products.DeactivateProduct(ctx, storeID, id)
}

func (s *ProductService) checkOwnership(ctx context.Context, storeID, id string) error {
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if p.StoreID != storeID {
		return apperrors.Forbidden("Product belongs to another store", "")
	}
	return nil
}
