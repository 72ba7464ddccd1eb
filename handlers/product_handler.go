package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/middleware"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves the public catalogue and a store's own products.
type ProductHandler struct {
	productService ProductServiceInterface
}

func NewProductHandler(productService ProductServiceInterface) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts godoc
// @Summary Browse the catalogue
// @Tags products
// @Produce json
// @Param store_id query string false "Store ID"
// @Param category query string false "Category"
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.PaginatedResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filter types.ProductFilter
	if !bindQueryOrError(c, &filter) {
		return
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, paginated(products, filter.Page, total))
}

// GetProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} types.Product
// @Failure 404 {object} types.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListStoreProducts godoc
// @Summary List my store's products
// @Description Includes inactive products
// @Tags store
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.PaginatedResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /store/products [get]
// @Security BearerAuth
func (h *ProductHandler) ListStoreProducts(c *gin.Context) {
	var page types.Page
	if !bindQueryOrError(c, &page) {
		return
	}

	products, total, err := h.productService.ListStoreProducts(c.Request.Context(), middleware.GetStoreID(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, paginated(products, page, total))
}

// CreateProduct godoc
// @Summary Add a product to my store
// @Tags store
// @Accept json
// @Produce json
// @Param request body types.ProductCreate true "Product"
// @Success 201 {object} types.Product
// @Failure 400 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /store/products [post]
// @Security BearerAuth
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req types.ProductCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), middleware.GetStoreID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update one of my products
// @Tags store
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body types.ProductUpdate true "Changed fields"
// @Success 200 {object} types.Product
// @Failure 403 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /store/products/{id} [put]
// @Security BearerAuth
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req types.ProductUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), middleware.GetStoreID(c), c.Param("id"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Deactivate one of my products
// @Tags store
// @Param id path string true "Product ID"
// @Success 204
// @Failure 403 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /store/products/{id} [delete]
// @Security BearerAuth
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), middleware.GetStoreID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
