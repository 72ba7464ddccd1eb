package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes read-only Medusa admin views to admin accounts.
type AdminHandler struct {
	catalog MedusaCatalog
}

func NewAdminHandler(catalog MedusaCatalog) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

// ListProducts godoc
// @Summary List Medusa products
// @Tags admin
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.MedusaList[types.MedusaProduct]
// @Failure 502 {object} types.ErrorResponse "Medusa request failed"
// @Failure 503 {object} types.ErrorResponse "Medusa not configured"
// @Router /admin/products [get]
// @Security BearerAuth
func (h *AdminHandler) ListProducts(c *gin.Context) {
	var q types.MedusaQuery
	if !bindQueryOrError(c, &q) {
		return
	}

	list, err := h.catalog.ListProducts(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetProduct godoc
// @Summary Get a Medusa product
// @Tags admin
// @Produce json
// @Param id path string true "Medusa product ID"
// @Success 200 {object} types.MedusaProduct
// @Failure 404 {object} types.ErrorResponse
// @Failure 502 {object} types.ErrorResponse
// @Router /admin/products/{id} [get]
// @Security BearerAuth
func (h *AdminHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListInventory godoc
// @Summary List Medusa inventory items
// @Tags admin
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.MedusaList[types.MedusaInventoryItem]
// @Failure 502 {object} types.ErrorResponse
// @Router /admin/inventory [get]
// @Security BearerAuth
func (h *AdminHandler) ListInventory(c *gin.Context) {
	var q types.MedusaQuery
	if !bindQueryOrError(c, &q) {
		return
	}

	list, err := h.catalog.ListInventoryItems(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListOrders godoc
// @Summary List Medusa orders
// @Tags admin
// @Produce json
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.MedusaList[types.MedusaOrder]
// @Failure 502 {object} types.ErrorResponse
// @Router /admin/orders [get]
// @Security BearerAuth
func (h *AdminHandler) ListOrders(c *gin.Context) {
	var q types.MedusaQuery
	if !bindQueryOrError(c, &q) {
		return
	}

	list, err := h.catalog.ListOrders(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}
