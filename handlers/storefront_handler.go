package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// StorefrontHandler serves public store pages and the owner's store profile.
type StorefrontHandler struct {
	storefrontService StorefrontServiceInterface
}

func NewStorefrontHandler(storefrontService StorefrontServiceInterface) *StorefrontHandler {
	return &StorefrontHandler{storefrontService: storefrontService}
}

// ListStores godoc
// @Summary List stores
// @Tags stores
// @Produce json
// @Param city query string false "City"
// @Param q query string false "Search text"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.PaginatedResponse
// @Router /stores [get]
func (h *StorefrontHandler) ListStores(c *gin.Context) {
	var filter types.StorefrontFilter
	if !bindQueryOrError(c, &filter) {
		return
	}

	stores, total, err := h.storefrontService.ListStorefronts(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, paginated(stores, filter.Page, total))
}

// GetStore godoc
// @Summary Get a store
// @Tags stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} types.Storefront
// @Failure 404 {object} types.ErrorResponse
// @Router /stores/{id} [get]
func (h *StorefrontHandler) GetStore(c *gin.Context) {
	store, err := h.storefrontService.GetStorefront(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// CreateProfile godoc
// @Summary Create my store
// @Tags store
// @Accept json
// @Produce json
// @Param request body types.StorefrontCreate true "Store"
// @Success 201 {object} types.Storefront
// @Failure 400 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Store already exists"
// @Router /store/profile [post]
// @Security BearerAuth
func (h *StorefrontHandler) CreateProfile(c *gin.Context) {
	var req types.StorefrontCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	store, err := h.storefrontService.CreateStorefront(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, store)
}

// GetProfile godoc
// @Summary Get my store
// @Tags store
// @Produce json
// @Success 200 {object} types.Storefront
// @Failure 404 {object} types.ErrorResponse
// @Router /store/profile [get]
// @Security BearerAuth
func (h *StorefrontHandler) GetProfile(c *gin.Context) {
	store, err := h.storefrontService.GetOwnStorefront(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, store)
}

// UpdateProfile godoc
// @Summary Update my store
// @Tags store
// @Accept json
// @Produce json
// @Param request body types.StorefrontUpdate true "Changed fields"
// @Success 200 {object} types.Storefront
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /store/profile [put]
// @Security BearerAuth
func (h *StorefrontHandler) UpdateProfile(c *gin.Context) {
	var req types.StorefrontUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	store, err := h.storefrontService.UpdateOwnStorefront(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, store)
}
