package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// CartHandler serves the caller's shopping cart.
type CartHandler struct {
	cartService CartServiceInterface
}

func NewCartHandler(cartService CartServiceInterface) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart godoc
// @Summary Get cart
// @Description Priced view of the caller's cart with tax and total
// @Tags cart
// @Produce json
// @Success 200 {object} types.CartSummary
// @Failure 401 {object} types.ErrorResponse
// @Router /cart [get]
// @Security BearerAuth
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem godoc
// @Summary Add a product to the cart
// @Description Increments the existing line for the product; the total may not exceed stock
// @Tags cart
// @Accept json
// @Produce json
// @Param request body types.AddCartItemRequest true "Product and quantity"
// @Success 201 {object} types.CartItem
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse "Product not found"
// @Failure 409 {object} types.ErrorResponse "Insufficient stock"
// @Router /cart [post]
// @Security BearerAuth
func (h *CartHandler) AddItem(c *gin.Context) {
	var req types.AddCartItemRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Change a cart line quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param itemId path string true "Cart item ID"
// @Param request body types.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} types.CartItem
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Insufficient stock"
// @Router /cart/{itemId} [put]
// @Security BearerAuth
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req types.UpdateCartItemRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	item, err := h.cartService.UpdateItem(c.Request.Context(), getUserIDFromContext(c), c.Param("itemId"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveItem godoc
// @Summary Remove a cart line
// @Tags cart
// @Param itemId path string true "Cart item ID"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /cart/{itemId} [delete]
// @Security BearerAuth
func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.cartService.RemoveItem(c.Request.Context(), getUserIDFromContext(c), c.Param("itemId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear godoc
// @Summary Empty the cart
// @Tags cart
// @Success 204
// @Router /cart [delete]
// @Security BearerAuth
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), getUserIDFromContext(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
