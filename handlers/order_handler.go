package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/middleware"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// OrderHandler serves both the buyer and the store side of orders.
type OrderHandler struct {
	orderService OrderServiceInterface
}

func NewOrderHandler(orderService OrderServiceInterface) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CheckoutResponse lists the orders created by one checkout, one per store.
type CheckoutResponse struct {
	Orders []*types.Order `json:"orders"`
}

// Checkout godoc
// @Summary Place orders from the cart
// @Description Creates one order per store in the cart, reserves stock and clears the cart
// @Tags orders
// @Accept json
// @Produce json
// @Param request body types.CheckoutRequest true "Shipping details"
// @Success 201 {object} CheckoutResponse
// @Failure 400 {object} types.ErrorResponse "Empty cart or invalid input"
// @Failure 409 {object} types.ErrorResponse "Insufficient stock"
// @Router /orders/checkout [post]
// @Security BearerAuth
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req types.CheckoutRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	orders, err := h.orderService.Checkout(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, CheckoutResponse{Orders: orders})
}

// ListOrders godoc
// @Summary List my orders
// @Tags orders
// @Produce json
// @Param status query string false "Order status"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.PaginatedResponse
// @Failure 400 {object} types.ErrorResponse
// @Router /orders [get]
// @Security BearerAuth
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var filter types.OrderFilter
	if !bindQueryOrError(c, &filter) {
		return
	}

	orders, total, err := h.orderService.ListUserOrders(c.Request.Context(), getUserIDFromContext(c), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, paginated(orders, filter.Page, total))
}

// GetOrder godoc
// @Summary Get one of my orders
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} types.Order
// @Failure 404 {object} types.ErrorResponse
// @Router /orders/{id} [get]
// @Security BearerAuth
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetUserOrder(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder godoc
// @Summary Cancel one of my orders
// @Description Allowed while the order is pending or confirmed; stock is restored
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} types.Order
// @Failure 400 {object} types.ErrorResponse "Invalid status transition"
// @Failure 404 {object} types.ErrorResponse
// @Router /orders/{id}/cancel [post]
// @Security BearerAuth
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.orderService.CancelUserOrder(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListStoreOrders godoc
// @Summary List orders placed with my store
// @Tags store
// @Produce json
// @Param status query string false "Order status"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.PaginatedResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /store/orders [get]
// @Security BearerAuth
func (h *OrderHandler) ListStoreOrders(c *gin.Context) {
	var filter types.OrderFilter
	if !bindQueryOrError(c, &filter) {
		return
	}

	orders, total, err := h.orderService.ListStoreOrders(c.Request.Context(), middleware.GetStoreID(c), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, paginated(orders, filter.Page, total))
}

// GetStoreOrder godoc
// @Summary Get an order placed with my store
// @Tags store
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} types.Order
// @Failure 403 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /store/orders/{id} [get]
// @Security BearerAuth
func (h *OrderHandler) GetStoreOrder(c *gin.Context) {
	order, err := h.orderService.GetStoreOrder(c.Request.Context(), middleware.GetStoreID(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStoreOrderStatus godoc
// @Summary Move an order through its lifecycle
// @Description pending → confirmed|cancelled, confirmed → shipped|cancelled, shipped → delivered
// @Tags store
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body types.OrderStatusUpdate true "Next status"
// @Success 200 {object} types.Order
// @Failure 400 {object} types.ErrorResponse "Invalid status transition"
// @Failure 403 {object} types.ErrorResponse
// @Router /store/orders/{id}/status [patch]
// @Security BearerAuth
func (h *OrderHandler) UpdateStoreOrderStatus(c *gin.Context) {
	var req types.OrderStatusUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStoreOrderStatus(c.Request.Context(), middleware.GetStoreID(c), c.Param("id"), req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}
