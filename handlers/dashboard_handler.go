package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/middleware"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService DashboardServiceInterface
}

func NewDashboardHandler(dashboardService DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// UserDashboard godoc
// @Summary Buyer dashboard
// @Description Order counts, spend, active projects, cart size and recent orders
// @Tags dashboard
// @Produce json
// @Success 200 {object} types.UserDashboard
// @Failure 401 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /user/dashboard [get]
// @Security BearerAuth
func (h *DashboardHandler) UserDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.UserDashboard(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// StoreDashboard godoc
// @Summary Store dashboard
// @Description Order counts, revenue, inventory counts and recent orders of the caller's store
// @Tags dashboard
// @Produce json
// @Success 200 {object} types.StoreDashboard
// @Failure 401 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /store/dashboard [get]
// @Security BearerAuth
func (h *DashboardHandler) StoreDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.StoreDashboard(c.Request.Context(), middleware.GetStoreID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
