package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthService HealthServiceInterface
}

func NewHealthHandler(healthService HealthServiceInterface) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// LivenessCheck answers as long as the process serves HTTP.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ReadinessCheck fails while Postgres or Redis is unreachable so the
// load balancer stops routing to this instance.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	status, code := types.HealthStatusUp, http.StatusOK
	if !h.healthService.Ready(c.Request.Context()) {
		status, code = types.HealthStatusDown, http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status})
}

// DetailedHealth godoc
// @Summary Service health
// @Description Component status of the database, Redis and the order stream
// @Tags health
// @Produce json
// @Success 200 {object} types.HealthCheck
// @Failure 503 {object} types.HealthCheck
// @Router /health [get]
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())
	code := http.StatusOK
	if health.Status == types.HealthStatusDown {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, health)
}
