package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

type SupervisorHandler struct {
	supervisorService SupervisorServiceInterface
}

func NewSupervisorHandler(supervisorService SupervisorServiceInterface) *SupervisorHandler {
	return &SupervisorHandler{supervisorService: supervisorService}
}

// ListSupervisors godoc
// @Summary List supervising engineers
// @Tags supervisors
// @Produce json
// @Param city query string false "City"
// @Param specialization query string false "Specialization"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.PaginatedResponse
// @Router /supervisors [get]
func (h *SupervisorHandler) ListSupervisors(c *gin.Context) {
	var filter types.SupervisorFilter
	if !bindQueryOrError(c, &filter) {
		return
	}

	supervisors, total, err := h.supervisorService.ListSupervisors(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, paginated(supervisors, filter.Page, total))
}

// GetSupervisor godoc
// @Summary Get a supervising engineer
// @Tags supervisors
// @Produce json
// @Param id path string true "Supervisor ID"
// @Success 200 {object} types.Supervisor
// @Failure 404 {object} types.ErrorResponse
// @Router /supervisors/{id} [get]
func (h *SupervisorHandler) GetSupervisor(c *gin.Context) {
	supervisor, err := h.supervisorService.GetSupervisor(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, supervisor)
}

// UpsertProfile godoc
// @Summary Create or update my supervisor profile
// @Tags supervisors
// @Accept json
// @Produce json
// @Param request body types.SupervisorUpsert true "Profile"
// @Success 200 {object} types.Supervisor
// @Failure 400 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /supervisor/profile [put]
// @Security BearerAuth
func (h *SupervisorHandler) UpsertProfile(c *gin.Context) {
	var req types.SupervisorUpsert
	if !bindJSONOrError(c, &req) {
		return
	}

	supervisor, err := h.supervisorService.UpsertProfile(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, supervisor)
}
