package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/middleware"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

type WarrantyHandler struct {
	warrantyService WarrantyServiceInterface
}

func NewWarrantyHandler(warrantyService WarrantyServiceInterface) *WarrantyHandler {
	return &WarrantyHandler{warrantyService: warrantyService}
}

// ListWarranties godoc
// @Summary List my warranties
// @Tags warranties
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.PaginatedResponse
// @Router /warranties [get]
// @Security BearerAuth
func (h *WarrantyHandler) ListWarranties(c *gin.Context) {
	var page types.Page
	if !bindQueryOrError(c, &page) {
		return
	}

	warranties, total, err := h.warrantyService.ListUserWarranties(c.Request.Context(), getUserIDFromContext(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, paginated(warranties, page, total))
}

// GetWarranty godoc
// @Summary Get one of my warranties
// @Tags warranties
// @Produce json
// @Param id path string true "Warranty ID"
// @Success 200 {object} types.Warranty
// @Failure 404 {object} types.ErrorResponse
// @Router /warranties/{id} [get]
// @Security BearerAuth
func (h *WarrantyHandler) GetWarranty(c *gin.Context) {
	warranty, err := h.warrantyService.GetUserWarranty(c.Request.Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, warranty)
}

// IssueWarranty godoc
// @Summary Issue a warranty for a delivered product
// @Tags store
// @Accept json
// @Produce json
// @Param request body types.WarrantyCreate true "Warranty"
// @Success 201 {object} types.Warranty
// @Failure 400 {object} types.ErrorResponse "Order not delivered or product not in order"
// @Failure 403 {object} types.ErrorResponse
// @Router /store/warranties [post]
// @Security BearerAuth
func (h *WarrantyHandler) IssueWarranty(c *gin.Context) {
	var req types.WarrantyCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	warranty, err := h.warrantyService.IssueWarranty(c.Request.Context(), middleware.GetStoreID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, warranty)
}
