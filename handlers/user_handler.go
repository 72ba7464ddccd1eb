package handlers

import (
	"net/http"

	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe godoc
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} types.User
// @Failure 401 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /users/me [get]
// @Security BearerAuth
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetMe(c.Request.Context(), getUserIDFromContext(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update current user
// @Description Updates full_name, phone and avatar_url; omitted fields are kept
// @Tags users
// @Accept json
// @Produce json
// @Param request body types.UserUpdate true "Profile fields"
// @Success 200 {object} types.User
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /users/me [put]
// @Security BearerAuth
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req types.UserUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	user, err := h.userService.UpdateMe(c.Request.Context(), getUserIDFromContext(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}
