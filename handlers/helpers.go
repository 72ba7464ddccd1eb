package handlers

import (
	"encoding/json"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/middleware"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// normalizer is implemented by payloads that clean up their fields before
// the binding rules run.
type normalizer interface {
	Normalize()
}

// getUserIDFromContext extracts the authenticated user ID from the Gin context.
// Returns empty string if not found; routes behind AuthMiddleware always have one.
func getUserIDFromContext(c *gin.Context) string {
	return middleware.GetUserID(c)
}

// bindJSONOrError binds JSON request body and sets validation error if binding fails.
// Returns true if binding succeeded, false if error was set (caller should return).
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	var err error
	if n, ok := obj.(normalizer); ok {
		if err = json.NewDecoder(c.Request.Body).Decode(obj); err == nil {
			n.Normalize()
			err = binding.Validator.ValidateStruct(obj)
		}
	} else {
		err = c.ShouldBindJSON(obj)
	}
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request payload", err.Error()))
		return false
	}
	return true
}

func bindQueryOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid query parameters", err.Error()))
		return false
	}
	return true
}

// paginated renders a listing envelope for the normalized window.
func paginated(items interface{}, page types.Page, total int) types.PaginatedResponse {
	return types.NewPaginatedResponse(items, page.Normalize(), total)
}
