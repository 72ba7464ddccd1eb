package middleware

import (
	"context"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/gin-gonic/gin"
)

// StoreLookup finds the store operated by a user.
type StoreLookup interface {
	StoreIDForOwner(ctx context.Context, ownerID string) (string, error)
}

// RequireStore attaches the caller's store ID. Callers without a store get
// 403; other lookup failures pass through.
func RequireStore(stores StoreLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, err := stores.StoreIDForOwner(c.Request.Context(), GetUserID(c))
		if err != nil {
			if apperrors.IsType(err, apperrors.NotFoundError) {
				err = apperrors.Forbidden("Create your store profile first", "")
			}
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(string(StoreIDKey), storeID)
		c.Next()
	}
}

// OptionalStore attaches the caller's store ID when there is one.
func OptionalStore(stores StoreLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if storeID, err := stores.StoreIDForOwner(c.Request.Context(), GetUserID(c)); err == nil {
			c.Set(string(StoreIDKey), storeID)
		}
		c.Next()
	}
}
