package middleware

import (
	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// contextKey defines a type for gin context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey holds the authenticated user's ID (string).
	UserIDKey contextKey = "user_id"
	// AccountTypeKey holds the caller's types.AccountType.
	AccountTypeKey contextKey = "account_type"
	// SessionKey holds the resolved *auth.Session.
	SessionKey contextKey = "session"
	// StoreIDKey holds the caller's store ID once RequireStore has run.
	StoreIDKey contextKey = "store_id"
)

// GetUserID returns the authenticated user ID or "".
func GetUserID(c *gin.Context) string {
	return c.GetString(string(UserIDKey))
}

// GetAccountType returns the caller's account type or "".
func GetAccountType(c *gin.Context) types.AccountType {
	if v, ok := c.Get(string(AccountTypeKey)); ok {
		if at, ok := v.(types.AccountType); ok {
			return at
		}
	}
	return ""
}

// GetSession returns the session attached by AuthMiddleware.
func GetSession(c *gin.Context) *auth.Session {
	if v, ok := c.Get(string(SessionKey)); ok {
		if s, ok := v.(*auth.Session); ok {
			return s
		}
	}
	return nil
}

// GetStoreID returns the store resolved by RequireStore or "".
func GetStoreID(c *gin.Context) string {
	return c.GetString(string(StoreIDKey))
}

func setSession(c *gin.Context, s *auth.Session) {
	c.Set(string(SessionKey), s)
	c.Set(string(UserIDKey), s.UserID)
	if s.AccountType != "" {
		c.Set(string(AccountTypeKey), s.AccountType)
	}
}
