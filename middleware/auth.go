package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves API credentials into a session.
type Authenticator interface {
	FromAccessToken(ctx context.Context, token string, r *http.Request) (*auth.Session, error)
	VerifySessionCookie(value string) (*auth.Session, error)
}

// AuthMiddleware authenticates API calls. The credential is taken from the
// Authorization header, else the sb-access-token cookie, else the signed
// temp_auth_user cookie. An explicit bearer token is never overridden by
// cookies.
func AuthMiddleware(sessions Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()
		ctx := c.Request.Context()

		if bearer := bearerToken(c); bearer != "" {
			session, err := sessions.FromAccessToken(ctx, bearer, c.Request)
			if err != nil {
				abortWithTokenError(c, err)
				return
			}
			setSession(c, session)
			c.Next()
			return
		}

		var tokenErr error
		if cookie := auth.Read(c.Request, auth.CookieAccessToken); cookie != "" {
			session, err := sessions.FromAccessToken(ctx, cookie, c.Request)
			if err == nil {
				setSession(c, session)
				c.Next()
				return
			}
			tokenErr = err
		}

		if signed := auth.Read(c.Request, auth.CookieTempAuthUser); signed != "" {
			session, err := sessions.VerifySessionCookie(signed)
			if err == nil {
				setSession(c, session)
				c.Next()
				return
			}
			log.Debugw("Session cookie rejected", "error", err, "path", c.Request.URL.Path)
			if tokenErr == nil {
				tokenErr = err
			}
		}

		if tokenErr != nil {
			abortWithTokenError(c, tokenErr)
			return
		}
		_ = c.Error(apperrors.Unauthorized("missing_auth", "Authorization required"))
		c.Abort()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func abortWithTokenError(c *gin.Context, err error) {
	log := logger.GetLogger()
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		_ = c.Error(apperrors.Unauthorized(CodeTokenExpired, "Your session has expired"))
	case errors.Is(err, auth.ErrTokenInvalid), errors.Is(err, auth.ErrTokenMissingClaim),
		errors.Is(err, auth.ErrJWKSKeyNotFound):
		log.Warnw("Invalid authentication token", "error", err, "path", c.Request.URL.Path, "client_ip", c.ClientIP())
		_ = c.Error(apperrors.Unauthorized("invalid_token", "Invalid authentication token"))
	default:
		// Account type lookups and JWKS outages land here.
		log.Errorw("Authentication could not be completed", "error", err, "path", c.Request.URL.Path)
		_ = c.Error(apperrors.Unauthorized("auth_unavailable", "Authentication could not be completed"))
	}
	c.Abort()
}

// RequireAccountType rejects callers whose account type is not allowed.
// AuthMiddleware normally sets the type; the resolver covers sessions that
// arrived without one.
func RequireAccountType(resolver *auth.AccountTypeResolver, allowed ...types.AccountType) gin.HandlerFunc {
	return func(c *gin.Context) {
		at := GetAccountType(c)
		if at == "" {
			userID := GetUserID(c)
			if userID == "" {
				_ = c.Error(apperrors.Unauthorized("missing_auth", "Authentication required"))
				c.Abort()
				return
			}
			resolved, err := resolver.Resolve(c.Request.Context(), userID)
			if err != nil {
				_ = c.Error(apperrors.Forbidden("Account type could not be determined", err.Error()))
				c.Abort()
				return
			}
			at = resolved
			c.Set(string(AccountTypeKey), at)
		}

		for _, a := range allowed {
			if at == a {
				c.Next()
				return
			}
		}
		_ = c.Error(apperrors.Forbidden("This area is not available for your account type", string(at)))
		c.Abort()
	}
}
