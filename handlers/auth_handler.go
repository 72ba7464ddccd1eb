package handlers

import (
	"net/http"
	"strings"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/middleware"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles sign-in, session and page gate endpoints.
type AuthHandler struct {
	authService AuthServiceInterface
	sessions    middleware.PageSessions
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface, sessions middleware.PageSessions) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Login godoc
// @Summary Sign in with email and password
// @Description Signs in through Supabase Auth and sets the session cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body types.LoginRequest true "Credentials"
// @Success 200 {object} types.AuthResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse "Invalid credentials"
// @Failure 429 {object} types.ErrorResponse "Too many attempts"
// @Failure 502 {object} types.ErrorResponse "Supabase Auth unavailable"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), c.Writer, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.GetLogger().Infow("User signed in", "userID", resp.User.ID, "accountType", resp.AccountType)
	c.JSON(http.StatusOK, resp)
}

// SyncLogin godoc
// @Summary Adopt a client-side Supabase session
// @Description Verifies tokens obtained by the browser and sets the same cookies as login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body types.SyncLoginRequest true "Supabase tokens"
// @Success 200 {object} types.AuthResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /auth/sync-login [post]
func (h *AuthHandler) SyncLogin(c *gin.Context) {
	var req types.SyncLoginRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	resp, err := h.authService.SyncLogin(c.Request.Context(), c.Writer, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Refresh the session
// @Description Uses the refresh token from the body, or the refresh cookie, and rewrites the cookies
// @Tags auth
// @Accept json
// @Produce json
// @Param request body types.RefreshRequest false "Refresh token"
// @Success 200 {object} types.AuthResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req types.RefreshRequest
	// The body is optional; the cookie is the fallback.
	if c.Request.ContentLength > 0 && !bindJSONOrError(c, &req) {
		return
	}

	resp, err := h.authService.Refresh(c.Request.Context(), c.Writer, c.Request, req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Sign out
// @Description Revokes the Supabase session when possible and clears every auth cookie
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := ""
	if header := c.GetHeader("Authorization"); len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		token = strings.TrimSpace(header[7:])
	}
	if token == "" {
		token = auth.Read(c.Request, auth.CookieAccessToken)
	}

	h.authService.Logout(c.Request.Context(), c.Writer, token)
	c.Status(http.StatusNoContent)
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} types.SessionResponse
// @Failure 401 {object} types.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	session := h.sessions.Resolve(c.Writer, c.Request)
	if session == nil {
		_ = c.Error(apperrors.Unauthorized("no_session", "Not signed in"))
		return
	}
	c.JSON(http.StatusOK, h.authService.SessionInfo(session))
}

// Gate godoc
// @Summary Page gate decision
// @Description Returns whether a navigation to path is allowed or where it should redirect
// @Tags auth
// @Produce json
// @Param path query string true "Page path"
// @Success 200 {object} auth.Decision
// @Failure 400 {object} types.ErrorResponse
// @Router /auth/gate [get]
func (h *AuthHandler) Gate(c *gin.Context) {
	path := c.Query("path")
	if !strings.HasPrefix(path, "/") {
		_ = c.Error(apperrors.ValidationFailed("Invalid path", "path must be an absolute page path"))
		return
	}
	c.JSON(http.StatusOK, auth.Decide(path, h.sessions.Resolve(c.Writer, c.Request)))
}
