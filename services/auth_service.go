package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/internal/supabase"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
)

// AuthGateway is the Supabase Auth surface used for sign-in flows.
type AuthGateway interface {
	SignIn(ctx context.Context, email, password string) (*supabase.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*supabase.Session, error)
	Logout(ctx context.Context, accessToken string) error
}

// SessionIssuer writes and clears session cookies. *auth.SessionResolver
// implements it.
type SessionIssuer interface {
	Issue(ctx context.Context, w http.ResponseWriter, s *supabase.Session) (*auth.Session, error)
	Clear(w http.ResponseWriter)
}

type AuthService struct {
	gateway   AuthGateway
	sessions  SessionIssuer
	validator auth.TokenValidator
	now       func() time.Time
}

func NewAuthService(gateway AuthGateway, sessions SessionIssuer, validator auth.TokenValidator) *AuthService {
	return &AuthService{
		gateway:   gateway,
		sessions:  sessions,
		validator: validator,
		now:       time.Now,
	}
}

// Login signs in with email and password and writes the session cookies.
func (s *AuthService) Login(ctx context.Context, w http.ResponseWriter, req *types.LoginRequest) (*types.AuthResponse, error) {
	issued, err := s.gateway.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, supabase.ErrInvalidCredentials) {
			logger.GetLogger().Infow("Login rejected", "email", logger.MaskEmail(req.Email))
			return nil, apperrors.Unauthorized("invalid_credentials", "Invalid email or password")
		}
		return nil, apperrors.UpstreamFailure("Supabase Auth", err)
	}
	return s.establish(ctx, w, issued)
}

// SyncLogin adopts a session the browser obtained from Supabase directly.
func (s *AuthService) SyncLogin(ctx context.Context, w http.ResponseWriter, req *types.SyncLoginRequest) (*types.AuthResponse, error) {
	claims, err := s.validator.Validate(req.AccessToken)
	if err != nil {
		return nil, tokenError(err)
	}

	expiresIn := int(claims.ExpiresAt - s.now().Unix())
	if expiresIn <= 0 {
		return nil, apperrors.Unauthorized("token_expired", "Access token has expired")
	}

	return s.establish(ctx, w, &supabase.Session{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		ExpiresIn:    expiresIn,
		ExpiresAt:    claims.ExpiresAt,
		UserID:       claims.UserID,
		Email:        claims.Email,
	})
}

// Refresh exchanges a refresh token, from the body or else the cookie, for
// a new session. A rejected token clears the cookies.
func (s *AuthService) Refresh(ctx context.Context, w http.ResponseWriter, r *http.Request, refreshToken string) (*types.AuthResponse, error) {
	if refreshToken == "" {
		refreshToken = auth.Read(r, auth.CookieRefreshToken)
	}
	if refreshToken == "" {
		return nil, apperrors.Unauthorized("missing_refresh_token", "No refresh token provided")
	}

	issued, err := s.gateway.Refresh(ctx, refreshToken)
	if err != nil {
		logger.GetLogger().Infow("Refresh rejected", "error", err)
		s.sessions.Clear(w)
		return nil, apperrors.Unauthorized("invalid_refresh_token", "Session has expired, please sign in again")
	}
	return s.establish(ctx, w, issued)
}

// Logout revokes the Supabase session when possible and always clears the
// cookies.
func (s *AuthService) Logout(ctx context.Context, w http.ResponseWriter, accessToken string) {
	if accessToken != "" {
		if err := s.gateway.Logout(ctx, accessToken); err != nil {
			logger.GetLogger().Warnw("Supabase logout failed", "error", err)
		}
	}
	s.sessions.Clear(w)
}

// SessionInfo describes an already resolved session.
func (s *AuthService) SessionInfo(session *auth.Session) *types.SessionResponse {
	return &types.SessionResponse{
		UserID:      session.UserID,
		Email:       session.Email,
		AccountType: session.AccountType,
		RedirectURL: session.AccountType.DashboardPath(),
	}
}

func (s *AuthService) establish(ctx context.Context, w http.ResponseWriter, issued *supabase.Session) (*types.AuthResponse, error) {
	session, err := s.sessions.Issue(ctx, w, issued)
	if err != nil {
		logger.GetLogger().Errorw("Failed to issue session", "userID", issued.UserID, "error", err)
		return nil, apperrors.Wrap(err, apperrors.ServerError, "Failed to establish session")
	}
	return &types.AuthResponse{
		User:        types.AuthUser{ID: session.UserID, Email: session.Email},
		AccountType: session.AccountType,
		RedirectURL: session.AccountType.DashboardPath(),
		ExpiresIn:   issued.ExpiresIn,
	}, nil
}

func tokenError(err error) error {
	if errors.Is(err, auth.ErrTokenExpired) {
		return apperrors.Unauthorized("token_expired", "Access token has expired")
	}
	return apperrors.Unauthorized("invalid_token", "Access token is invalid")
}
