package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/binna/binna-backend/internal/supabase"
	"github.com/binna/binna-backend/logger"
)

// TokenRefresher exchanges a refresh token for a new session.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*supabase.Session, error)
}

// SessionResolver turns request cookies into a Session.
type SessionResolver struct {
	validator    TokenValidator
	refresher    TokenRefresher
	signer       *SessionSigner
	accountTypes *AccountTypeResolver
	jar          *CookieJar
}

func NewSessionResolver(validator TokenValidator, refresher TokenRefresher, signer *SessionSigner,
	accountTypes *AccountTypeResolver, jar *CookieJar) *SessionResolver {
	return &SessionResolver{
		validator:    validator,
		refresher:    refresher,
		signer:       signer,
		accountTypes: accountTypes,
		jar:          jar,
	}
}

// Resolve returns the caller's session or nil for an anonymous visitor.
// It never fails: every error degrades to anonymous. An expired access token
// is refreshed when a refresh cookie is present and the new cookies are
// written to w.
func (sr *SessionResolver) Resolve(w http.ResponseWriter, r *http.Request) *Session {
	log := logger.GetLogger()
	ctx := r.Context()

	if access := Read(r, CookieAccessToken); access != "" {
		session, err := sr.FromAccessToken(ctx, access, r)
		if err == nil {
			return session
		}
		if errors.Is(err, ErrTokenExpired) {
			if refreshed := sr.refresh(ctx, w, r); refreshed != nil {
				return refreshed
			}
		} else {
			log.Debugw("Access token cookie rejected", "error", err)
		}
	}

	if signed := Read(r, CookieTempAuthUser); signed != "" {
		session, err := sr.signer.Verify(signed)
		if err == nil {
			return session
		}
		log.Debugw("Session cookie rejected", "error", err)
	}
	return nil
}

// FromAccessToken verifies a Supabase access token and attaches the account
// type. r may be nil; when given, a valid temp_auth_user cookie for the same
// user supplies the account type without a lookup.
func (sr *SessionResolver) FromAccessToken(ctx context.Context, token string, r *http.Request) (*Session, error) {
	claims, err := sr.validator.Validate(token)
	if err != nil {
		return nil, err
	}

	session := &Session{UserID: claims.UserID, Email: claims.Email, Source: SourceSupabase}

	if r != nil {
		if signed := Read(r, CookieTempAuthUser); signed != "" {
			if temp, err := sr.signer.Verify(signed); err == nil && temp.UserID == claims.UserID {
				session.AccountType = temp.AccountType
				return session, nil
			}
		}
	}

	at, err := sr.accountTypes.Resolve(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	session.AccountType = at
	return session, nil
}

func (sr *SessionResolver) refresh(ctx context.Context, w http.ResponseWriter, r *http.Request) *Session {
	refreshToken := Read(r, CookieRefreshToken)
	if refreshToken == "" || sr.refresher == nil {
		return nil
	}

	issued, err := sr.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		logger.GetLogger().Infow("Session refresh failed", "error", err)
		return nil
	}
	session, err := sr.Issue(ctx, w, issued)
	if err != nil {
		logger.GetLogger().Warnw("Failed to issue refreshed session", "error", err)
		return nil
	}
	return session
}

// Issue resolves the account type for a fresh Supabase session, signs the
// fallback cookie and writes every session cookie.
func (sr *SessionResolver) Issue(ctx context.Context, w http.ResponseWriter, s *supabase.Session) (*Session, error) {
	at, err := sr.accountTypes.Resolve(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	session := &Session{UserID: s.UserID, Email: s.Email, AccountType: at, Source: SourceSupabase}

	signed, err := sr.signer.Sign(session)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session cookie: %w", err)
	}
	sr.jar.Write(w, &IssuedSession{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		AccessTTL:    time.Duration(s.ExpiresIn) * time.Second,
		Session:      session,
	}, signed)
	return session, nil
}

// Clear removes every session cookie.
func (sr *SessionResolver) Clear(w http.ResponseWriter) {
	sr.jar.Clear(w)
}

// VerifySessionCookie checks a temp_auth_user value.
func (sr *SessionResolver) VerifySessionCookie(value string) (*Session, error) {
	return sr.signer.Verify(value)
}
