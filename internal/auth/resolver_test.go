package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/binna/binna-backend/internal/supabase"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

type mockValidator struct{ mock.Mock }

func (m *mockValidator) Validate(token string) (*Claims, error) {
	args := m.Called(token)
	if c, ok := args.Get(0).(*Claims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRefresher struct{ mock.Mock }

func (m *mockRefresher) Refresh(ctx context.Context, refreshToken string) (*supabase.Session, error) {
	args := m.Called(ctx, refreshToken)
	if s, ok := args.Get(0).(*supabase.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestResolver(t *testing.T, v TokenValidator, r TokenRefresher, at types.AccountType) *SessionResolver {
	t.Helper()
	source := AccountTypeSourceFunc(func(context.Context, string) (types.AccountType, error) { return at, nil })
	return NewSessionResolver(v, r, newTestSigner(t),
		NewAccountTypeResolver(nil, time.Minute, source),
		NewCookieJar("", false, time.Hour))
}

func TestResolveAnonymous(t *testing.T) {
	sr := newTestResolver(t, &mockValidator{}, nil, types.AccountTypeUser)
	req := httptest.NewRequest(http.MethodGet, "/user/dashboard", nil)

	assert.Nil(t, sr.Resolve(httptest.NewRecorder(), req))
}

func TestResolveAccessTokenCookie(t *testing.T) {
	v := &mockValidator{}
	v.On("Validate", "good").Return(&Claims{UserID: "u-1", Email: "a@b.sa"}, nil)
	sr := newTestResolver(t, v, nil, types.AccountTypeStore)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: "good"})
	// A client-writable hint never wins over the lookup.
	req.AddCookie(&http.Cookie{Name: CookieAccountType, Value: "admin"})

	s := sr.Resolve(httptest.NewRecorder(), req)
	require.NotNil(t, s)
	assert.Equal(t, "u-1", s.UserID)
	assert.Equal(t, types.AccountTypeStore, s.AccountType)
	assert.Equal(t, SourceSupabase, s.Source)
}

func TestResolveRefreshesExpiredToken(t *testing.T) {
	v := &mockValidator{}
	v.On("Validate", "stale").Return(nil, ErrTokenExpired)
	r := &mockRefresher{}
	r.On("Refresh", mock.Anything, "refresh-1").Return(&supabase.Session{
		AccessToken:  "fresh",
		RefreshToken: "refresh-2",
		ExpiresIn:    3600,
		UserID:       "u-1",
		Email:        "a@b.sa",
	}, nil)
	sr := newTestResolver(t, v, r, types.AccountTypeEngineer)

	req := httptest.NewRequest(http.MethodGet, "/engineer/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: "stale"})
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: "refresh-1"})
	rec := httptest.NewRecorder()

	s := sr.Resolve(rec, req)
	require.NotNil(t, s)
	assert.Equal(t, types.AccountTypeEngineer, s.AccountType)

	cookies := cookiesByName(rec)
	assert.Equal(t, "fresh", cookies[CookieAccessToken].Value)
	assert.Equal(t, "refresh-2", cookies[CookieRefreshToken].Value)
	r.AssertExpectations(t)
}

func TestResolveFallsBackToSignedCookie(t *testing.T) {
	v := &mockValidator{}
	v.On("Validate", "bogus").Return(nil, ErrTokenInvalid)
	sr := newTestResolver(t, v, nil, types.AccountTypeUser)

	signed, err := sr.signer.Sign(&Session{UserID: "u-2", AccountType: types.AccountTypeStore})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: "bogus"})
	req.AddCookie(&http.Cookie{Name: CookieTempAuthUser, Value: signed})

	s := sr.Resolve(httptest.NewRecorder(), req)
	require.NotNil(t, s)
	assert.Equal(t, "u-2", s.UserID)
	assert.Equal(t, types.AccountTypeStore, s.AccountType)
	assert.Equal(t, SourceTempCookie, s.Source)
}

func TestResolveRefreshFailureIsAnonymous(t *testing.T) {
	v := &mockValidator{}
	v.On("Validate", "stale").Return(nil, ErrTokenExpired)
	r := &mockRefresher{}
	r.On("Refresh", mock.Anything, "revoked").Return(nil, errors.New("invalid refresh token"))
	sr := newTestResolver(t, v, r, types.AccountTypeUser)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: "stale"})
	req.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: "revoked"})

	assert.Nil(t, sr.Resolve(httptest.NewRecorder(), req))
}

func TestFromAccessTokenUsesMatchingSignedCookie(t *testing.T) {
	v := &mockValidator{}
	v.On("Validate", "good").Return(&Claims{UserID: "u-1"}, nil)
	sr := NewSessionResolver(v, nil, newTestSigner(t),
		NewAccountTypeResolver(nil, time.Minute), // no sources: a lookup would fail
		NewCookieJar("", false, time.Hour))

	signed, err := sr.signer.Sign(&Session{UserID: "u-1", AccountType: types.AccountTypeAdmin})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieTempAuthUser, Value: signed})

	s, err := sr.FromAccessToken(t.Context(), "good", req)
	require.NoError(t, err)
	assert.Equal(t, types.AccountTypeAdmin, s.AccountType)
}
