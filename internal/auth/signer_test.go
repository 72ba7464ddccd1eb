package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/binna/binna-backend/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) *SessionSigner {
	t.Helper()
	s, err := NewSessionSigner(testSecret, "", time.Hour)
	require.NoError(t, err)
	return s
}

func TestSessionSignerRoundTrip(t *testing.T) {
	s := newTestSigner(t)

	token, err := s.Sign(&Session{UserID: "u-1", Email: "a@b.sa", AccountType: types.AccountTypeStore})
	require.NoError(t, err)

	got, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "a@b.sa", got.Email)
	assert.Equal(t, types.AccountTypeStore, got.AccountType)
	assert.Equal(t, SourceTempCookie, got.Source)
}

func TestSessionSignerRejects(t *testing.T) {
	s := newTestSigner(t)
	token, err := s.Sign(&Session{UserID: "u-1", AccountType: types.AccountTypeUser})
	require.NoError(t, err)

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
			AccountType: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u-1",
				Issuer:    sessionIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte("another-secret-another-secret-xx"))
		require.NoError(t, err)
		tampered := strings.Split(forged, ".")[1]

		_, err = s.Verify(parts[0] + "." + tampered + "." + parts[2])
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		past := newTestSigner(t)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		old, err := past.Sign(&Session{UserID: "u-1"})
		require.NoError(t, err)

		_, err = s.Verify(old)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1", Issuer: sessionIssuer},
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = s.Verify(none)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestSessionSignerAcceptsPreviousSecret(t *testing.T) {
	oldSecret := "fedcba9876543210fedcba9876543210"
	old, err := NewSessionSigner(oldSecret, "", time.Hour)
	require.NoError(t, err)
	token, err := old.Sign(&Session{UserID: "u-1", AccountType: types.AccountTypeEngineer})
	require.NoError(t, err)

	rotated, err := NewSessionSigner(testSecret, oldSecret, time.Hour)
	require.NoError(t, err)
	got, err := rotated.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, types.AccountTypeEngineer, got.AccountType)

	_, err = newTestSigner(t).Verify(token)
	assert.Error(t, err, "without the previous secret the cookie is rejected")
}

func TestNewSessionSignerShortSecret(t *testing.T) {
	_, err := NewSessionSigner("short", "", time.Hour)
	assert.Error(t, err)
}

func TestSignRequiresUser(t *testing.T) {
	_, err := newTestSigner(t).Sign(&Session{})
	assert.ErrorIs(t, err, ErrTokenMissingClaim)
}
