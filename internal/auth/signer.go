package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/binna/binna-backend/types"
	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "binna-api"

type sessionClaims struct {
	Email       string `json:"email,omitempty"`
	AccountType string `json:"account_type"`
	jwt.RegisteredClaims
}

// SessionSigner issues and verifies the temp_auth_user cookie, an HS256 JWT
// keyed by the session secret. A previous secret may be kept to accept
// cookies issued before a rotation.
type SessionSigner struct {
	secret   []byte
	previous []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionSigner(secret, previousSecret string, ttl time.Duration) (*SessionSigner, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters")
	}
	s := &SessionSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
	if previousSecret != "" {
		s.previous = []byte(previousSecret)
	}
	return s, nil
}

// TTL is the lifetime of issued cookies.
func (s *SessionSigner) TTL() time.Duration { return s.ttl }

func (s *SessionSigner) Sign(session *Session) (string, error) {
	if session == nil || session.UserID == "" {
		return "", fmt.Errorf("%w: session has no user", ErrTokenMissingClaim)
	}
	now := s.now()
	claims := sessionClaims{
		Email:       session.Email,
		AccountType: string(session.AccountType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature, issuer and expiry and returns the session the
// cookie carries.
func (s *SessionSigner) Verify(token string) (*Session, error) {
	claims, err := s.parse(token, s.secret)
	if err != nil && s.previous != nil && !errors.Is(err, ErrTokenExpired) {
		claims, err = s.parse(token, s.previous)
	}
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrTokenMissingClaim
	}
	return &Session{
		UserID:      claims.Subject,
		Email:       claims.Email,
		AccountType: types.ParseAccountType(claims.AccountType),
		Source:      SourceTempCookie,
	}, nil
}

func (s *SessionSigner) parse(token string, key []byte) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return claims, nil
}
