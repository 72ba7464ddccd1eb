package middleware

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/binna/binna-backend/internal/auth"
	"github.com/binna/binna-backend/logger"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// keySource is the part of JWKSCache the validator needs.
type keySource interface {
	GetKey(kid string) (jwk.Key, error)
}

// JWTValidator verifies Supabase access tokens with the project's HS256
// secret, falling back to the JWKS endpoint for asymmetric keys.
type JWTValidator struct {
	jwks         keySource
	staticSecret []byte
	skew         time.Duration
}

var _ auth.TokenValidator = (*JWTValidator)(nil)

// NewJWTValidator creates a validator from the Supabase configuration.
func NewJWTValidator(cfg *config.SupabaseConfig) (*JWTValidator, error) {
	log := logger.GetLogger()
	v := &JWTValidator{skew: 30 * time.Second}

	if cfg.JWTSecret != "" {
		v.staticSecret = []byte(cfg.JWTSecret)
		log.Info("JWT Validator: HS256 validation enabled.")
	} else {
		log.Warn("JWT Validator: SUPABASE_JWT_SECRET not set, HS256 validation disabled.")
	}

	if cfg.URL != "" && cfg.AnonKey != "" {
		jwksURL := auth.JWKSURL(cfg.URL)
		v.jwks = GetJWKSCache(jwksURL, cfg.AnonKey, 15*time.Minute)
		log.Infow("JWT Validator: JWKS validation enabled.", "url", jwksURL)
	} else {
		log.Warn("JWT Validator: SUPABASE_URL or SUPABASE_ANON_KEY not set, JWKS validation disabled.")
	}

	if v.staticSecret == nil && v.jwks == nil {
		return nil, fmt.Errorf("JWT validator configuration error: at least one validation method (HS256 secret or JWKS URL+key) must be configured")
	}
	return v, nil
}

// Validate tries HS256 first, then JWKS when the token names a key id.
// Expiry is reported as auth.ErrTokenExpired whichever method saw it.
func (v *JWTValidator) Validate(tokenString string) (*auth.Claims, error) {
	log := logger.GetLogger()

	var staticErr error
	if len(v.staticSecret) > 0 {
		claims, err := v.parse(tokenString, jwt.WithKey(jwa.HS256, v.staticSecret))
		if err == nil {
			return claims, nil
		}
		staticErr = err
	}

	var jwksErr error
	if v.jwks != nil {
		kid, err := extractKID(tokenString)
		switch {
		case err != nil:
			if staticErr == nil {
				return nil, fmt.Errorf("%w: %w", auth.ErrTokenInvalid, err)
			}
		case kid == "":
			log.Debug("No 'kid' in token header, skipping JWKS validation")
		default:
			claims, err := v.validateJWKS(tokenString, kid)
			if err == nil {
				return claims, nil
			}
			jwksErr = err
		}
	}

	if errors.Is(staticErr, auth.ErrTokenExpired) || errors.Is(jwksErr, auth.ErrTokenExpired) {
		return nil, auth.ErrTokenExpired
	}
	if errors.Is(staticErr, auth.ErrTokenMissingClaim) || errors.Is(jwksErr, auth.ErrTokenMissingClaim) {
		return nil, auth.ErrTokenMissingClaim
	}
	if errors.Is(jwksErr, auth.ErrJWKSKeyNotFound) {
		return nil, jwksErr
	}
	if jwksErr != nil {
		return nil, fmt.Errorf("%w: %w", auth.ErrTokenInvalid, jwksErr)
	}
	if staticErr != nil {
		return nil, fmt.Errorf("%w: %w", auth.ErrTokenInvalid, staticErr)
	}
	return nil, auth.ErrValidationMethodUnavailable
}

func (v *JWTValidator) validateJWKS(tokenString, kid string) (*auth.Claims, error) {
	key, err := v.jwks.GetKey(kid)
	if err != nil {
		if strings.Contains(err.Error(), "not found in JWKS") {
			return nil, fmt.Errorf("%w: %w", auth.ErrJWKSKeyNotFound, err)
		}
		return nil, fmt.Errorf("failed to get key '%s' from jwks cache: %w", kid, err)
	}
	if key == nil {
		return nil, fmt.Errorf("%w: key '%s' is nil", auth.ErrJWKSKeyNotFound, kid)
	}
	return v.parse(tokenString, jwt.WithKey(key.Algorithm(), key))
}

func (v *JWTValidator) parse(tokenString string, key jwt.ParseOption) (*auth.Claims, error) {
	token, err := jwt.Parse([]byte(tokenString), key,
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(v.skew),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return nil, fmt.Errorf("%w: %w", auth.ErrTokenExpired, err)
		}
		return nil, err
	}

	if token.Subject() == "" {
		return nil, auth.ErrTokenMissingClaim
	}
	claims := &auth.Claims{UserID: token.Subject(), ExpiresAt: token.Expiration().Unix()}
	if email, ok := token.PrivateClaims()["email"].(string); ok {
		claims.Email = email
	}
	return claims, nil
}

// extractKID reads the key id from the token header without verifying it.
func extractKID(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid token format, expected 3 parts, got %d", len(parts))
	}
	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("failed to decode token header: %w", err)
	}
	var header struct {
		KID string `json:"kid"`
	}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return "", fmt.Errorf("failed to unmarshal token header JSON: %w", err)
	}
	return header.KID, nil
}
