package auth

import "errors"

var (
	// ErrTokenExpired is returned when a token is well formed but past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers signature, format and algorithm failures.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenMissingClaim is returned if a required claim (like 'sub') is missing.
	ErrTokenMissingClaim = errors.New("token missing required claim")
	// ErrValidationMethodUnavailable is returned if neither HS256 nor JWKS can be attempted.
	ErrValidationMethodUnavailable = errors.New("no validation method available for token")
	// ErrJWKSKeyNotFound is returned if the key named by 'kid' is not in the JWKS.
	ErrJWKSKeyNotFound = errors.New("jwks key not found")
)
