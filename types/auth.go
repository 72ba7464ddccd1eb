package types

import "strings"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Normalize lower-cases and trims the email before validation.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// SyncLoginRequest hands a client-side Supabase sign-in over to the API.
type SyncLoginRequest struct {
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshRequest may omit the token; the refresh cookie is used instead.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned by every route that establishes a session.
type AuthResponse struct {
	User        AuthUser    `json:"user"`
	AccountType AccountType `json:"account_type"`
	RedirectURL string      `json:"redirect_url"`
	ExpiresIn   int         `json:"expires_in"`
}

type SessionResponse struct {
	UserID      string      `json:"user_id"`
	Email       string      `json:"email,omitempty"`
	AccountType AccountType `json:"account_type"`
	RedirectURL string      `json:"redirect_url"`
}
