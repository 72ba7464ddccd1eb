// Package supabase wraps supabase-go for the handful of Auth and PostgREST
// calls the API makes.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	supa "github.com/supabase-community/supabase-go"
)

// ErrInvalidCredentials is returned when Supabase rejects a password sign-in.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Session is the token pair Supabase Auth hands out, plus the user it belongs to.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	ExpiresAt    int64
	UserID       string
	Email        string
}

// AuthUser is the subset of the Supabase Auth user the API reads.
type AuthUser struct {
	ID    string
	Email string
}

// Gateway is the Supabase surface used by the auth layer.
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*AuthUser, error)
	Logout(ctx context.Context, accessToken string) error
	LookupAccountType(ctx context.Context, userID string) (types.AccountType, error)
}

// Client talks to Supabase with two clients: the anon client for Auth calls
// made on behalf of a user, and the service-role client for PostgREST reads
// that must bypass row level security.
type Client struct {
	anon    *supa.Client
	service *supa.Client
	timeout time.Duration
}

var _ Gateway = (*Client)(nil)

func NewClient(cfg *config.SupabaseConfig) (*Client, error) {
	log := logger.GetLogger()

	timeout := time.Duration(cfg.RequestTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	anon, err := supa.NewClient(cfg.URL, cfg.AnonKey, &supa.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase anon client: %w", err)
	}
	anon.Auth = anon.Auth.WithClient(http.Client{Timeout: timeout})

	c := &Client{anon: anon, timeout: timeout}

	if cfg.ServiceKey != "" {
		service, err := supa.NewClient(cfg.URL, cfg.ServiceKey, &supa.ClientOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create supabase service client: %w", err)
		}
		c.service = service
	} else {
		log.Warn("SUPABASE_SERVICE_ROLE_KEY not set, account type lookups go through the anon key")
	}

	log.Infow("Supabase client initialized", "url", cfg.URL, "service_role", c.service != nil)
	return c, nil
}

// call runs a blocking supabase-go call and gives up when ctx ends first.
// supabase-go has no context support; the HTTP client timeout bounds the
// abandoned goroutine.
func call[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return call(ctx, c.timeout, func() (*Session, error) {
		tok, err := c.anon.Auth.SignInWithEmailPassword(email, password)
		if err != nil {
			logger.GetLogger().Debugw("Supabase sign-in rejected", "email", logger.MaskEmail(email), "error", err)
			return nil, ErrInvalidCredentials
		}
		return &Session{
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
			ExpiresIn:    tok.ExpiresIn,
			ExpiresAt:    tok.ExpiresAt,
			UserID:       tok.User.ID.String(),
			Email:        tok.User.Email,
		}, nil
	})
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	return call(ctx, c.timeout, func() (*Session, error) {
		tok, err := c.anon.Auth.RefreshToken(refreshToken)
		if err != nil {
			return nil, fmt.Errorf("refresh token rejected: %w", err)
		}
		return &Session{
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
			ExpiresIn:    tok.ExpiresIn,
			ExpiresAt:    tok.ExpiresAt,
			UserID:       tok.User.ID.String(),
			Email:        tok.User.Email,
		}, nil
	})
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	return call(ctx, c.timeout, func() (*AuthUser, error) {
		resp, err := c.anon.Auth.WithToken(accessToken).GetUser()
		if err != nil {
			return nil, fmt.Errorf("failed to load supabase user: %w", err)
		}
		return &AuthUser{ID: resp.ID.String(), Email: resp.Email}, nil
	})
}

func (c *Client) Logout(ctx context.Context, accessToken string) error {
	_, err := call(ctx, c.timeout, func() (struct{}, error) {
		return struct{}{}, c.anon.Auth.WithToken(accessToken).Logout()
	})
	return err
}

type accountTypeRow struct {
	AccountType string `json:"account_type"`
}

// LookupAccountType reads users.account_type for one user. Unknown values
// normalise to the default account type.
func (c *Client) LookupAccountType(ctx context.Context, userID string) (types.AccountType, error) {
	client := c.service
	if client == nil {
		client = c.anon
	}

	return call(ctx, c.timeout, func() (types.AccountType, error) {
		var row accountTypeRow
		_, err := client.From("users").
			Select("account_type", "", false).
			Eq("id", userID).
			Single().
			ExecuteTo(&row)
		if err != nil {
			return "", fmt.Errorf("account type lookup for %s: %w", userID, err)
		}
		return types.ParseAccountType(row.AccountType), nil
	})
}
