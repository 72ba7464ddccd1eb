package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/stretchr/testify/assert"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewConfigValidator(t *testing.T) {
	cfg := &config.Config{}
	validator := NewConfigValidator(cfg)

	assert.Equal(t, cfg, validator.config)
	assert.Equal(t, 10*time.Second, validator.client.Timeout)
}

func TestValidateAuthConfig(t *testing.T) {
	jwks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"keys":[]}`))
	}))
	defer jwks.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	tests := []struct {
		name        string
		cfg         config.Config
		wantErrors  int
		errContains string
	}{
		{
			name: "hs256 secret skips jwks probe",
			cfg: config.Config{
				Server:   config.ServerConfig{SessionSecret: testSecret},
				Supabase: config.SupabaseConfig{URL: down.URL, AnonKey: "anon", JWTSecret: "jwt"},
			},
		},
		{
			name: "jwks reachable",
			cfg: config.Config{
				Server:   config.ServerConfig{SessionSecret: testSecret},
				Supabase: config.SupabaseConfig{URL: jwks.URL, AnonKey: "anon"},
			},
		},
		{
			name: "jwks unreachable",
			cfg: config.Config{
				Server:   config.ServerConfig{SessionSecret: testSecret},
				Supabase: config.SupabaseConfig{URL: down.URL, AnonKey: "anon"},
			},
			wantErrors:  1,
			errContains: "status code 503",
		},
		{
			name: "short secret and reused previous secret",
			cfg: config.Config{
				Server:   config.ServerConfig{SessionSecret: "short", PreviousSessionSecret: "short"},
				Supabase: config.SupabaseConfig{URL: jwks.URL, AnonKey: "anon", JWTSecret: "jwt"},
			},
			wantErrors: 2,
		},
		{
			name: "bad supabase url",
			cfg: config.Config{
				Server:   config.ServerConfig{SessionSecret: testSecret},
				Supabase: config.SupabaseConfig{URL: "not a url"},
			},
			wantErrors:  1,
			errContains: "invalid Supabase URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			errs := NewConfigValidator(&cfg).ValidateAuthConfig(t.Context())
			assert.Len(t, errs, tt.wantErrors)
			if tt.errContains != "" && len(errs) > 0 {
				assert.Contains(t, errs[0].Error(), tt.errContains)
			}
		})
	}
}
