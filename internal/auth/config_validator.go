package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/binna/binna-backend/logger"
)

// ConfigValidator checks that the auth settings can actually verify tokens:
// a signing secret is long enough and the Supabase JWKS endpoint answers.
type ConfigValidator struct {
	config *config.Config
	client *http.Client
}

func NewConfigValidator(cfg *config.Config) *ConfigValidator {
	return &ConfigValidator{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// JWKSURL is the Supabase Auth key set endpoint for a project URL.
func JWKSURL(supabaseURL string) string {
	return fmt.Sprintf("%s/auth/v1/.well-known/jwks.json", supabaseURL)
}

// ValidateAuthConfig returns every problem found, or nil.
func (v *ConfigValidator) ValidateAuthConfig(ctx context.Context) []error {
	var errs []error

	if len(v.config.Server.SessionSecret) < 32 {
		errs = append(errs, fmt.Errorf("session secret is too short (should be at least 32 characters)"))
	}
	if p := v.config.Server.PreviousSessionSecret; p != "" && p == v.config.Server.SessionSecret {
		errs = append(errs, fmt.Errorf("previous session secret equals the current one"))
	}

	sb := v.config.Supabase
	if _, err := url.ParseRequestURI(sb.URL); err != nil {
		errs = append(errs, fmt.Errorf("invalid Supabase URL: %w", err))
		return errs
	}
	if sb.AnonKey == "" {
		errs = append(errs, fmt.Errorf("supabase anon key is not configured"))
	}

	// Without an HS256 secret every token goes through JWKS, so it must answer.
	if sb.JWTSecret == "" {
		if err := v.checkEndpointAvailability(ctx, JWKSURL(sb.URL)); err != nil {
			errs = append(errs, fmt.Errorf("JWKS endpoint not accessible: %w", err))
		}
	}
	return errs
}

func (v *ConfigValidator) checkEndpointAvailability(ctx context.Context, endpoint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if v.config.Supabase.AnonKey != "" {
		req.Header.Set("apikey", v.config.Supabase.AnonKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("endpoint returned status code %d", resp.StatusCode)
	}
	return nil
}

// PrintValidationResults logs all validation results.
func (v *ConfigValidator) PrintValidationResults(errs []error) {
	log := logger.GetLogger()

	if len(errs) == 0 {
		log.Info("Auth configuration validation passed successfully")
		return
	}

	log.Errorw("Auth configuration validation failed", "error_count", len(errs))
	for i, err := range errs {
		log.Errorw("Validation error", "index", i+1, "error", err.Error())
	}
}
