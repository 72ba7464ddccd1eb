package config

import (
	"testing"

	"github.com/binna/binna-backend/logger"
	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Environment:    EnvDevelopment,
			Port:           "8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			SessionSecret:  "0123456789abcdef0123456789abcdef",
		},
		Database:     DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "binna"},
		Redis:        RedisConfig{Address: "localhost:6379"},
		Supabase:     SupabaseConfig{URL: "https://proj.supabase.co", AnonKey: "anon", ServiceKey: "service"},
		Medusa:       MedusaConfig{Enabled: true, URL: "http://localhost:9000", APIKey: "sk_test"},
		Storage:      StorageConfig{Enabled: true, R2AccountID: "acc", R2AccessKeyID: "id", R2SecretKey: "secret"},
		Email:        EmailConfig{Enabled: true, ResendAPIKey: "re_123"},
		Commerce:     CommerceConfig{TaxRate: "0.15", Currency: "SAR", LowStockThreshold: 5},
		EventService: EventServiceConfig{PublishTimeoutSeconds: 5, SubscribeTimeoutSeconds: 10, EventBufferSize: 100},
		RateLimit:    RateLimitConfig{AuthRequestsPerMinute: 10, WindowSeconds: 60},
		WorkerPool:   WorkerPoolConfig{MaxWorkers: 2, QueueSize: 10, ShutdownTimeoutSeconds: 5},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "server port"},
		{name: "short session secret", mutate: func(c *Config) { c.Server.SessionSecret = "short" }, wantErr: "session secret"},
		{name: "bad origin", mutate: func(c *Config) { c.Server.AllowedOrigins = []string{"not a url"} }, wantErr: "invalid allowed origin"},
		{name: "missing database host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "database host"},
		{name: "missing redis", mutate: func(c *Config) { c.Redis.Address = "" }, wantErr: "redis address"},
		{name: "missing supabase url", mutate: func(c *Config) { c.Supabase.URL = "" }, wantErr: "supabase URL"},
		{name: "tax rate not a number", mutate: func(c *Config) { c.Commerce.TaxRate = "fifteen" }, wantErr: "invalid tax rate"},
		{name: "tax rate out of range", mutate: func(c *Config) { c.Commerce.TaxRate = "1.5" }, wantErr: "tax rate must be"},
		{name: "unknown environment", mutate: func(c *Config) { c.Server.Environment = "staging" }, wantErr: "unknown environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg, logger.GetLogger())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfigDisablesUnconfiguredIntegrations(t *testing.T) {
	cfg := validConfig()
	cfg.Medusa.APIKey = ""
	cfg.Storage.R2SecretKey = ""
	cfg.Email.ResendAPIKey = ""

	require.NoError(t, validateConfig(cfg, logger.GetLogger()))
	assert.False(t, cfg.Medusa.Enabled)
	assert.False(t, cfg.Storage.Enabled)
	assert.False(t, cfg.Email.Enabled)
}

func TestValidateConfigForcesSecureCookiesInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Environment = EnvProduction

	require.NoError(t, validateConfig(cfg, logger.GetLogger()))
	assert.True(t, cfg.Server.SecureCookies)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("TAX_RATE", "0.15")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "SAR", cfg.Commerce.Currency)
	assert.True(t, cfg.Commerce.Rate().Equal(decimal.RequireFromString("0.15")))
	assert.Equal(t, "postgres://postgres:@localhost:5432/binna_dev?sslmode=disable", cfg.Database.URL())
	assert.False(t, cfg.Medusa.Enabled, "medusa has no credentials in this environment")
}

func TestSessionDurationFallback(t *testing.T) {
	assert.Equal(t, "168h0m0s", ServerConfig{SessionTTL: "bogus"}.SessionDuration().String())
	assert.Equal(t, "1h0m0s", ServerConfig{SessionTTL: "1h"}.SessionDuration().String())
}

func TestRedactedMasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Password = "supersecretpassword"

	red := cfg.Redacted()
	assert.NotEqual(t, cfg.Server.SessionSecret, red.Server.SessionSecret)
	assert.NotContains(t, red.Database.Password, "supersecret")
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.Server.SessionSecret, "original is untouched")
}

func TestPingRedis(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	require.NoError(t, PingRedis(t.Context(), client, 3, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}
