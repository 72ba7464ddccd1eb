// Package config loads and validates application configuration from the
// environment (optionally seeded from a .env file).
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/binna/binna-backend/logger"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minSecretLength = 32
)

// ServerConfig holds HTTP server and session cookie settings.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	// Empty means X-Forwarded-For is never trusted.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES" yaml:"trusted_proxies"`
	FrontendURL    string   `mapstructure:"FRONTEND_URL" yaml:"frontend_url"`
	CookieDomain   string   `mapstructure:"COOKIE_DOMAIN" yaml:"cookie_domain"`
	SecureCookies  bool     `mapstructure:"SECURE_COOKIES" yaml:"secure_cookies"`
	SessionSecret  string   `mapstructure:"SESSION_SECRET" yaml:"session_secret"`
	// Still accepted when verifying session cookies during a secret rotation.
	PreviousSessionSecret string `mapstructure:"PREVIOUS_SESSION_SECRET" yaml:"previous_session_secret"`
	SessionTTL            string `mapstructure:"SESSION_TTL" yaml:"session_ttl"`
}

// SessionDuration parses SessionTTL, falling back to seven days.
func (s ServerConfig) SessionDuration() time.Duration {
	d, err := time.ParseDuration(s.SessionTTL)
	if err != nil || d <= 0 {
		return 7 * 24 * time.Hour
	}
	return d
}

// DatabaseConfig holds PostgreSQL connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST" yaml:"host"`
	Port         int    `mapstructure:"PORT" yaml:"port"`
	User         string `mapstructure:"USER" yaml:"user"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	Name         string `mapstructure:"NAME" yaml:"name"`
	SSLMode      string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS" yaml:"max_open_conns"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS" yaml:"min_idle_conns"`
	ConnMaxLife  string `mapstructure:"CONN_MAX_LIFE" yaml:"conn_max_life"`
}

// URL returns a postgres:// URL for golang-migrate.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address      string `mapstructure:"ADDRESS" yaml:"address"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	DB           int    `mapstructure:"DB" yaml:"db"`
	UseTLS       bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
	PoolSize     int    `mapstructure:"POOL_SIZE" yaml:"pool_size"`
	MinIdleConns int    `mapstructure:"MIN_IDLE_CONNS" yaml:"min_idle_conns"`
}

// SupabaseConfig holds the Supabase project endpoints and keys.
type SupabaseConfig struct {
	URL        string `mapstructure:"URL" yaml:"url"`
	AnonKey    string `mapstructure:"ANON_KEY" yaml:"anon_key"`
	ServiceKey string `mapstructure:"SERVICE_KEY" yaml:"service_key"`
	// JWTSecret verifies HS256 access tokens; JWKS is used when empty.
	JWTSecret       string `mapstructure:"JWT_SECRET" yaml:"jwt_secret"`
	AccountTypeTTL  int    `mapstructure:"ACCOUNT_TYPE_TTL_SECONDS" yaml:"account_type_ttl_seconds"`
	RequestTimeoutS int    `mapstructure:"REQUEST_TIMEOUT_SECONDS" yaml:"request_timeout_seconds"`
}

// MedusaConfig holds the Medusa admin API settings.
type MedusaConfig struct {
	Enabled         bool   `mapstructure:"ENABLED" yaml:"enabled"`
	URL             string `mapstructure:"URL" yaml:"url"`
	APIKey          string `mapstructure:"API_KEY" yaml:"api_key"`
	TimeoutSeconds  int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS" yaml:"cache_ttl_seconds"`
}

// StorageConfig holds Cloudflare R2 credentials for invoice files.
type StorageConfig struct {
	Enabled        bool   `mapstructure:"ENABLED" yaml:"enabled"`
	R2AccountID    string `mapstructure:"R2_ACCOUNT_ID" yaml:"r2_account_id"`
	R2AccessKeyID  string `mapstructure:"R2_ACCESS_KEY_ID" yaml:"r2_access_key_id"`
	R2SecretKey    string `mapstructure:"R2_SECRET_ACCESS_KEY" yaml:"r2_secret_access_key"`
	R2Bucket       string `mapstructure:"R2_BUCKET" yaml:"r2_bucket"`
	MaxUploadBytes int64  `mapstructure:"MAX_UPLOAD_BYTES" yaml:"max_upload_bytes"`
	PresignMinutes int    `mapstructure:"PRESIGN_MINUTES" yaml:"presign_minutes"`
}

// EmailConfig holds configuration for transactional email.
type EmailConfig struct {
	Enabled      bool   `mapstructure:"ENABLED" yaml:"enabled"`
	FromAddress  string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName     string `mapstructure:"FROM_NAME" yaml:"from_name"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
}

// CommerceConfig holds pricing rules.
type CommerceConfig struct {
	TaxRate           string `mapstructure:"TAX_RATE" yaml:"tax_rate"`
	Currency          string `mapstructure:"CURRENCY" yaml:"currency"`
	LowStockThreshold int    `mapstructure:"LOW_STOCK_THRESHOLD" yaml:"low_stock_threshold"`
}

// Rate parses TaxRate. validateConfig guarantees it parses after LoadConfig.
func (c CommerceConfig) Rate() decimal.Decimal {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return decimal.Zero
	}
	return rate
}

// EventServiceConfig holds configuration for the Redis order event bus.
type EventServiceConfig struct {
	PublishTimeoutSeconds   int `mapstructure:"PUBLISH_TIMEOUT_SECONDS" yaml:"publish_timeout_seconds"`
	SubscribeTimeoutSeconds int `mapstructure:"SUBSCRIBE_TIMEOUT_SECONDS" yaml:"subscribe_timeout_seconds"`
	EventBufferSize         int `mapstructure:"EVENT_BUFFER_SIZE" yaml:"event_buffer_size"`
}

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	// Maximum requests per window for the login endpoints
	AuthRequestsPerMinute int `mapstructure:"AUTH_REQUESTS_PER_MINUTE" yaml:"auth_requests_per_minute"`
	WindowSeconds         int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// WorkerPoolConfig holds configuration for the background job pool.
type WorkerPoolConfig struct {
	MaxWorkers             int `mapstructure:"MAX_WORKERS" yaml:"max_workers"`
	QueueSize              int `mapstructure:"QUEUE_SIZE" yaml:"queue_size"`
	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" yaml:"shutdown_timeout_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server       ServerConfig       `mapstructure:"SERVER" yaml:"server"`
	Database     DatabaseConfig     `mapstructure:"DATABASE" yaml:"database"`
	Redis        RedisConfig        `mapstructure:"REDIS" yaml:"redis"`
	Supabase     SupabaseConfig     `mapstructure:"SUPABASE" yaml:"supabase"`
	Medusa       MedusaConfig       `mapstructure:"MEDUSA" yaml:"medusa"`
	Storage      StorageConfig      `mapstructure:"STORAGE" yaml:"storage"`
	Email        EmailConfig        `mapstructure:"EMAIL" yaml:"email"`
	Commerce     CommerceConfig     `mapstructure:"COMMERCE" yaml:"commerce"`
	EventService EventServiceConfig `mapstructure:"EVENT_SERVICE" yaml:"event_service"`
	RateLimit    RateLimitConfig    `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
	WorkerPool   WorkerPoolConfig   `mapstructure:"WORKER_POOL" yaml:"worker_pool"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds config keys to environment variable names.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{})
	v.SetDefault("SERVER.SECURE_COOKIES", false)
	v.SetDefault("SERVER.SESSION_TTL", "168h")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "binna_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE.MIN_IDLE_CONNS", 2)
	v.SetDefault("DATABASE.CONN_MAX_LIFE", "1h")
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("REDIS.POOL_SIZE", 10)
	v.SetDefault("REDIS.MIN_IDLE_CONNS", 1)
	v.SetDefault("SUPABASE.ACCOUNT_TYPE_TTL_SECONDS", 300)
	v.SetDefault("SUPABASE.REQUEST_TIMEOUT_SECONDS", 10)
	v.SetDefault("MEDUSA.ENABLED", true)
	v.SetDefault("MEDUSA.TIMEOUT_SECONDS", 10)
	v.SetDefault("MEDUSA.CACHE_TTL_SECONDS", 60)
	v.SetDefault("STORAGE.ENABLED", true)
	v.SetDefault("STORAGE.R2_BUCKET", "binna-invoices")
	v.SetDefault("STORAGE.MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("STORAGE.PRESIGN_MINUTES", 5)
	v.SetDefault("EMAIL.ENABLED", true)
	v.SetDefault("EMAIL.FROM_ADDRESS", "orders@binna.sa")
	v.SetDefault("EMAIL.FROM_NAME", "Binna")
	v.SetDefault("COMMERCE.TAX_RATE", "0.15")
	v.SetDefault("COMMERCE.CURRENCY", "SAR")
	v.SetDefault("COMMERCE.LOW_STOCK_THRESHOLD", 5)
	v.SetDefault("EVENT_SERVICE.PUBLISH_TIMEOUT_SECONDS", 5)
	v.SetDefault("EVENT_SERVICE.SUBSCRIBE_TIMEOUT_SECONDS", 10)
	v.SetDefault("EVENT_SERVICE.EVENT_BUFFER_SIZE", 100)
	v.SetDefault("RATE_LIMIT.AUTH_REQUESTS_PER_MINUTE", 10)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("WORKER_POOL.MAX_WORKERS", 4)
	v.SetDefault("WORKER_POOL.QUEUE_SIZE", 256)
	v.SetDefault("WORKER_POOL.SHUTDOWN_TIMEOUT_SECONDS", 30)
}

var envBindings = [][2]string{
	{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
	{"SERVER.PORT", "PORT"},
	{"SERVER.VERSION", "VERSION"},
	{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
	{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
	{"SERVER.FRONTEND_URL", "FRONTEND_URL"},
	{"SERVER.COOKIE_DOMAIN", "COOKIE_DOMAIN"},
	{"SERVER.SECURE_COOKIES", "SECURE_COOKIES"},
	{"SERVER.SESSION_SECRET", "SESSION_SECRET"},
	{"SERVER.PREVIOUS_SESSION_SECRET", "PREVIOUS_SESSION_SECRET"},
	{"SERVER.SESSION_TTL", "SESSION_TTL"},
	{"DATABASE.HOST", "DB_HOST"},
	{"DATABASE.PORT", "DB_PORT"},
	{"DATABASE.USER", "DB_USER"},
	{"DATABASE.PASSWORD", "DB_PASSWORD"},
	{"DATABASE.NAME", "DB_NAME"},
	{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
	{"DATABASE.MAX_OPEN_CONNS", "DB_MAX_OPEN_CONNS"},
	{"DATABASE.MIN_IDLE_CONNS", "DB_MIN_IDLE_CONNS"},
	{"DATABASE.CONN_MAX_LIFE", "DB_CONN_MAX_LIFE"},
	{"REDIS.ADDRESS", "REDIS_ADDRESS"},
	{"REDIS.PASSWORD", "REDIS_PASSWORD"},
	{"REDIS.DB", "REDIS_DB"},
	{"REDIS.USE_TLS", "REDIS_USE_TLS"},
	{"SUPABASE.URL", "SUPABASE_URL"},
	{"SUPABASE.ANON_KEY", "SUPABASE_ANON_KEY"},
	{"SUPABASE.SERVICE_KEY", "SUPABASE_SERVICE_KEY"},
	{"SUPABASE.JWT_SECRET", "SUPABASE_JWT_SECRET"},
	{"SUPABASE.ACCOUNT_TYPE_TTL_SECONDS", "ACCOUNT_TYPE_CACHE_TTL_SECONDS"},
	{"MEDUSA.ENABLED", "MEDUSA_ENABLED"},
	{"MEDUSA.URL", "MEDUSA_BACKEND_URL"},
	{"MEDUSA.API_KEY", "MEDUSA_API_KEY"},
	{"MEDUSA.TIMEOUT_SECONDS", "MEDUSA_TIMEOUT_SECONDS"},
	{"MEDUSA.CACHE_TTL_SECONDS", "MEDUSA_CACHE_TTL_SECONDS"},
	{"STORAGE.ENABLED", "STORAGE_ENABLED"},
	{"STORAGE.R2_ACCOUNT_ID", "R2_ACCOUNT_ID"},
	{"STORAGE.R2_ACCESS_KEY_ID", "R2_ACCESS_KEY_ID"},
	{"STORAGE.R2_SECRET_ACCESS_KEY", "R2_SECRET_ACCESS_KEY"},
	{"STORAGE.R2_BUCKET", "R2_BUCKET"},
	{"EMAIL.ENABLED", "EMAIL_ENABLED"},
	{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
	{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
	{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
	{"COMMERCE.TAX_RATE", "TAX_RATE"},
	{"COMMERCE.CURRENCY", "CURRENCY"},
	{"COMMERCE.LOW_STOCK_THRESHOLD", "LOW_STOCK_THRESHOLD"},
	{"EVENT_SERVICE.PUBLISH_TIMEOUT_SECONDS", "EVENT_SERVICE_PUBLISH_TIMEOUT_SECONDS"},
	{"EVENT_SERVICE.SUBSCRIBE_TIMEOUT_SECONDS", "EVENT_SERVICE_SUBSCRIBE_TIMEOUT_SECONDS"},
	{"EVENT_SERVICE.EVENT_BUFFER_SIZE", "EVENT_SERVICE_EVENT_BUFFER_SIZE"},
	{"RATE_LIMIT.AUTH_REQUESTS_PER_MINUTE", "RATE_LIMIT_AUTH_REQUESTS_PER_MINUTE"},
	{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
	{"WORKER_POOL.MAX_WORKERS", "WORKER_POOL_MAX_WORKERS"},
	{"WORKER_POOL.QUEUE_SIZE", "WORKER_POOL_QUEUE_SIZE"},
	{"WORKER_POOL.SHUTDOWN_TIMEOUT_SECONDS", "WORKER_POOL_SHUTDOWN_TIMEOUT_SECONDS"},
}

// LoadConfig reads .env (if present) and the process environment, applies
// defaults and validates the result.
func LoadConfig() (*Config, error) {
	log := logger.GetLogger()

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg, log); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"db_host", cfg.Database.Host,
		"allowed_origins", cfg.Server.AllowedOrigins,
		"medusa_enabled", cfg.Medusa.Enabled,
		"storage_enabled", cfg.Storage.Enabled,
		"email_enabled", cfg.Email.Enabled,
		"tax_rate", cfg.Commerce.TaxRate,
	)
	return &cfg, nil
}

// validateConfig rejects unusable settings and switches off optional
// integrations whose credentials are missing.
func validateConfig(cfg *Config, log *zap.SugaredLogger) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.Server.Environment != EnvDevelopment && cfg.Server.Environment != EnvProduction {
		return fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}
	if len(cfg.Server.SessionSecret) < minSecretLength {
		return fmt.Errorf("session secret must be at least %d characters long", minSecretLength)
	}
	for _, origin := range cfg.Server.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if _, err := url.ParseRequestURI(origin); err != nil {
			return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
		}
	}
	if cfg.Server.FrontendURL != "" {
		if _, err := url.ParseRequestURI(cfg.Server.FrontendURL); err != nil {
			return fmt.Errorf("invalid frontend URL: %w", err)
		}
	}
	if cfg.IsProduction() && !cfg.Server.SecureCookies {
		log.Warn("Secure cookies are disabled in production; forcing them on")
		cfg.Server.SecureCookies = true
	}

	if cfg.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if cfg.Database.Password == "" {
		log.Warn("Database password is not set. Ensure this is intended (e.g., using trusted auth).")
	}

	if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}

	if cfg.Supabase.URL == "" {
		return fmt.Errorf("supabase URL is required")
	}
	if cfg.Supabase.AnonKey == "" {
		return fmt.Errorf("supabase anon key is required")
	}
	if cfg.Supabase.ServiceKey == "" {
		log.Warn("Supabase service key not set; account type lookups use the anon key and depend on RLS")
	}

	rate, err := decimal.NewFromString(cfg.Commerce.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid tax rate %q: %w", cfg.Commerce.TaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax rate must be in [0, 1), got %s", rate)
	}
	if cfg.Commerce.Currency == "" {
		return fmt.Errorf("currency is required")
	}

	if cfg.Medusa.Enabled && (cfg.Medusa.URL == "" || cfg.Medusa.APIKey == "") {
		log.Warn("Medusa URL or API key not set, auto-disabling admin commerce views")
		cfg.Medusa.Enabled = false
	}
	if cfg.Storage.Enabled && (cfg.Storage.R2AccountID == "" || cfg.Storage.R2AccessKeyID == "" || cfg.Storage.R2SecretKey == "") {
		log.Warn("R2 credentials not set, auto-disabling invoice storage")
		cfg.Storage.Enabled = false
	}
	if cfg.Email.Enabled && cfg.Email.ResendAPIKey == "" {
		log.Warn("Resend API key not set, auto-disabling order emails")
		cfg.Email.Enabled = false
	}

	if cfg.EventService.PublishTimeoutSeconds <= 0 || cfg.EventService.SubscribeTimeoutSeconds <= 0 {
		return fmt.Errorf("event service timeouts must be positive")
	}
	if cfg.EventService.EventBufferSize <= 0 {
		return fmt.Errorf("event service buffer size must be positive")
	}
	if cfg.RateLimit.AuthRequestsPerMinute <= 0 || cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	if cfg.WorkerPool.MaxWorkers <= 0 || cfg.WorkerPool.QueueSize <= 0 || cfg.WorkerPool.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("worker pool settings must be positive")
	}

	return nil
}

// Redacted returns a copy with every credential masked, for display.
func (c Config) Redacted() Config {
	out := c
	out.Server.SessionSecret = logger.MaskSensitiveString(c.Server.SessionSecret, 2, 2)
	out.Server.PreviousSessionSecret = logger.MaskSensitiveString(c.Server.PreviousSessionSecret, 2, 2)
	out.Database.Password = logger.MaskSensitiveString(c.Database.Password, 0, 0)
	out.Redis.Password = logger.MaskSensitiveString(c.Redis.Password, 0, 0)
	out.Supabase.AnonKey = logger.MaskJWT(c.Supabase.AnonKey)
	out.Supabase.ServiceKey = logger.MaskJWT(c.Supabase.ServiceKey)
	out.Supabase.JWTSecret = logger.MaskSensitiveString(c.Supabase.JWTSecret, 2, 2)
	out.Medusa.APIKey = logger.MaskSensitiveString(c.Medusa.APIKey, 3, 2)
	out.Storage.R2SecretKey = logger.MaskSensitiveString(c.Storage.R2SecretKey, 0, 0)
	out.Email.ResendAPIKey = logger.MaskSensitiveString(c.Email.ResendAPIKey, 3, 2)
	return out
}
