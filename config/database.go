package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/binna/binna-backend/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ConfigurePostgresPool builds a pgxpool.Config for the Supabase Postgres
// instance. TLS is enabled whenever sslmode asks for it.
func ConfigurePostgresPool(cfg *DatabaseConfig) (*pgxpool.Config, error) {
	log := logger.GetLogger()

	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	log.Infow("Connecting to database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Name,
		"sslmode", cfg.SSLMode,
		"connection_string", logger.MaskConnectionString(connStr))

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.SSLMode == "require" || cfg.SSLMode == "verify-full" {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	connMaxLife, err := time.ParseDuration(cfg.ConnMaxLife)
	if err != nil {
		log.Warnw("Invalid connection max lifetime, using 30m", "value", cfg.ConnMaxLife, "error", err)
		connMaxLife = 30 * time.Minute
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MinIdleConns >= 0 && cfg.MinIdleConns <= cfg.MaxOpenConns {
		poolConfig.MinConns = int32(cfg.MinIdleConns)
	}
	poolConfig.MaxConnLifetime = connMaxLife
	poolConfig.HealthCheckPeriod = 30 * time.Second
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	log.Infow("Configured database connection pool",
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns,
		"max_conn_lifetime", connMaxLife.String())

	return poolConfig, nil
}

// ConfigureRedisOptions maps RedisConfig onto go-redis options.
func ConfigureRedisOptions(cfg *RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:            cfg.Address,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxLifetime: time.Hour,
		MaxRetries:      3,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 2 * time.Second,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	logger.GetLogger().Infow("Configuring Redis connection",
		"address", cfg.Address,
		"db", cfg.DB,
		"pool_size", cfg.PoolSize,
		"use_tls", cfg.UseTLS)

	return opts
}

// PingRedis retries a PING a few times before giving up. Startup calls it so
// a cold Redis does not fail the boot on the first attempt.
func PingRedis(ctx context.Context, client redis.UniversalClient, attempts int, delay time.Duration) error {
	log := logger.GetLogger()
	var err error
	for i := 1; i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			return nil
		}
		log.Warnw("Redis ping failed", "attempt", i, "max_attempts", attempts, "error", err)
		if i < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("failed to ping Redis after %d attempts: %w", attempts, err)
}
