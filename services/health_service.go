package services

import (
	"context"
	"fmt"
	"time"

	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	healthCheckTimeout = 2 * time.Second
	poolDegradedRatio  = 0.8
)

// DBPinger is satisfied by *pgxpool.Pool.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// PoolStatsFunc reports acquired and maximum pool connections.
type PoolStatsFunc func() (acquired, max int32)

type HealthService struct {
	db                DBPinger
	redisClient       RedisPinger
	poolStats         PoolStatsFunc
	activeConnections func() int
	version           string
	startTime         time.Time
	log               *zap.SugaredLogger
}

func NewHealthService(db DBPinger, redisClient RedisPinger, version string) *HealthService {
	return &HealthService{
		db:          db,
		redisClient: redisClient,
		version:     version,
		startTime:   time.Now(),
		log:         logger.Named("health"),
	}
}

// SetPoolStats enables the pool saturation check.
func (h *HealthService) SetPoolStats(fn PoolStatsFunc) {
	h.poolStats = fn
}

// SetActiveConnectionsGetter reports open order-stream sockets in the health body.
func (h *HealthService) SetActiveConnectionsGetter(fn func() int) {
	h.activeConnections = fn
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := map[string]types.HealthComponent{
		"database": h.checkDatabase(ctx),
		"redis":    h.checkRedis(ctx),
	}
	if h.activeConnections != nil {
		components["order_stream"] = types.HealthComponent{
			Status:  types.HealthStatusUp,
			Details: formatConnections(h.activeConnections()),
		}
	}

	return types.HealthCheck{
		Status:     types.OverallStatus(components),
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}
}

// Ready reports whether both backing stores answer.
func (h *HealthService) Ready(ctx context.Context) bool {
	return h.checkDatabase(ctx).Status != types.HealthStatusDown &&
		h.checkRedis(ctx).Status != types.HealthStatusDown
}

func (h *HealthService) checkDatabase(ctx context.Context) types.HealthComponent {
	if h.db == nil {
		return types.HealthComponent{Status: types.HealthStatusDown, Details: "Database not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Errorw("Database health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Database connection failed",
		}
	}

	if h.poolStats != nil {
		acquired, max := h.poolStats()
		if max > 0 && float64(acquired)/float64(max) > poolDegradedRatio {
			return types.HealthComponent{
				Status:  types.HealthStatusDegraded,
				Details: "Connection pool near capacity",
			}
		}
	}

	return types.HealthComponent{Status: types.HealthStatusUp}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if h.redisClient == nil {
		return types.HealthComponent{Status: types.HealthStatusDown, Details: "Redis not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}

	return types.HealthComponent{Status: types.HealthStatusUp}
}

func formatConnections(n int) string {
	if n == 1 {
		return "1 active connection"
	}
	return fmt.Sprintf("%d active connections", n)
}
