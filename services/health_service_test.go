package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/go-redis/redismock/v9"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func newPingPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestNewHealthService(t *testing.T) {
	pool := newPingPool(t)
	rdb, _ := redismock.NewClientMock()

	service := NewHealthService(pool, rdb, "1.0.0")

	assert.NotNil(t, service)
	assert.Equal(t, "1.0.0", service.version)
	assert.NotNil(t, service.log)
	assert.True(t, time.Since(service.startTime) < time.Second)
}

func TestHealthService_CheckHealth(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(pgxmock.PgxPoolIface, redismock.ClientMock)
		poolStats      PoolStatsFunc
		expectedStatus types.HealthStatus
		expectedComps  map[string]types.HealthStatus
	}{
		{
			name: "All services healthy",
			setupMocks: func(db pgxmock.PgxPoolIface, r redismock.ClientMock) {
				db.ExpectPing()
				r.ExpectPing().SetVal("PONG")
			},
			expectedStatus: types.HealthStatusUp,
			expectedComps: map[string]types.HealthStatus{
				"database": types.HealthStatusUp,
				"redis":    types.HealthStatusUp,
			},
		},
		{
			name: "Database down, Redis up",
			setupMocks: func(db pgxmock.PgxPoolIface, r redismock.ClientMock) {
				db.ExpectPing().WillReturnError(errors.New("connection refused"))
				r.ExpectPing().SetVal("PONG")
			},
			expectedStatus: types.HealthStatusDown,
			expectedComps: map[string]types.HealthStatus{
				"database": types.HealthStatusDown,
				"redis":    types.HealthStatusUp,
			},
		},
		{
			name: "Database up, Redis down",
			setupMocks: func(db pgxmock.PgxPoolIface, r redismock.ClientMock) {
				db.ExpectPing()
				r.ExpectPing().SetErr(errors.New("redis connection failed"))
			},
			expectedStatus: types.HealthStatusDown,
			expectedComps: map[string]types.HealthStatus{
				"database": types.HealthStatusUp,
				"redis":    types.HealthStatusDown,
			},
		},
		{
			name: "Pool near capacity is degraded",
			setupMocks: func(db pgxmock.PgxPoolIface, r redismock.ClientMock) {
				db.ExpectPing()
				r.ExpectPing().SetVal("PONG")
			},
			poolStats:      func() (int32, int32) { return 9, 10 },
			expectedStatus: types.HealthStatusDegraded,
			expectedComps: map[string]types.HealthStatus{
				"database": types.HealthStatusDegraded,
				"redis":    types.HealthStatusUp,
			},
		},
		{
			name: "Degraded pool with Redis down is down",
			setupMocks: func(db pgxmock.PgxPoolIface, r redismock.ClientMock) {
				db.ExpectPing()
				r.ExpectPing().SetErr(errors.New("redis error"))
			},
			poolStats:      func() (int32, int32) { return 10, 10 },
			expectedStatus: types.HealthStatusDown,
			expectedComps: map[string]types.HealthStatus{
				"database": types.HealthStatusDegraded,
				"redis":    types.HealthStatusDown,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newPingPool(t)
			rdb, redisMock := redismock.NewClientMock()
			tt.setupMocks(pool, redisMock)

			service := NewHealthService(pool, rdb, "1.0.0")
			if tt.poolStats != nil {
				service.SetPoolStats(tt.poolStats)
			}

			result := service.CheckHealth(context.Background())

			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, "1.0.0", result.Version)
			assert.NotEmpty(t, result.Timestamp)
			assert.NotEmpty(t, result.Uptime)
			for name, status := range tt.expectedComps {
				assert.Equal(t, status, result.Components[name].Status, name)
			}
			assert.NoError(t, pool.ExpectationsWereMet())
			assert.NoError(t, redisMock.ExpectationsWereMet())
		})
	}
}

func TestHealthService_ActiveConnections(t *testing.T) {
	pool := newPingPool(t)
	rdb, redisMock := redismock.NewClientMock()
	pool.ExpectPing()
	redisMock.ExpectPing().SetVal("PONG")

	service := NewHealthService(pool, rdb, "1.0.0")
	service.SetActiveConnectionsGetter(func() int { return 3 })

	result := service.CheckHealth(context.Background())
	require.Contains(t, result.Components, "order_stream")
	assert.Equal(t, "3 active connections", result.Components["order_stream"].Details)
}

func TestHealthService_Ready(t *testing.T) {
	pool := newPingPool(t)
	rdb, redisMock := redismock.NewClientMock()
	service := NewHealthService(pool, rdb, "1.0.0")

	pool.ExpectPing()
	redisMock.ExpectPing().SetVal("PONG")
	assert.True(t, service.Ready(context.Background()))

	pool.ExpectPing().WillReturnError(errors.New("down"))
	assert.False(t, service.Ready(context.Background()))
}

func TestHealthService_NilDependenciesAreDown(t *testing.T) {
	service := NewHealthService(nil, nil, "1.0.0")
	result := service.CheckHealth(context.Background())
	assert.Equal(t, types.HealthStatusDown, result.Status)
}
