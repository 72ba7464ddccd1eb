//go:build integration

package events

import (
	"fmt"
	"testing"
	"time"

	"github.com/binna/binna-backend/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) *redis.Client {
	t.Helper()
	ctx := t.Context()

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	testcontainers.CleanupContainer(t, redisC)

	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)
	host, err := redisC.Host(ctx)
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	rdb := setupRedisContainer(t)
	p := NewRedisPublisher(rdb, DefaultConfig())
	t.Cleanup(func() { _ = p.Shutdown(t.Context()) })

	events, err := p.Subscribe(t.Context(), "s-1", "conn-1")
	require.NoError(t, err)

	_, err = p.Subscribe(t.Context(), "s-1", "conn-1")
	assert.Error(t, err, "duplicate subscriber id")

	other := testEvent()
	other.StoreID = "s-2"
	require.NoError(t, p.Publish(t.Context(), other))
	require.NoError(t, p.Publish(t.Context(), testEvent()))

	select {
	case got := <-events:
		assert.Equal(t, "s-1", got.StoreID)
		assert.Equal(t, types.OrderEventCreated, got.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	p.Unsubscribe("s-1", "conn-1")
	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}
}
