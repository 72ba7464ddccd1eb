package websocket

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

// ErrHubClosed is returned by Register once Shutdown has started.
var ErrHubClosed = errors.New("websocket hub is shut down")

// OrderSubscriber is the slice of events.RedisPublisher the hub needs.
type OrderSubscriber interface {
	Subscribe(ctx context.Context, storeID, subscriberID string) (<-chan types.OrderEvent, error)
	Unsubscribe(storeID, subscriberID string)
}

// Hub tracks live order-stream connections. Every connection owns exactly
// one subscription to its store's order channel.
type Hub struct {
	log          *zap.SugaredLogger
	subscriber   OrderSubscriber
	connections  map[string]*Connection // connection id -> connection
	mu           sync.RWMutex
	closed       bool
	shutdownOnce sync.Once
	pingInterval time.Duration
	writeTimeout time.Duration
}

// Connection is one websocket subscribed to one store's orders.
type Connection struct {
	ID      string
	StoreID string
	UserID  string
	Conn    *websocket.Conn

	events    <-chan types.OrderEvent
	closeOnce sync.Once
}

// HubConfig contains configuration options for the Hub.
type HubConfig struct {
	PingInterval time.Duration
	WriteTimeout time.Duration
}

func DefaultHubConfig() HubConfig {
	return HubConfig{
		PingInterval: 30 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// NewHub creates a hub fed by subscriber.
func NewHub(subscriber OrderSubscriber, cfg ...HubConfig) *Hub {
	c := DefaultHubConfig()
	if len(cfg) > 0 {
		c = cfg[0]
	}

	return &Hub{
		log:          logger.GetLogger().Named("websocket_hub"),
		subscriber:   subscriber,
		connections:  make(map[string]*Connection),
		pingInterval: c.PingInterval,
		writeTimeout: c.WriteTimeout,
	}
}

// Register subscribes a new connection to the events of storeID.
// A store owner may hold several connections (one per open tab).
func (h *Hub) Register(ctx context.Context, storeID, userID string, conn *websocket.Conn) (*Connection, error) {
	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		return nil, ErrHubClosed
	}

	id := uuid.NewString()
	events, err := h.subscriber.Subscribe(ctx, storeID, id)
	if err != nil {
		h.log.Errorw("Failed to subscribe websocket to store orders",
			"storeID", storeID,
			"userID", userID,
			"error", err)
		return nil, err
	}

	connection := &Connection{
		ID:      id,
		StoreID: storeID,
		UserID:  userID,
		Conn:    conn,
		events:  events,
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		h.subscriber.Unsubscribe(storeID, id)
		return nil, ErrHubClosed
	}
	h.connections[id] = connection
	h.mu.Unlock()

	h.log.Infow("Order stream connection registered",
		"connectionID", id,
		"storeID", storeID,
		"userID", userID)

	return connection, nil
}

// Unregister drops the connection and its subscription. Safe to call twice.
func (h *Hub) Unregister(c *Connection, reason string) {
	h.mu.Lock()
	delete(h.connections, c.ID)
	h.mu.Unlock()

	h.closeConnection(c, websocket.StatusNormalClosure, reason)
}

func (h *Hub) closeConnection(c *Connection, status websocket.StatusCode, reason string) {
	c.closeOnce.Do(func() {
		h.subscriber.Unsubscribe(c.StoreID, c.ID)
		if c.Conn != nil {
			_ = c.Conn.Close(status, reason)
		}
		h.log.Infow("Order stream connection closed",
			"connectionID", c.ID,
			"storeID", c.StoreID,
			"reason", reason)
	})
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// StoreConnectionCount returns the live connections watching storeID.
func (h *Hub) StoreConnectionCount(storeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, c := range h.connections {
		if c.StoreID == storeID {
			n++
		}
	}
	return n
}

// Shutdown closes every connection with StatusGoingAway and refuses new ones.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.shutdownOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		connections := make([]*Connection, 0, len(h.connections))
		for _, c := range h.connections {
			connections = append(connections, c)
		}
		h.connections = make(map[string]*Connection)
		h.mu.Unlock()

		for _, c := range connections {
			if ctx.Err() != nil {
				break
			}
			h.closeConnection(c, websocket.StatusGoingAway, "server shutdown")
		}
	})

	h.log.Info("Websocket hub shutdown complete")
	return ctx.Err()
}

// Events returns the order events for this connection. The channel closes
// when the subscription ends.
func (c *Connection) Events() <-chan types.OrderEvent {
	return c.events
}
