package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/binna/binna-backend/config"
	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Message types exchanged on the order stream.
const (
	MessageTypePing      = "ping"
	MessageTypePong      = "pong"
	MessageTypeEvent     = "event"
	MessageTypeConnected = "connected"
	MessageTypeError     = "error"
)

// Handler upgrades store owners to the live order stream.
type Handler struct {
	log            *zap.SugaredLogger
	hub            *Hub
	pingInterval   time.Duration
	writeTimeout   time.Duration
	allowedOrigins []string
	isDevelopment  bool
}

func NewHandler(hub *Hub, serverCfg *config.ServerConfig) *Handler {
	return &Handler{
		log:            logger.GetLogger().Named("websocket_handler"),
		hub:            hub,
		pingInterval:   hub.pingInterval,
		writeTimeout:   hub.writeTimeout,
		allowedOrigins: originPatterns(serverCfg.AllowedOrigins),
		isDevelopment:  serverCfg.Environment == config.EnvDevelopment,
	}
}

// originPatterns strips schemes; nhooyr matches patterns against the host.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		for _, prefix := range []string{"https://", "http://"} {
			if len(o) > len(prefix) && o[:len(prefix)] == prefix {
				o = o[len(prefix):]
				break
			}
		}
		patterns = append(patterns, o)
	}
	return patterns
}

func (h *Handler) acceptOptions() *websocket.AcceptOptions {
	opts := &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionContextTakeover,
	}
	if h.isDevelopment {
		opts.InsecureSkipVerify = true
	} else {
		opts.OriginPatterns = h.allowedOrigins
	}
	return opts
}

// ClientMessage represents a message from the client.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message to the client.
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HandleOrderStream godoc
// @Summary Live order feed for the caller's store
// @Description Upgrades to a websocket that forwards order.created and order.status_changed events.
// @Tags store
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} types.ErrorResponse
// @Failure 403 {object} types.ErrorResponse
// @Router /store/orders/stream [get]
// @Security BearerAuth
func (h *Handler) HandleOrderStream(c *gin.Context) {
	userID := middleware.GetUserID(c)
	storeID := middleware.GetStoreID(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("missing_auth", "Authentication required"))
		return
	}
	if storeID == "" {
		_ = c.Error(apperrors.Forbidden("No store is linked to this account", userID))
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, h.acceptOptions())
	if err != nil {
		h.log.Errorw("Failed to accept websocket connection",
			"userID", userID,
			"error", err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	connection, err := h.hub.Register(ctx, storeID, userID, conn)
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "subscription failed")
		return
	}
	defer h.hub.Unregister(connection, "client disconnected")

	if err := h.send(ctx, conn, ServerMessage{
		Type:    MessageTypeConnected,
		Payload: map[string]string{"store_id": storeID},
	}); err != nil {
		h.log.Errorw("Failed to send connected message",
			"userID", userID,
			"error", err)
		return
	}

	errCh := make(chan error, 3)
	go func() { errCh <- h.readLoop(ctx, conn, userID) }()
	go func() { errCh <- h.writeLoop(ctx, conn, connection) }()
	go func() { errCh <- h.pingLoop(ctx, conn) }()

	err = <-errCh
	if err != nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure && ctx.Err() == nil {
		h.log.Warnw("Order stream connection error",
			"userID", userID,
			"storeID", storeID,
			"error", err)
	}
}

// readLoop answers client pings; anything else is ignored.
func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, userID string) error {
	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}

		switch msg.Type {
		case MessageTypePing:
			if err := h.send(ctx, conn, ServerMessage{Type: MessageTypePong}); err != nil {
				return err
			}
		default:
			h.log.Debugw("Unknown message type from client",
				"userID", userID,
				"type", msg.Type)
		}
	}
}

func (h *Handler) writeLoop(ctx context.Context, conn *websocket.Conn, connection *Connection) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-connection.Events():
			if !ok {
				return nil
			}
			if err := h.send(ctx, conn, ServerMessage{Type: MessageTypeEvent, Payload: event}); err != nil {
				return err
			}
		}
	}
}

func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) error {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, h.writeTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) error {
	writeCtx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()
	return wsjson.Write(writeCtx, conn, msg)
}
