// Package events carries order events between API instances over Redis
// pub/sub. Each store has one channel; the store dashboard stream
// subscribes to it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds configuration for RedisPublisher
type Config struct {
	PublishTimeout   time.Duration
	SubscribeTimeout time.Duration
	EventBufferSize  int
}

// DefaultConfig returns default configuration values
func DefaultConfig() Config {
	return Config{
		PublishTimeout:   5 * time.Second,
		SubscribeTimeout: 10 * time.Second,
		EventBufferSize:  100,
	}
}

// ConfigFrom converts the service configuration, keeping defaults for
// unset values.
func ConfigFrom(cfg config.EventServiceConfig) Config {
	c := DefaultConfig()
	if cfg.PublishTimeoutSeconds > 0 {
		c.PublishTimeout = time.Duration(cfg.PublishTimeoutSeconds) * time.Second
	}
	if cfg.SubscribeTimeoutSeconds > 0 {
		c.SubscribeTimeout = time.Duration(cfg.SubscribeTimeoutSeconds) * time.Second
	}
	if cfg.EventBufferSize > 0 {
		c.EventBufferSize = cfg.EventBufferSize
	}
	return c
}

// StoreChannel is the pub/sub channel of one store's order events.
func StoreChannel(storeID string) string {
	return "orders:store:" + storeID
}

type metrics struct {
	publishLatency    prometheus.Histogram
	errorCount        *prometheus.CounterVec
	eventCount        *prometheus.CounterVec
	activeSubscribers prometheus.Gauge
}

var (
	metricsInstance *metrics
	metricsOnce     sync.Once
	defaultRegistry = prometheus.DefaultRegisterer
)

func newMetrics() *metrics {
	metricsOnce.Do(func() {
		metricsInstance = &metrics{
			publishLatency: promauto.With(defaultRegistry).NewHistogram(prometheus.HistogramOpts{
				Name:    "order_event_publish_duration_seconds",
				Help:    "Time taken to publish order events",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			}),
			errorCount: promauto.With(defaultRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "order_event_errors_total",
				Help: "Order event errors by operation and cause",
			}, []string{"operation", "type"}),
			eventCount: promauto.With(defaultRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "order_events_total",
				Help: "Order events by operation and type",
			}, []string{"operation", "type"}),
			activeSubscribers: promauto.With(defaultRegistry).NewGauge(prometheus.GaugeOpts{
				Name: "order_event_active_subscribers",
				Help: "Current number of order stream subscribers",
			}),
		}
	})
	return metricsInstance
}

// RedisPublisher publishes and fans out order events.
type RedisPublisher struct {
	rdb     redis.UniversalClient
	log     *zap.SugaredLogger
	metrics *metrics
	config  Config
	mu      sync.Mutex
	subs    map[string]*subscription
	wg      sync.WaitGroup
}

type subscription struct {
	pubsub    *redis.PubSub
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (s *subscription) close(log *zap.SugaredLogger) {
	s.closeOnce.Do(func() {
		if err := s.pubsub.Close(); err != nil {
			log.Warnw("Error closing pubsub", "error", err)
		}
	})
}

func NewRedisPublisher(rdb redis.UniversalClient, cfg Config) *RedisPublisher {
	return &RedisPublisher{
		rdb:     rdb,
		log:     logger.Named("events"),
		metrics: newMetrics(),
		config:  cfg,
		subs:    make(map[string]*subscription),
	}
}

// Publish sends event to its store's channel, filling ID and timestamp.
func (p *RedisPublisher) Publish(ctx context.Context, event types.OrderEvent) error {
	start := time.Now()
	defer func() {
		p.metrics.publishLatency.Observe(time.Since(start).Seconds())
	}()

	if err := event.Validate(); err != nil {
		p.metrics.errorCount.WithLabelValues("publish", "validation").Inc()
		return fmt.Errorf("invalid event: %w", err)
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.metrics.errorCount.WithLabelValues("publish", "marshal").Inc()
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.PublishTimeout)
	defer cancel()
	if err := p.rdb.Publish(ctx, StoreChannel(event.StoreID), data).Err(); err != nil {
		p.metrics.errorCount.WithLabelValues("publish", "redis").Inc()
		return fmt.Errorf("redis publish: %w", err)
	}

	p.metrics.eventCount.WithLabelValues("publish", string(event.Type)).Inc()
	return nil
}

// Subscribe streams the events of storeID until Unsubscribe or Shutdown.
// subscriberID must be unique per live subscription.
func (p *RedisPublisher) Subscribe(ctx context.Context, storeID, subscriberID string) (<-chan types.OrderEvent, error) {
	key := storeID + ":" + subscriberID

	p.mu.Lock()
	if _, exists := p.subs[key]; exists {
		p.mu.Unlock()
		p.metrics.errorCount.WithLabelValues("subscribe", "duplicate").Inc()
		return nil, fmt.Errorf("subscription %s already exists", key)
	}
	pubsub := p.rdb.Subscribe(ctx, StoreChannel(storeID))
	subCtx, cancel := context.WithCancel(context.Background())
	sub := &subscription{pubsub: pubsub, cancel: cancel}
	p.subs[key] = sub
	p.mu.Unlock()

	// Wait for the SUBSCRIBE confirmation so no event published after
	// this call returns is missed.
	recvCtx, recvCancel := context.WithTimeout(ctx, p.config.SubscribeTimeout)
	defer recvCancel()
	if _, err := pubsub.Receive(recvCtx); err != nil {
		p.removeSub(key)
		p.metrics.errorCount.WithLabelValues("subscribe", "redis").Inc()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	p.metrics.activeSubscribers.Inc()
	events := make(chan types.OrderEvent, p.config.EventBufferSize)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.metrics.activeSubscribers.Dec()
		defer sub.close(p.log)
		p.forward(subCtx, pubsub.Channel(), events, key)
	}()
	return events, nil
}

// forward decodes messages into events until ctx ends or msgs closes.
// It closes events on return. A slow consumer loses events rather than
// blocking the subscription.
func (p *RedisPublisher) forward(ctx context.Context, msgs <-chan *redis.Message, events chan<- types.OrderEvent, key string) {
	defer close(events)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var event types.OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				p.metrics.errorCount.WithLabelValues("receive", "unmarshal").Inc()
				p.log.Errorw("Failed to unmarshal order event", "error", err, "subscription", key)
				continue
			}
			select {
			case events <- event:
				p.metrics.eventCount.WithLabelValues("receive", string(event.Type)).Inc()
			default:
				p.metrics.errorCount.WithLabelValues("receive", "channel_full").Inc()
				p.log.Warnw("Dropped order event for slow subscriber", "subscription", key, "type", event.Type)
			}
		}
	}
}

// Unsubscribe stops a subscription; its channel is closed shortly after.
func (p *RedisPublisher) Unsubscribe(storeID, subscriberID string) {
	p.removeSub(storeID + ":" + subscriberID)
}

func (p *RedisPublisher) removeSub(key string) {
	p.mu.Lock()
	sub, ok := p.subs[key]
	delete(p.subs, key)
	p.mu.Unlock()
	if !ok {
		return
	}
	sub.cancel()
	sub.close(p.log)
}

// Shutdown cancels every subscription and waits for the forwarders.
func (p *RedisPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	subs := p.subs
	p.subs = make(map[string]*subscription)
	p.mu.Unlock()

	p.log.Infow("Shutting down order event publisher", "subscriptions", len(subs))
	for _, sub := range subs {
		sub.cancel()
		sub.close(p.log)
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
