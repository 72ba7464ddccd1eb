package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type httpMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

var (
	httpMetricsInstance *httpMetrics
	httpMetricsOnce     sync.Once
	metricsRegistry     = prometheus.DefaultRegisterer
)

func newHTTPMetrics() *httpMetrics {
	httpMetricsOnce.Do(func() {
		httpMetricsInstance = &httpMetrics{
			requests: promauto.With(metricsRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by route, method and status",
			}, []string{"route", "method", "status"}),
			latency: promauto.With(metricsRegistry).NewHistogramVec(prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by route and method",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			}, []string{"route", "method"}),
			inFlight: promauto.With(metricsRegistry).NewGauge(prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Requests currently being served",
			}),
		}
	})
	return httpMetricsInstance
}

// MetricsMiddleware records request counts and latency. Routes are
// labelled by their pattern so IDs do not explode label cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	m := newHTTPMetrics()
	return func(c *gin.Context) {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
