// internal/api/metrics.go
package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	lookupFound    = "found"
	lookupNotFound = "not_found"
	lookupError    = "error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swarm_logs_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swarm_logs_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, including the full log stream",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "swarm_logs_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	serviceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swarm_logs_service_lookups_total",
			Help: "Service lookups against the Docker engine by result",
		},
		[]string{"result"},
	)

	logBytesStreamed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "swarm_logs_streamed_bytes_total",
			Help: "Log bytes written to clients",
		},
	)
)

// MetricsMiddleware records request counts, latency and in-flight requests.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		// Unmatched paths share one label so scanners cannot blow up cardinality.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
