package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Outbound RAWG API calls, labeled success or failure.
	RawgRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rawg_requests_total",
			Help: "Total number of requests to the RAWG API",
		},
		[]string{"status"},
	)

	// Recommendation lookups answered from cache vs. needing an API fetch.
	RecommendationLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_lookups_total",
			Help: "Recommendation lookups by cache outcome",
		},
		[]string{"source"}, // redis, database, api
	)

	AuthenticationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authentication_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"}, // success or failure
	)
)

// InitMetrics registers the Prometheus metrics.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(RawgRequestsTotal)
	prometheus.MustRegister(RecommendationLookups)
	prometheus.MustRegister(AuthenticationAttempts)
}

// PrometheusMiddleware collects metrics for each request.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// PrometheusHandler returns the Prometheus metrics handler wrapped for gin.
func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
