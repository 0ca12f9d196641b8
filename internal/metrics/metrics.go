package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "giphy_explorer",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giphy_explorer",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "giphy_explorer",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	catalogCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giphy_explorer",
			Subsystem: "catalog",
			Name:      "calls_total",
			Help:      "Total number of calls to the GIF catalog.",
		},
		[]string{"operation", "outcome"},
	)

	catalogDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "giphy_explorer",
			Subsystem: "catalog",
			Name:      "call_duration_seconds",
			Help:      "Duration of calls to the GIF catalog.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 11), // 10ms to ~10s
		},
		[]string{"operation"},
	)

	catalogCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "giphy_explorer",
			Subsystem: "catalog",
			Name:      "cache_lookups_total",
			Help:      "Catalog cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		catalogCalls,
		catalogDuration,
		catalogCache,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count, latency and in-flight gauge per route.
// Routes are labelled by their pattern so path parameters do not explode
// the label set.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveCatalogCall records one outbound catalog call.
func ObserveCatalogCall(operation, outcome string, elapsed time.Duration) {
	catalogCalls.WithLabelValues(operation, outcome).Inc()
	catalogDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveCacheLookup records a catalog cache hit, miss or error.
func ObserveCacheLookup(result string) {
	catalogCache.WithLabelValues(result).Inc()
}
