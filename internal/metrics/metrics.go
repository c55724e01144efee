package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Feed metrics
	FeedBuildDuration prometheus.HistogramVec
	FeedItemsReturned prometheus.HistogramVec
	FeedEmptyTotal    prometheus.CounterVec

	// Engagement metrics
	EngagementTogglesTotal prometheus.CounterVec
	NotificationsEmitted   prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Rate limiting metrics
	RateLimitExceededTotal prometheus.CounterVec

	// Error metrics
	ErrorsTotal prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),

			FeedBuildDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "feed_build_duration_seconds",
					Help:    "Time to query and reconcile one feed page",
					Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
				},
				[]string{"stage"},
			),
			FeedItemsReturned: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "feed_items_returned",
					Help:    "Number of items returned per feed fetch",
					Buckets: []float64{0, 1, 5, 10, 15, 20},
				},
				[]string{"feed_type"},
			),
			FeedEmptyTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "feed_empty_total",
					Help: "Feed fetches short-circuited by an empty market selection",
				},
				[]string{"feed_type"},
			),

			EngagementTogglesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "engagement_toggles_total",
					Help: "Like and save toggles by kind and direction",
				},
				[]string{"kind", "direction"},
			),
			NotificationsEmitted: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "notifications_emitted_total",
					Help: "Notifications inserted by type",
				},
				[]string{"type"},
			),

			CacheHitsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_hits_total",
					Help: "Total number of cache hits",
				},
				[]string{"cache_name"},
			),
			CacheMissesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_misses_total",
					Help: "Total number of cache misses",
				},
				[]string{"cache_name"},
			),

			RateLimitExceededTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_exceeded_total",
					Help: "Total number of rate limit violations",
				},
				[]string{"endpoint", "method"},
			),

			ErrorsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "errors_total",
					Help: "Total number of errors by type",
				},
				[]string{"error_type", "endpoint"},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance
func Get() *Metrics {
	if instance == nil {
		return Initialize()
	}
	return instance
}
