package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sfc_api_requests_total",
			Help: "Outbound requests to the licences API, by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "sfc_api_request_duration_seconds",
			Help: "Latency of outbound licences API requests.",
			// Long tail buckets: a cold-started backend can take tens of seconds.
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 90},
		},
		[]string{"route", "method"},
	)

	tokenRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sfc_token_refresh_total",
			Help: "Access-token refresh attempts triggered by 401 responses.",
		},
		[]string{"result"},
	)

	cacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sfc_cache_events_total",
			Help: "Cache hits, misses and evictions, by cache backend.",
		},
		[]string{"cache", "event"},
	)
)

// ObserveAPIRequest records one completed outbound request.
func ObserveAPIRequest(route, method string, status int, elapsed time.Duration) {
	apiRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// IncTokenRefresh records one refresh attempt. result is "success" or "failure".
func IncTokenRefresh(result string) {
	tokenRefreshTotal.WithLabelValues(result).Inc()
}

// IncCacheEvent records a cache hit, miss, eviction or sweep removal.
func IncCacheEvent(cache, event string) {
	cacheEventsTotal.WithLabelValues(cache, event).Inc()
}
