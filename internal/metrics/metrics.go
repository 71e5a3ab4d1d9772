// Package metrics exposes Prometheus collectors for the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventmanager_http_requests_total",
		Help: "HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eventmanager_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventmanager_login_attempts_total",
		Help: "Login attempts by outcome (success, not_found, bad_password, error).",
	}, []string{"outcome"})
)

// knownPaths bounds label cardinality: requests for unregistered paths
// would otherwise mint a label series per probe URL.
var knownPaths = map[string]struct{}{
	"/healthz":         {},
	"/readyz":          {},
	"/metrics":         {},
	"/signup":          {},
	"/login":           {},
	"/api/saveEvent":   {},
	"/api/user/events": {},
}

func normalizePath(path string) string {
	if _, ok := knownPaths[path]; ok {
		return path
	}
	return "other"
}

func ObserveRequest(method, path string, status int, duration time.Duration) {
	path = normalizePath(path)
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordLogin(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
