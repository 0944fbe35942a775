// Package observability exposes Prometheus metrics for the API server.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	FilesCreated  prometheus.Counter
	FilesDeleted  prometheus.Counter
	SavesTotal    *prometheus.CounterVec
	UnloadSaves   prometheus.Counter
	QuotaRejected prometheus.Counter

	// Rate limiting
	RateLimited *prometheus.CounterVec
}

// NewCollector creates a metrics collector with its own registry, so
// tests can create collectors without duplicate-registration panics.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	filesCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_created_total",
			Help:      "Total number of files created",
		},
	)

	filesDeleted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_deleted_total",
			Help:      "Total number of files deleted",
		},
	)

	savesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_saves_total",
			Help:      "Total number of content save operations",
		},
		[]string{"outcome"},
	)

	unloadSaves := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unload_saves_total",
			Help:      "Total number of best-effort unload saves accepted",
		},
	)

	quotaRejected := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_rejections_total",
			Help:      "Total number of file creations rejected by the quota",
		},
	)

	rateLimited := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by rate limiting",
		},
		[]string{"action"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		filesCreated,
		filesDeleted,
		savesTotal,
		unloadSaves,
		quotaRejected,
		rateLimited,
	)

	return &Collector{
		registry:      registry,
		HTTPRequests:  httpRequests,
		HTTPDuration:  httpDuration,
		FilesCreated:  filesCreated,
		FilesDeleted:  filesDeleted,
		SavesTotal:    savesTotal,
		UnloadSaves:   unloadSaves,
		QuotaRejected: quotaRejected,
		RateLimited:   rateLimited,
	}
}

// ObserveRequest records one completed HTTP request
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Registry returns the Prometheus registry for this collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
