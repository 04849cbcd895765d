package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faithmedia_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "faithmedia_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "faithmedia_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faithmedia_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "faithmedia_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "faithmedia_db_connections_open",
			Help: "Number of open database connections",
		},
	)
)

// Cache metrics
var (
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faithmedia_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"category"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faithmedia_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"category"},
	)

	CacheFlushesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "faithmedia_cache_flushes_total",
			Help: "Total number of administrative cache flushes",
		},
	)
)

// Catalog metrics
var (
	ReadDegradedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faithmedia_catalog_degraded_results_total",
			Help: "Total number of read queries degraded to empty results after a storage fault",
		},
		[]string{"operation"}, // "list_content", "child_folders"
	)

	MetadataUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faithmedia_metadata_updates_total",
			Help: "Total number of metadata update requests by outcome",
		},
		[]string{"outcome"}, // "applied", "partial", "denied", "no_changes", "error"
	)
)
