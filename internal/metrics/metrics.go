// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Genre cache metrics
	GenreCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_cache_hits_total",
			Help: "Total genre lookups served from the in-memory cache",
		},
	)

	GenreCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_cache_misses_total",
			Help: "Total genre lookups that required a provider fetch",
		},
	)

	GenreCacheShared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_cache_shared_fetches_total",
			Help: "Total genre lookups that joined an in-flight fetch",
		},
	)

	GenreCacheStaleServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_cache_stale_served_total",
			Help: "Total genre lookups served stale after a fetch failure",
		},
	)

	GenreStoreEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "genre_store_entries",
			Help: "Approximate number of genre entries in the persistent store",
		},
	)

	// Metadata provider metrics
	MetadataFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metadata_fetch_duration_seconds",
			Help:    "Duration of metadata provider lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	MetadataFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_fetch_errors_total",
			Help: "Total metadata provider lookup failures",
		},
		[]string{"provider", "error_type"},
	)

	// Circuit breaker state: 0=closed, 1=half-open, 2=open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_trips_total",
			Help: "Total circuit breaker open transitions",
		},
		[]string{"name"},
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Cooldown metrics
	CooldownRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cooldown_rejections_total",
			Help: "Total requests rejected by the per-user cooldown",
		},
	)
)

// RecordDBQuery observes a database query duration.
func RecordDBQuery(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordDBError increments the database error counter.
func RecordDBError(operation, table string) {
	DBQueryErrors.WithLabelValues(operation, table).Inc()
}

// RecordAPIRequest observes one API request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	APIRequestDuration.WithLabelValues(method, endpoint, code).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
}

// RecordMetadataFetch observes one provider lookup.
func RecordMetadataFetch(provider string, duration time.Duration, err error) {
	MetadataFetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if err != nil {
		MetadataFetchErrors.WithLabelValues(provider, "lookup").Inc()
	}
}
