// Package metrics provides Prometheus instrumentation for the catalog
// service.
//
// All metrics are prefixed with "faithmedia_" to avoid naming collisions.
// Categories:
//
//   - HTTP: request totals, duration, in-flight gauge (recorded by the
//     metrics middleware)
//   - Database: query totals and duration by operation, open connections
//   - Cache: hits and misses per cache category, administrative flushes
//   - Catalog: degraded read results (storage faults converted to empty
//     listings) and metadata update outcomes
//
// InitializeMetrics pre-populates the expected label combinations so every
// series is exported from the first scrape.
package metrics
