// Package middleware provides the HTTP middleware chain: capability
// resolution, W3C-style request logging, Prometheus request metrics, and
// gzip compression.
package middleware
