package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the catalog's Prometheus collectors: query and
// cache counters plus the standard process metrics.
func (h *Handlers) MetricsHandler() http.Handler {
	return promhttp.Handler()
}
