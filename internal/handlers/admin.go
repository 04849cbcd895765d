package handlers

import (
	"net/http"

	"github.com/faithfm/faithmedia-v1/internal/logging"
)

// FlushCache drops every cached entry across all categories. Useful after
// editing prefilters or field rules directly in storage.
func (h *Handlers) FlushCache(w http.ResponseWriter, _ *http.Request) {
	h.cache.FlushAll()
	writeJSONStatus(w, "flushed")
}

// GetStats returns catalog summary counts.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.GetStats(r.Context())
	if err != nil {
		logging.Error("stats query failed: %v", err)
		writeJSONError(w, "storage error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, stats)
}
