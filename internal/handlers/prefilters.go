package handlers

import (
	"net/http"

	"github.com/faithfm/faithmedia-v1/internal/catalog"
	"github.com/faithfm/faithmedia-v1/internal/logging"
)

// GetPrefilters returns all saved prefilters, served from the cache.
// Storage trouble degrades to an empty list rather than failing.
func (h *Handlers) GetPrefilters(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if list, ok := h.cache.Prefilters(); ok {
		writeJSON(w, list)
		return
	}

	list, err := h.catalog.Prefilters(r.Context())
	if err != nil {
		logging.Error("prefilter listing failed: %v", err)
		writeJSON(w, []catalog.Prefilter{})
		return
	}

	h.cache.SetPrefilters(list)
	writeJSON(w, list)
}
