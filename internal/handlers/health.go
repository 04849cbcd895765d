package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/faithfm/faithmedia-v1/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`

	Records    int64 `json:"records,omitempty"`
	Prefilters int64 `json:"prefilters,omitempty"`
}

// HealthCheck reports service health. The catalog being unreachable makes
// the service degraded, not dead: browse requests still answer (empty).
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:       statusHealthy,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	stats, err := h.catalog.GetStats(r.Context())
	if err != nil {
		response.Status = statusDegraded
	} else {
		response.Records = stats.Records
		response.Prefilters = stats.Prefilters
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (200 whenever the server runs)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSONStatus(w, "alive")
}

// ReadinessCheck reports whether the service can answer catalog queries
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := h.catalog.GetStats(r.Context()); err != nil {
		writeJSONError(w, "catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSONStatus(w, "ready")
}
