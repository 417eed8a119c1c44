package handler

import (
	"net/http"
)

// ReadinessChecker reports whether a dependency can serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	dataset ReadinessChecker
	nats    ReadinessChecker
}

// NewHealthHandler creates a new health handler. natsChecker may be nil when
// snapshot publishing is disabled.
func NewHealthHandler(datasetChecker, natsChecker ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		dataset: datasetChecker,
		nats:    natsChecker,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.dataset == nil || !h.dataset.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "dataset not loaded",
		})
		return
	}

	if h.nats != nil && !h.nats.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "NATS not connected",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
