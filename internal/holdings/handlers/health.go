package handlers

import (
	"context"
	"net/http"
)

// Pinger reports whether the persistence substrate is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	substrate Pinger
}

func NewHealthHandler(substrate Pinger) *HealthHandler {
	return &HealthHandler{substrate: substrate}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, HealthResponse{Status: "ok"}, http.StatusOK)
}

// Ready handles GET /health/ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.substrate.Ping(r.Context()); err != nil {
		respondJSON(w, HealthResponse{
			Status:   "unhealthy",
			Services: map[string]string{"store": "unhealthy: " + err.Error()},
		}, http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, HealthResponse{
		Status:   "ok",
		Services: map[string]string{"store": "healthy"},
	}, http.StatusOK)
}
