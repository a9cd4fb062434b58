package handler

import (
	"context"
	"log"
	"net/http"
	"time"
)

// HealthHandler reports whether the datastore is reachable
type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := struct {
		Status string `json:"status"`
	}{Status: "ok"}

	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			log.Printf("Health check failed: %v", err)
			status.Status = "unavailable"
			respondJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}

	respondJSON(w, http.StatusOK, status)
}
