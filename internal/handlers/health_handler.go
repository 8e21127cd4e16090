package handlers

import (
	"net/http"

	"taskboard/internal/logger"
)

// HealthHandler answers /health. storage is optional: the memory and
// file scopes have no connection to check, so a nil checker reports ok
// unconditionally.
type HealthHandler struct {
	storage StorageChecker
}

func NewHealthHandler(storage StorageChecker) *HealthHandler {
	return &HealthHandler{storage: storage}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.storage != nil {
		if err := h.storage.HealthCheck(r.Context()); err != nil {
			logger.Error("HTTP: storage health check failed", err)
			responseWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	responseWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
