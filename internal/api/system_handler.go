package api

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger reports whether the persistence store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler serves the liveness and build metadata endpoints.
type SystemHandler struct {
	db      Pinger
	version string
	logger  *slog.Logger
}

// NewSystemHandler creates a SystemHandler reporting the given version.
func NewSystemHandler(db Pinger, version string, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{db: db, version: version, logger: logger}
}

// Healthcheck responds 204 when the persistence store answers a ping, and
// 503 otherwise.
func (h *SystemHandler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Warn("healthcheck failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Version responds 200 with the build version.
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	rr := NewRestRequest(w, r, h.logger, nil)
	rr.WithData(VersionResponse{Version: h.version})
	rr.Respond()
}
