package http

import (
	"net/http"

	"github.com/MKhiriev/go-tyre-shop/internal/logger"
	"github.com/MKhiriev/go-tyre-shop/internal/utils"
)

type healthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// healthz reports 200 while the database answers and 503 otherwise.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{Status: "ok", Version: h.services.HealthService.Version()}

	if err := h.services.HealthService.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.healthz").Msg("health check failed")
		status.Status = "unavailable"
		_, _ = utils.WriteJSON(w, status, http.StatusServiceUnavailable)
		return
	}

	_, _ = utils.WriteJSON(w, status, http.StatusOK)
}
