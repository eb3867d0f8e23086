package http

import (
	"net/http"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/utils"
)

// healthResponse is the body of the health endpoint.
type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		utils.WriteJSON(w, healthResponse{Status: "unhealthy", Error: err.Error()}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, healthResponse{Status: "healthy"}, http.StatusOK)
}
