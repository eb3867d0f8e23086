package http

import (
	"encoding/json"
	"net/http"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/utils"
	"github.com/notsus/site-backend/models"
)

// trackDownload appends one telemetry event. The endpoint always responds
// {success:true}: a malformed body or a failed write is logged server-side
// but never surfaced, so telemetry can never break the page it was called
// from.
func (h *Handler) trackDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("undecodable tracking payload dropped")
		utils.WriteJSON(w, map[string]bool{"success": true}, http.StatusOK)
		return
	}
	req.UserAgent = r.UserAgent()

	h.services.AnalyticsService.TrackEvent(ctx, req)

	utils.WriteJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
