package http

import (
	"net/http"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/utils"
	"github.com/notsus/site-backend/models"
)

// adminFeedbackResponse is the body of the admin feedback report.
type adminFeedbackResponse struct {
	Success  bool                 `json:"success"`
	Feedback []models.Feedback    `json:"feedback"`
	Stats    models.FeedbackStats `json:"stats"`
}

// adminDownloadsResponse is the body of the admin downloads report.
type adminDownloadsResponse struct {
	Success bool                   `json:"success"`
	Stats   []models.DownloadStat  `json:"stats"`
	Recent  []models.TrackingEvent `json:"recent"`
}

func (h *Handler) adminFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var date *string
	if d := r.URL.Query().Get("date"); d != "" {
		date = &d
	}

	report, err := h.services.AdminService.FeedbackReport(ctx, date)
	if err != nil {
		log.Err(err).Msg("building feedback report failed")
		respondError(w, http.StatusInternalServerError, "Failed to fetch feedback data", "")
		return
	}

	utils.WriteJSON(w, adminFeedbackResponse{
		Success:  true,
		Feedback: report.Feedback,
		Stats:    report.Stats,
	}, http.StatusOK)
}

func (h *Handler) adminDownloads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	report, err := h.services.AdminService.DownloadsReport(ctx)
	if err != nil {
		log.Err(err).Msg("building downloads report failed")
		respondError(w, http.StatusInternalServerError, "Failed to fetch download statistics", "")
		return
	}

	utils.WriteJSON(w, adminDownloadsResponse{
		Success: true,
		Stats:   report.Stats,
		Recent:  report.Recent,
	}, http.StatusOK)
}
