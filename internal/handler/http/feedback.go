package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/service"
	"github.com/notsus/site-backend/internal/utils"
	"github.com/notsus/site-backend/models"
)

// feedbackResponse is the success body of the feedback endpoint. The
// message value is a marker the site script switches on to show the
// "check your email" state.
type feedbackResponse struct {
	Success             bool   `json:"success"`
	ID                  int64  `json:"id"`
	RequireVerification bool   `json:"requireVerification"`
	Message             string `json:"message"`
}

func (h *Handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var input models.FeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondError(w, http.StatusBadRequest, "Validation error", "Invalid JSON was passed")
		return
	}

	id, err := h.services.FeedbackService.Submit(ctx, input)
	if err != nil {
		if errors.Is(err, service.ErrValidationEmailRequired) {
			log.Err(err).Msg("feedback rejected by validation")
			respondError(w, http.StatusBadRequest, "Validation error", "Email is required")
			return
		}
		log.Err(err).Msg("persisting feedback failed")
		respondError(w, http.StatusInternalServerError, "Failed to save feedback", "")
		return
	}

	utils.WriteJSON(w, feedbackResponse{
		Success:             true,
		ID:                  id,
		RequireVerification: true,
		Message:             "check_email",
	}, http.StatusOK)
}
