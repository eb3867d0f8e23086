package service

import (
	"context"
	"fmt"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/store"
	"github.com/notsus/site-backend/models"
)

// feedbackService is the concrete implementation of FeedbackService.
type feedbackService struct {
	feedbackRepository store.FeedbackRepository
	tokenService       TokenService
	logger             *logger.Logger
}

// NewFeedbackService constructs a FeedbackService wired to the feedback
// repository and the verification-token workflow.
func NewFeedbackService(feedbackRepository store.FeedbackRepository, tokenService TokenService, logger *logger.Logger) FeedbackService {
	return &feedbackService{
		feedbackRepository: feedbackRepository,
		tokenService:       tokenService,
		logger:             logger,
	}
}

// Submit validates and persists one questionnaire submission, then triggers
// verification-token issuance for the submitted email.
//
// The feedback write and the token issuance are deliberately not one
// transaction: once the feedback row is persisted, a failure in token
// issuance or email delivery is logged and swallowed, never rolling back or
// failing the submission.
func (f *feedbackService) Submit(ctx context.Context, input models.FeedbackInput) (int64, error) {
	log := logger.FromContext(ctx)

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return 0, err
	}

	feedback := models.Feedback{
		Name:             input.Name,
		Email:            email,
		OtherDescription: input.OtherDescription,
		GainsDescription: input.GainsDescription,
	}
	feedback.ApplyConcerns(input.Concerns)

	id, err := f.feedbackRepository.CreateFeedback(ctx, feedback)
	if err != nil {
		log.Err(err).Str("email", email).Msg("persisting feedback failed")
		return 0, fmt.Errorf("persisting feedback failed: %w", err)
	}

	if _, err := f.tokenService.IssueVerificationToken(ctx, email); err != nil {
		log.Err(err).Str("email", email).Int64("feedbackID", id).
			Msg("verification issuance after feedback failed, submission kept")
	}

	return id, nil
}
