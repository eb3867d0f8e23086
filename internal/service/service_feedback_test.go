package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/models"
)

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func newTestFeedbackService(feedback *mockFeedbackRepository, tokens *mockTokenService) *feedbackService {
	return &feedbackService{
		feedbackRepository: feedback,
		tokenService:       tokens,
		logger:             logger.Nop(),
	}
}

// ─────────────────────────────────────────────
// Submit
// ─────────────────────────────────────────────

func TestFeedbackService_Submit_MapsConcerns(t *testing.T) {
	var persisted models.Feedback
	feedback := &mockFeedbackRepository{
		createFeedbackFn: func(_ context.Context, f models.Feedback) (int64, error) {
			persisted = f
			return 11, nil
		},
	}
	svc := newTestFeedbackService(feedback, &mockTokenService{})

	id, err := svc.Submit(context.Background(), models.FeedbackInput{
		Name:     "Pat",
		Email:    "user@example.com",
		Concerns: []string{models.ConcernScreenTime, models.ConcernOther},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.True(t, persisted.ScreenTimeAddiction)
	assert.True(t, persisted.OtherConcern)
	assert.False(t, persisted.ConsumptiveHabits)
	assert.False(t, persisted.InappropriateContent)
	assert.False(t, persisted.BadInfluences)
	assert.False(t, persisted.Safety)
	assert.False(t, persisted.FalseInformation)
	assert.False(t, persisted.SocialDistortion)
}

func TestFeedbackService_Submit_UnrecognizedConcernsIgnored(t *testing.T) {
	var persisted models.Feedback
	feedback := &mockFeedbackRepository{
		createFeedbackFn: func(_ context.Context, f models.Feedback) (int64, error) {
			persisted = f
			return 1, nil
		},
	}
	svc := newTestFeedbackService(feedback, &mockTokenService{})

	_, err := svc.Submit(context.Background(), models.FeedbackInput{
		Email:    "user@example.com",
		Concerns: []string{"made-up-tag", models.ConcernSafety},
	})

	require.NoError(t, err)
	assert.True(t, persisted.Safety)
	assert.False(t, persisted.ScreenTimeAddiction)
	assert.False(t, persisted.OtherConcern)
}

func TestFeedbackService_Submit_TriggersVerification(t *testing.T) {
	var verifiedEmail string
	tokens := &mockTokenService{
		issueVerificationTokenFn: func(_ context.Context, email string) (models.ConsumableToken, error) {
			verifiedEmail = email
			return models.ConsumableToken{Email: email}, nil
		},
	}
	svc := newTestFeedbackService(&mockFeedbackRepository{}, tokens)

	_, err := svc.Submit(context.Background(), models.FeedbackInput{Email: "User@Example.COM"})

	require.NoError(t, err)
	assert.Equal(t, "user@example.com", verifiedEmail)
}

func TestFeedbackService_Submit_VerificationFailure_KeepsSubmission(t *testing.T) {
	tokens := &mockTokenService{
		issueVerificationTokenFn: func(_ context.Context, _ string) (models.ConsumableToken, error) {
			return models.ConsumableToken{}, errStorage
		},
	}
	svc := newTestFeedbackService(&mockFeedbackRepository{
		createFeedbackFn: func(_ context.Context, _ models.Feedback) (int64, error) {
			return 5, nil
		},
	}, tokens)

	id, err := svc.Submit(context.Background(), models.FeedbackInput{Email: "user@example.com"})

	require.NoError(t, err, "token issuance failure must not fail the submission")
	assert.Equal(t, int64(5), id)
}

func TestFeedbackService_Submit_MissingEmail(t *testing.T) {
	svc := newTestFeedbackService(&mockFeedbackRepository{}, &mockTokenService{})

	_, err := svc.Submit(context.Background(), models.FeedbackInput{Name: "Pat"})

	require.ErrorIs(t, err, ErrValidationEmailRequired)
}

func TestFeedbackService_Submit_PersistError(t *testing.T) {
	issued := false
	tokens := &mockTokenService{
		issueVerificationTokenFn: func(_ context.Context, _ string) (models.ConsumableToken, error) {
			issued = true
			return models.ConsumableToken{}, nil
		},
	}
	svc := newTestFeedbackService(&mockFeedbackRepository{
		createFeedbackFn: func(_ context.Context, _ models.Feedback) (int64, error) {
			return 0, errStorage
		},
	}, tokens)

	_, err := svc.Submit(context.Background(), models.FeedbackInput{Email: "user@example.com"})

	require.ErrorIs(t, err, errStorage)
	assert.False(t, issued, "no verification when the feedback write failed")
}
