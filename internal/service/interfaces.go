package service

import (
	"context"

	"github.com/notsus/site-backend/models"
)

// AuthService owns account registration, credential verification with
// lockout bookkeeping, and the bearer-token lifecycle.
type AuthService interface {
	Register(ctx context.Context, email, password string) (models.User, models.Token, error)
	Login(ctx context.Context, email, password string) (models.User, models.Token, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	ParseToken(ctx context.Context, tokenString string) (*models.Claims, error)
}

// FeedbackService persists questionnaire submissions and triggers the
// verification workflow.
type FeedbackService interface {
	Submit(ctx context.Context, input models.FeedbackInput) (int64, error)
}

// TokenService owns the two-token download workflow: a single-use
// verification token proving mailbox control, exchanged on redemption for a
// multi-use download token.
type TokenService interface {
	IssueVerificationToken(ctx context.Context, email string) (models.ConsumableToken, error)
	RedeemVerificationToken(ctx context.Context, token string) (models.RenewableWindowToken, error)
	ResolveDownloadToken(ctx context.Context, token string) (string, error)
}

// DownloadService maps platforms to artifact URLs and authorizes
// token-gated downloads.
type DownloadService interface {
	ResolveArtifact(platform string) (string, error)
	RedeemForDownload(ctx context.Context, token, platform, userAgent, ip string) (string, error)
}

// AnalyticsService appends best-effort telemetry. It never returns an
// error: persistence failures must not block the user-visible flow.
type AnalyticsService interface {
	TrackEvent(ctx context.Context, req models.TrackRequest)
}

// AdminService serves the read-only reporting queries.
type AdminService interface {
	FeedbackReport(ctx context.Context, date *string) (models.FeedbackReport, error)
	DownloadsReport(ctx context.Context) (models.DownloadsReport, error)
}
