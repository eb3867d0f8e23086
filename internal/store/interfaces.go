package store

import (
	"context"
	"time"

	"github.com/notsus/site-backend/models"
)

// UserRepository persists and mutates account records. Every login attempt
// touches only the user row; no other entity is affected by auth.
type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	UpdatePasswordHash(ctx context.Context, email, newHash string) error
	IncrementFailedLogins(ctx context.Context, email string) error
	ResetFailedLogins(ctx context.Context, email string) error
	UpsertAdmin(ctx context.Context, email, passwordHash string) (int64, error)
}

// FeedbackRepository persists questionnaire submissions and serves the admin
// report queries over them.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, f models.Feedback) (int64, error)
	ListFeedback(ctx context.Context, date *string) ([]models.Feedback, error)
	FeedbackStats(ctx context.Context) (models.FeedbackStats, error)
}

// TokenRepository owns both token tables. The consumable (verification)
// token is redeemable exactly once; the renewable (download) token resolves
// any number of times until expiry.
type TokenRepository interface {
	CreateVerificationToken(ctx context.Context, email, token string, expiresAt time.Time) (models.ConsumableToken, error)
	RedeemVerificationToken(ctx context.Context, token string) (string, error)
	CreateDownloadToken(ctx context.Context, email, token string, expiresAt time.Time) (models.RenewableWindowToken, error)
	ResolveDownloadToken(ctx context.Context, token string) (string, error)
}

// DownloadRepository appends telemetry and download records and serves the
// admin download report.
type DownloadRepository interface {
	CreateTrackingEvent(ctx context.Context, ev models.TrackingEvent) error
	CreateAppDownload(ctx context.Context, d models.AppDownload) error
	DownloadStats(ctx context.Context) ([]models.DownloadStat, error)
	RecentTrackingEvents(ctx context.Context, limit int) ([]models.TrackingEvent, error)
}
