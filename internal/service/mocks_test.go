package service

import (
	"context"
	"errors"
	"time"

	"github.com/notsus/site-backend/internal/mail"
	"github.com/notsus/site-backend/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn            func(ctx context.Context, email, passwordHash string) (models.User, error)
	findUserByEmailFn       func(ctx context.Context, email string) (models.User, error)
	findUserByIDFn          func(ctx context.Context, id int64) (models.User, error)
	updatePasswordHashFn    func(ctx context.Context, email, newHash string) error
	incrementFailedLoginsFn func(ctx context.Context, email string) error
	resetFailedLoginsFn     func(ctx context.Context, email string) error
	upsertAdminFn           func(ctx context.Context, email, passwordHash string) (int64, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, email, passwordHash)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findUserByEmailFn != nil {
		return m.findUserByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, id)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, email, newHash string) error {
	if m.updatePasswordHashFn != nil {
		return m.updatePasswordHashFn(ctx, email, newHash)
	}
	return nil
}

func (m *mockUserRepository) IncrementFailedLogins(ctx context.Context, email string) error {
	if m.incrementFailedLoginsFn != nil {
		return m.incrementFailedLoginsFn(ctx, email)
	}
	return nil
}

func (m *mockUserRepository) ResetFailedLogins(ctx context.Context, email string) error {
	if m.resetFailedLoginsFn != nil {
		return m.resetFailedLoginsFn(ctx, email)
	}
	return nil
}

func (m *mockUserRepository) UpsertAdmin(ctx context.Context, email, passwordHash string) (int64, error) {
	if m.upsertAdminFn != nil {
		return m.upsertAdminFn(ctx, email, passwordHash)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.TokenRepository
// ─────────────────────────────────────────────

type mockTokenRepository struct {
	createVerificationTokenFn func(ctx context.Context, email, token string, expiresAt time.Time) (models.ConsumableToken, error)
	redeemVerificationTokenFn func(ctx context.Context, token string) (string, error)
	createDownloadTokenFn     func(ctx context.Context, email, token string, expiresAt time.Time) (models.RenewableWindowToken, error)
	resolveDownloadTokenFn    func(ctx context.Context, token string) (string, error)
}

func (m *mockTokenRepository) CreateVerificationToken(ctx context.Context, email, token string, expiresAt time.Time) (models.ConsumableToken, error) {
	if m.createVerificationTokenFn != nil {
		return m.createVerificationTokenFn(ctx, email, token, expiresAt)
	}
	return models.ConsumableToken{Email: email, Token: token, ExpiresAt: expiresAt}, nil
}

func (m *mockTokenRepository) RedeemVerificationToken(ctx context.Context, token string) (string, error) {
	if m.redeemVerificationTokenFn != nil {
		return m.redeemVerificationTokenFn(ctx, token)
	}
	return "", nil
}

func (m *mockTokenRepository) CreateDownloadToken(ctx context.Context, email, token string, expiresAt time.Time) (models.RenewableWindowToken, error) {
	if m.createDownloadTokenFn != nil {
		return m.createDownloadTokenFn(ctx, email, token, expiresAt)
	}
	return models.RenewableWindowToken{Email: email, Token: token, ExpiresAt: expiresAt}, nil
}

func (m *mockTokenRepository) ResolveDownloadToken(ctx context.Context, token string) (string, error) {
	if m.resolveDownloadTokenFn != nil {
		return m.resolveDownloadTokenFn(ctx, token)
	}
	return "", nil
}

// ─────────────────────────────────────────────
// Mock: store.FeedbackRepository
// ─────────────────────────────────────────────

type mockFeedbackRepository struct {
	createFeedbackFn func(ctx context.Context, f models.Feedback) (int64, error)
	listFeedbackFn   func(ctx context.Context, date *string) ([]models.Feedback, error)
	feedbackStatsFn  func(ctx context.Context) (models.FeedbackStats, error)
}

func (m *mockFeedbackRepository) CreateFeedback(ctx context.Context, f models.Feedback) (int64, error) {
	if m.createFeedbackFn != nil {
		return m.createFeedbackFn(ctx, f)
	}
	return 1, nil
}

func (m *mockFeedbackRepository) ListFeedback(ctx context.Context, date *string) ([]models.Feedback, error) {
	if m.listFeedbackFn != nil {
		return m.listFeedbackFn(ctx, date)
	}
	return nil, nil
}

func (m *mockFeedbackRepository) FeedbackStats(ctx context.Context) (models.FeedbackStats, error) {
	if m.feedbackStatsFn != nil {
		return m.feedbackStatsFn(ctx)
	}
	return models.FeedbackStats{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.DownloadRepository
// ─────────────────────────────────────────────

type mockDownloadRepository struct {
	createTrackingEventFn  func(ctx context.Context, ev models.TrackingEvent) error
	createAppDownloadFn    func(ctx context.Context, d models.AppDownload) error
	downloadStatsFn        func(ctx context.Context) ([]models.DownloadStat, error)
	recentTrackingEventsFn func(ctx context.Context, limit int) ([]models.TrackingEvent, error)
}

func (m *mockDownloadRepository) CreateTrackingEvent(ctx context.Context, ev models.TrackingEvent) error {
	if m.createTrackingEventFn != nil {
		return m.createTrackingEventFn(ctx, ev)
	}
	return nil
}

func (m *mockDownloadRepository) CreateAppDownload(ctx context.Context, d models.AppDownload) error {
	if m.createAppDownloadFn != nil {
		return m.createAppDownloadFn(ctx, d)
	}
	return nil
}

func (m *mockDownloadRepository) DownloadStats(ctx context.Context) ([]models.DownloadStat, error) {
	if m.downloadStatsFn != nil {
		return m.downloadStatsFn(ctx)
	}
	return nil, nil
}

func (m *mockDownloadRepository) RecentTrackingEvents(ctx context.Context, limit int) ([]models.TrackingEvent, error) {
	if m.recentTrackingEventsFn != nil {
		return m.recentTrackingEventsFn(ctx, limit)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.TokenService
// ─────────────────────────────────────────────

type mockTokenService struct {
	issueVerificationTokenFn  func(ctx context.Context, email string) (models.ConsumableToken, error)
	redeemVerificationTokenFn func(ctx context.Context, token string) (models.RenewableWindowToken, error)
	resolveDownloadTokenFn    func(ctx context.Context, token string) (string, error)
}

func (m *mockTokenService) IssueVerificationToken(ctx context.Context, email string) (models.ConsumableToken, error) {
	if m.issueVerificationTokenFn != nil {
		return m.issueVerificationTokenFn(ctx, email)
	}
	return models.ConsumableToken{Email: email}, nil
}

func (m *mockTokenService) RedeemVerificationToken(ctx context.Context, token string) (models.RenewableWindowToken, error) {
	if m.redeemVerificationTokenFn != nil {
		return m.redeemVerificationTokenFn(ctx, token)
	}
	return models.RenewableWindowToken{}, nil
}

func (m *mockTokenService) ResolveDownloadToken(ctx context.Context, token string) (string, error) {
	if m.resolveDownloadTokenFn != nil {
		return m.resolveDownloadTokenFn(ctx, token)
	}
	return "", nil
}

// ─────────────────────────────────────────────
// Mock: mail.Sender
// ─────────────────────────────────────────────

type mockSender struct {
	sendFn func(ctx context.Context, msg mail.Message) error
	sent   []mail.Message
}

func (m *mockSender) Send(ctx context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	if m.sendFn != nil {
		return m.sendFn(ctx, msg)
	}
	return nil
}
