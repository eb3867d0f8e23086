package http

import (
	"context"
	"time"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/service"
	"github.com/notsus/site-backend/internal/utils"
	"github.com/notsus/site-backend/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn   func(ctx context.Context, email, password string) (models.User, models.Token, error)
	loginFn      func(ctx context.Context, email, password string) (models.User, models.Token, error)
	getUserFn    func(ctx context.Context, userID int64) (models.User, error)
	parseTokenFn func(ctx context.Context, tokenString string) (*models.Claims, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password string) (models.User, models.Token, error) {
	return m.registerFn(ctx, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, models.Token, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockFeedbackService implements service.FeedbackService.
type mockFeedbackService struct {
	submitFn func(ctx context.Context, input models.FeedbackInput) (int64, error)
}

func (m *mockFeedbackService) Submit(ctx context.Context, input models.FeedbackInput) (int64, error) {
	return m.submitFn(ctx, input)
}

// mockTokenService implements service.TokenService.
type mockTokenService struct {
	issueFn   func(ctx context.Context, email string) (models.ConsumableToken, error)
	redeemFn  func(ctx context.Context, token string) (models.RenewableWindowToken, error)
	resolveFn func(ctx context.Context, token string) (string, error)
}

func (m *mockTokenService) IssueVerificationToken(ctx context.Context, email string) (models.ConsumableToken, error) {
	return m.issueFn(ctx, email)
}

func (m *mockTokenService) RedeemVerificationToken(ctx context.Context, token string) (models.RenewableWindowToken, error) {
	return m.redeemFn(ctx, token)
}

func (m *mockTokenService) ResolveDownloadToken(ctx context.Context, token string) (string, error) {
	return m.resolveFn(ctx, token)
}

// mockDownloadService implements service.DownloadService.
type mockDownloadService struct {
	resolveArtifactFn func(platform string) (string, error)
	redeemFn          func(ctx context.Context, token, platform, userAgent, ip string) (string, error)
}

func (m *mockDownloadService) ResolveArtifact(platform string) (string, error) {
	return m.resolveArtifactFn(platform)
}

func (m *mockDownloadService) RedeemForDownload(ctx context.Context, token, platform, userAgent, ip string) (string, error) {
	return m.redeemFn(ctx, token, platform, userAgent, ip)
}

// mockAnalyticsService implements service.AnalyticsService and records
// every event it receives.
type mockAnalyticsService struct {
	tracked []models.TrackRequest
}

func (m *mockAnalyticsService) TrackEvent(_ context.Context, req models.TrackRequest) {
	m.tracked = append(m.tracked, req)
}

// mockAdminService implements service.AdminService.
type mockAdminService struct {
	feedbackReportFn  func(ctx context.Context, date *string) (models.FeedbackReport, error)
	downloadsReportFn func(ctx context.Context) (models.DownloadsReport, error)
}

func (m *mockAdminService) FeedbackReport(ctx context.Context, date *string) (models.FeedbackReport, error) {
	return m.feedbackReportFn(ctx, date)
}

func (m *mockAdminService) DownloadsReport(ctx context.Context) (models.DownloadsReport, error) {
	return m.downloadsReportFn(ctx)
}

// mockPinger implements Pinger for health endpoint tests.
type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testBaseURL = "https://www.notsus.net"

// contextWithClaims injects authenticated claims the way the auth
// middleware does, letting tests call protected handlers directly.
func contextWithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, utils.ClaimsCtxKey, claims)
}

// newTestHandler builds a Handler wired to the given services. Any nil
// service simply stays nil; tests only exercise the endpoints they mock.
func newTestHandler(services *service.Services) *Handler {
	return &Handler{
		services:       services,
		db:             &mockPinger{},
		baseURL:        testBaseURL,
		requestTimeout: 5 * time.Second,
		logger:         logger.Nop(),
	}
}
