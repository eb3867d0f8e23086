package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/models"
)

const chromeOnWindowsUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func newTestAnalyticsService(downloads *mockDownloadRepository, tokens *mockTokenService) *analyticsService {
	return &analyticsService{
		downloadRepository: downloads,
		tokenService:       tokens,
		logger:             logger.Nop(),
	}
}

// ─────────────────────────────────────────────
// TrackEvent
// ─────────────────────────────────────────────

func TestAnalyticsService_TrackEvent_ParsesUserAgent(t *testing.T) {
	var event models.TrackingEvent
	downloads := &mockDownloadRepository{
		createTrackingEventFn: func(_ context.Context, ev models.TrackingEvent) error {
			event = ev
			return nil
		},
	}
	svc := newTestAnalyticsService(downloads, &mockTokenService{})

	svc.TrackEvent(context.Background(), models.TrackRequest{
		Email:     "user@example.com",
		Platform:  PlatformWindows,
		Action:    models.ActionClick,
		UserAgent: chromeOnWindowsUA,
	})

	assert.Equal(t, "user@example.com", event.Email)
	assert.Equal(t, models.ActionClick, event.Action)
	assert.Equal(t, "Chrome", event.BrowserName)
	assert.Equal(t, "Windows", event.OSName)
	assert.NotEqual(t, unknownValue, event.BrowserVersion)
}

func TestAnalyticsService_TrackEvent_ClientBrowserInfoWins(t *testing.T) {
	var event models.TrackingEvent
	downloads := &mockDownloadRepository{
		createTrackingEventFn: func(_ context.Context, ev models.TrackingEvent) error {
			event = ev
			return nil
		},
	}
	svc := newTestAnalyticsService(downloads, &mockTokenService{})

	svc.TrackEvent(context.Background(), models.TrackRequest{
		Email:    "user@example.com",
		Platform: PlatformMac,
		Action:   models.ActionClick,
		BrowserInfo: &models.BrowserInfo{
			BrowserName:    "Firefox",
			BrowserVersion: "121.0",
			OSName:         "macOS",
			OSVersion:      "14.2",
		},
		UserAgent: chromeOnWindowsUA,
	})

	assert.Equal(t, "Firefox", event.BrowserName)
	assert.Equal(t, "121.0", event.BrowserVersion)
	assert.Equal(t, "macOS", event.OSName)
	assert.Equal(t, "14.2", event.OSVersion)
}

func TestAnalyticsService_TrackEvent_UnmatchedUADefaultsToUnknown(t *testing.T) {
	var event models.TrackingEvent
	downloads := &mockDownloadRepository{
		createTrackingEventFn: func(_ context.Context, ev models.TrackingEvent) error {
			event = ev
			return nil
		},
	}
	svc := newTestAnalyticsService(downloads, &mockTokenService{})

	svc.TrackEvent(context.Background(), models.TrackRequest{
		Platform: PlatformLinux,
		Action:   models.ActionClick,
	})

	assert.Equal(t, unknownValue, event.BrowserName)
	assert.Equal(t, unknownValue, event.BrowserVersion)
	assert.Equal(t, unknownValue, event.OSName)
	assert.Equal(t, unknownValue, event.OSVersion)
}

func TestAnalyticsService_TrackEvent_ResolvesEmailFromToken(t *testing.T) {
	var event models.TrackingEvent
	downloads := &mockDownloadRepository{
		createTrackingEventFn: func(_ context.Context, ev models.TrackingEvent) error {
			event = ev
			return nil
		},
	}
	tokens := &mockTokenService{
		resolveDownloadTokenFn: func(_ context.Context, token string) (string, error) {
			require.Equal(t, "download-token", token)
			return "resolved@example.com", nil
		},
	}
	svc := newTestAnalyticsService(downloads, tokens)

	svc.TrackEvent(context.Background(), models.TrackRequest{
		Token:    "download-token",
		Platform: PlatformWindows,
		Action:   models.ActionComplete,
	})

	assert.Equal(t, "resolved@example.com", event.Email)
}

func TestAnalyticsService_TrackEvent_StaleTokenYieldsAnonymousEvent(t *testing.T) {
	var event models.TrackingEvent
	downloads := &mockDownloadRepository{
		createTrackingEventFn: func(_ context.Context, ev models.TrackingEvent) error {
			event = ev
			return nil
		},
	}
	tokens := &mockTokenService{
		resolveDownloadTokenFn: func(_ context.Context, _ string) (string, error) {
			return "", ErrTokenIsExpiredOrInvalid
		},
	}
	svc := newTestAnalyticsService(downloads, tokens)

	svc.TrackEvent(context.Background(), models.TrackRequest{
		Token:    "stale-token",
		Platform: PlatformWindows,
		Action:   models.ActionClick,
	})

	assert.Empty(t, event.Email)
	assert.Equal(t, PlatformWindows, event.Platform, "event is still recorded")
}

func TestAnalyticsService_TrackEvent_WriteFailureIsSwallowed(t *testing.T) {
	downloads := &mockDownloadRepository{
		createTrackingEventFn: func(_ context.Context, _ models.TrackingEvent) error {
			return errStorage
		},
	}
	svc := newTestAnalyticsService(downloads, &mockTokenService{})

	// must not panic or surface the failure in any way
	svc.TrackEvent(context.Background(), models.TrackRequest{
		Platform: PlatformWindows,
		Action:   models.ActionClick,
	})
}
