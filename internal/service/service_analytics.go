package service

import (
	"context"

	"github.com/mileusna/useragent"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/store"
	"github.com/notsus/site-backend/models"
)

// unknownValue labels browser/OS fields that could not be derived.
const unknownValue = "Unknown"

// analyticsService is the concrete implementation of AnalyticsService.
// Telemetry is strictly best-effort: every failure is logged and swallowed
// so the user-visible flow is never blocked by a tracking write.
type analyticsService struct {
	downloadRepository store.DownloadRepository
	tokenService       TokenService
	logger             *logger.Logger
}

// NewAnalyticsService constructs an AnalyticsService wired to the download
// repository and the token workflow used to resolve visitor emails.
func NewAnalyticsService(downloadRepository store.DownloadRepository, tokenService TokenService, logger *logger.Logger) AnalyticsService {
	return &analyticsService{
		downloadRepository: downloadRepository,
		tokenService:       tokenService,
		logger:             logger,
	}
}

// TrackEvent appends one telemetry row.
//
// When req carries a download token instead of an email, the email is
// resolved from the token table, but only while the token is still valid;
// a stale token simply yields an anonymous event. Browser and OS metadata
// come from the client-supplied BrowserInfo when present, otherwise from
// server-side user-agent parsing with "Unknown" fallbacks.
func (s *analyticsService) TrackEvent(ctx context.Context, req models.TrackRequest) {
	log := logger.FromContext(ctx)

	email := req.Email
	if email == "" && req.Token != "" {
		resolved, err := s.tokenService.ResolveDownloadToken(ctx, req.Token)
		if err == nil {
			email = resolved
		}
	}

	event := models.TrackingEvent{
		Email:     email,
		Platform:  req.Platform,
		Action:    req.Action,
		UserAgent: req.UserAgent,
	}
	fillBrowserInfo(&event, req.BrowserInfo, req.UserAgent)

	if err := s.downloadRepository.CreateTrackingEvent(ctx, event); err != nil {
		log.Err(err).
			Str("platform", req.Platform).
			Str("action", req.Action).
			Msg("persisting tracking event failed, event dropped")
	}
}

// fillBrowserInfo populates the browser/OS columns of event, preferring the
// client-supplied info and falling back to parsing the user-agent string.
// Fields that remain empty are set to "Unknown".
func fillBrowserInfo(event *models.TrackingEvent, info *models.BrowserInfo, userAgent string) {
	if info != nil {
		event.BrowserName = info.BrowserName
		event.BrowserVersion = info.BrowserVersion
		event.OSName = info.OSName
		event.OSVersion = info.OSVersion
		if info.UserAgent != "" {
			event.UserAgent = info.UserAgent
		}
	}

	if event.BrowserName == "" && userAgent != "" {
		ua := useragent.Parse(userAgent)
		event.BrowserName = ua.Name
		event.BrowserVersion = ua.Version
		event.OSName = ua.OS
		event.OSVersion = ua.OSVersion
	}

	if event.BrowserName == "" {
		event.BrowserName = unknownValue
	}
	if event.BrowserVersion == "" {
		event.BrowserVersion = unknownValue
	}
	if event.OSName == "" {
		event.OSName = unknownValue
	}
	if event.OSVersion == "" {
		event.OSVersion = unknownValue
	}
}
