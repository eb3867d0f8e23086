package service

import (
	"context"
	"time"

	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/store"
	"github.com/notsus/site-backend/models"
)

// Platform identifiers recognized by the download endpoints.
const (
	PlatformWindows  = "windows"
	PlatformMac      = "mac"
	PlatformMacIntel = "macIntel"
	PlatformLinux    = "linux"
)

// downloadService is the concrete implementation of DownloadService.
type downloadService struct {
	downloadRepository store.DownloadRepository
	tokenService       TokenService

	// artifacts maps each recognized platform to its static artifact URL.
	// An empty URL means the platform is recognized but not yet published.
	artifacts map[string]string

	now    func() time.Time
	logger *logger.Logger
}

// NewDownloadService constructs a DownloadService serving the artifact URLs
// configured in cfg.
func NewDownloadService(downloadRepository store.DownloadRepository, tokenService TokenService, cfg config.Downloads, logger *logger.Logger) DownloadService {
	return &downloadService{
		downloadRepository: downloadRepository,
		tokenService:       tokenService,
		artifacts: map[string]string{
			PlatformWindows:  cfg.WindowsURL,
			PlatformMac:      cfg.MacURL,
			PlatformMacIntel: cfg.MacIntelURL,
			PlatformLinux:    cfg.LinuxURL,
		},
		now:    time.Now,
		logger: logger,
	}
}

// ResolveArtifact maps a platform identifier to its artifact URL.
//
// Returns ErrPlatformUnknown for an unrecognized platform and
// ErrPlatformUnavailable for a recognized platform whose URL is not yet
// configured.
func (d *downloadService) ResolveArtifact(platform string) (string, error) {
	url, ok := d.artifacts[platform]
	if !ok {
		return "", ErrPlatformUnknown
	}
	if url == "" {
		return "", ErrPlatformUnavailable
	}

	return url, nil
}

// RedeemForDownload authorizes one platform download under a download token.
//
// The platform is checked before the token, so an unknown platform is
// reported even when the token is bad. A valid redemption appends one
// app-download row and one "complete" tracking event; failures of those
// best-effort writes are logged and never block the download.
func (d *downloadService) RedeemForDownload(ctx context.Context, token, platform, userAgent, ip string) (string, error) {
	log := logger.FromContext(ctx)

	url, err := d.ResolveArtifact(platform)
	if err != nil {
		return "", err
	}

	email, err := d.tokenService.ResolveDownloadToken(ctx, token)
	if err != nil {
		return "", err
	}

	download := models.AppDownload{
		Platform:     platform,
		Email:        email,
		DownloadTime: d.now(),
		UserAgent:    userAgent,
		IPAddress:    ip,
	}
	if err := d.downloadRepository.CreateAppDownload(ctx, download); err != nil {
		log.Err(err).Str("platform", platform).Msg("recording app download failed")
	}

	event := models.TrackingEvent{
		Email:     email,
		Platform:  platform,
		Action:    models.ActionComplete,
		UserAgent: userAgent,
	}
	fillBrowserInfo(&event, nil, userAgent)
	if err := d.downloadRepository.CreateTrackingEvent(ctx, event); err != nil {
		log.Err(err).Str("platform", platform).Msg("recording download completion event failed")
	}

	log.Info().Str("platform", platform).Str("email", email).Msg("download authorized")
	return url, nil
}
