package service

import (
	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/mail"
	"github.com/notsus/site-backend/internal/store"
)

// Services bundles every service the transport layer depends on.
type Services struct {
	AuthService      AuthService
	FeedbackService  FeedbackService
	TokenService     TokenService
	DownloadService  DownloadService
	AnalyticsService AnalyticsService
	AdminService     AdminService
}

// NewServices wires all services to their repositories and collaborators.
func NewServices(storages *store.Storages, sender mail.Sender, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	tokenService := NewTokenService(storages.TokenRepository, sender, cfg.App, logger)

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg.App, logger),
		FeedbackService:  NewFeedbackService(storages.FeedbackRepository, tokenService, logger),
		TokenService:     tokenService,
		DownloadService:  NewDownloadService(storages.DownloadRepository, tokenService, cfg.Downloads, logger),
		AnalyticsService: NewAnalyticsService(storages.DownloadRepository, tokenService, logger),
		AdminService:     NewAdminService(storages.FeedbackRepository, storages.DownloadRepository, logger),
	}
}
