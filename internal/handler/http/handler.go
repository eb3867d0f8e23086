package http

import (
	"context"
	"time"

	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/service"
)

// Pinger is the minimal database surface the health endpoint depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	db       Pinger

	// baseURL is the public site origin that browser-navigated endpoints
	// redirect back to.
	baseURL string

	requestTimeout time.Duration
	allowedOrigins []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, db Pinger, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		db:             db,
		baseURL:        cfg.App.BaseURL,
		requestTimeout: cfg.Server.RequestTimeout,
		allowedOrigins: cfg.Server.AllowedOrigins,
		logger:         logger,
	}
}
