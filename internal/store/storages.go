package store

import (
	"github.com/notsus/site-backend/internal/logger"
)

// Storages bundles every repository the service layer depends on.
type Storages struct {
	UserRepository     UserRepository
	FeedbackRepository FeedbackRepository
	TokenRepository    TokenRepository
	DownloadRepository DownloadRepository
}

// NewStorages wires all repositories to the shared database gateway.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, logger),
		FeedbackRepository: NewFeedbackRepository(db, logger),
		TokenRepository:    NewTokenRepository(db, logger),
		DownloadRepository: NewDownloadRepository(db, logger),
	}
}
