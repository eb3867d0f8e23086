package service

import (
	"context"
	"fmt"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/store"
	"github.com/notsus/site-backend/models"
)

// recentEventsLimit caps the recent-events block of the downloads report.
const recentEventsLimit = 50

// adminService is the concrete implementation of AdminService. All
// operations are read-only aggregate queries.
type adminService struct {
	feedbackRepository store.FeedbackRepository
	downloadRepository store.DownloadRepository
	logger             *logger.Logger
}

// NewAdminService constructs an AdminService over the reporting
// repositories.
func NewAdminService(feedbackRepository store.FeedbackRepository, downloadRepository store.DownloadRepository, logger *logger.Logger) AdminService {
	return &adminService{
		feedbackRepository: feedbackRepository,
		downloadRepository: downloadRepository,
		logger:             logger,
	}
}

// FeedbackReport lists feedback rows (optionally filtered to one calendar
// date, "YYYY-MM-DD") together with the aggregate block.
func (s *adminService) FeedbackReport(ctx context.Context, date *string) (models.FeedbackReport, error) {
	feedback, err := s.feedbackRepository.ListFeedback(ctx, date)
	if err != nil {
		return models.FeedbackReport{}, fmt.Errorf("listing feedback failed: %w", err)
	}

	stats, err := s.feedbackRepository.FeedbackStats(ctx)
	if err != nil {
		return models.FeedbackReport{}, fmt.Errorf("aggregating feedback failed: %w", err)
	}

	return models.FeedbackReport{Feedback: feedback, Stats: stats}, nil
}

// DownloadsReport returns download counts grouped by platform and action
// plus the most recent tracking events.
func (s *adminService) DownloadsReport(ctx context.Context) (models.DownloadsReport, error) {
	stats, err := s.downloadRepository.DownloadStats(ctx)
	if err != nil {
		return models.DownloadsReport{}, fmt.Errorf("aggregating downloads failed: %w", err)
	}

	recent, err := s.downloadRepository.RecentTrackingEvents(ctx, recentEventsLimit)
	if err != nil {
		return models.DownloadsReport{}, fmt.Errorf("listing recent download events failed: %w", err)
	}

	return models.DownloadsReport{Stats: stats, Recent: recent}, nil
}
