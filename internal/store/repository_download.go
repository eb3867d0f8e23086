package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/models"
)

// downloadRepository is the PostgreSQL-backed implementation of
// [DownloadRepository]. Both tables it writes are append-only telemetry.
type downloadRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDownloadRepository constructs a [DownloadRepository] backed by the
// provided database connection and logger.
func NewDownloadRepository(db *DB, logger *logger.Logger) DownloadRepository {
	logger.Debug().Msg("creating download repository")
	return &downloadRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTrackingEvent appends one telemetry row. Email may be empty for
// unverified visitors; it is stored as NULL in that case.
func (r *downloadRepository) CreateTrackingEvent(ctx context.Context, ev models.TrackingEvent) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecRetry(ctx, createTrackingEvent,
		nullIfEmpty(ev.Email),
		ev.Platform,
		ev.Action,
		ev.BrowserName,
		ev.BrowserVersion,
		ev.OSName,
		ev.OSVersion,
		ev.UserAgent,
	)
	if err != nil {
		log.Err(err).Str("func", "*downloadRepository.CreateTrackingEvent").Msg("error saving tracking event")
		return fmt.Errorf("error saving tracking event: %w", err)
	}

	return nil
}

// CreateAppDownload appends one completed-download record.
func (r *downloadRepository) CreateAppDownload(ctx context.Context, d models.AppDownload) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecRetry(ctx, createAppDownload, d.Platform, d.Email, d.UserAgent, d.IPAddress)
	if err != nil {
		log.Err(err).Str("func", "*downloadRepository.CreateAppDownload").Msg("error saving app download")
		return fmt.Errorf("error saving app download: %w", err)
	}

	return nil
}

// DownloadStats returns event counts grouped by platform and action with the
// time of the most recent event per group.
func (r *downloadRepository) DownloadStats(ctx context.Context) ([]models.DownloadStat, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, downloadStats)
	if err != nil {
		log.Err(err).Str("func", "*downloadRepository.DownloadStats").Msg("error querying download stats")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, WrapPgError(err))
	}
	defer rows.Close()

	var stats []models.DownloadStat
	for rows.Next() {
		var s models.DownloadStat
		if err := rows.Scan(&s.Platform, &s.Action, &s.Count, &s.LastAttempt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return stats, nil
}

// RecentTrackingEvents returns the newest tracking rows, newest first.
func (r *downloadRepository) RecentTrackingEvents(ctx context.Context, limit int) ([]models.TrackingEvent, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, recentTrackingEvents, limit)
	if err != nil {
		log.Err(err).Str("func", "*downloadRepository.RecentTrackingEvents").Msg("error querying recent events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, WrapPgError(err))
	}
	defer rows.Close()

	var events []models.TrackingEvent
	for rows.Next() {
		var ev models.TrackingEvent
		var email sql.NullString
		err := rows.Scan(&ev.ID, &email, &ev.Platform, &ev.Action,
			&ev.BrowserName, &ev.BrowserVersion, &ev.OSName, &ev.OSVersion, &ev.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ev.Email = email.String
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}

// nullIfEmpty maps an empty string to SQL NULL.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
