package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/models"
)

// feedbackRepository is the PostgreSQL-backed implementation of
// [FeedbackRepository].
type feedbackRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFeedbackRepository constructs a [FeedbackRepository] backed by the
// provided database connection and logger.
func NewFeedbackRepository(db *DB, logger *logger.Logger) FeedbackRepository {
	logger.Debug().Msg("creating feedback repository")
	return &feedbackRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFeedback persists one questionnaire submission and returns the
// server-assigned row id. The INSERT is retried on transient errors; a
// duplicate created by a retried attempt is acceptable append-only noise,
// so no unique constraint guards this table.
func (r *feedbackRepository) CreateFeedback(ctx context.Context, f models.Feedback) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	err := r.db.QueryRowRetry(ctx, createFeedback, []any{
		f.Name,
		f.Email,
		f.ScreenTimeAddiction,
		f.ConsumptiveHabits,
		f.InappropriateContent,
		f.BadInfluences,
		f.Safety,
		f.FalseInformation,
		f.SocialDistortion,
		f.OtherConcern,
		f.OtherDescription,
		f.GainsDescription,
	}, &id)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.CreateFeedback").Msg("error saving feedback")
		return 0, WrapPgError(err)
	}

	if id == 0 {
		return 0, ErrFeedbackNotSaved
	}

	return id, nil
}

// ListFeedback returns submissions newest first, optionally restricted to a
// single calendar date ("YYYY-MM-DD"). The query is built with squirrel so
// the filter can be attached without string surgery.
func (r *feedbackRepository) ListFeedback(ctx context.Context, date *string) ([]models.Feedback, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(
		"id", "name", "email",
		"screen_time_addiction", "consumptive_habits", "inappropriate_content",
		"bad_influences", "safety", "false_information", "social_distortion",
		"other_concern", "other_description", "gains_description", "created_at",
	).
		From("user_feedback").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if date != nil {
		builder = builder.Where(sq.Expr("DATE(created_at) = ?", *date))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.ListFeedback").Msg("error listing feedback")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, WrapPgError(err))
	}
	defer rows.Close()

	var submissions []models.Feedback
	for rows.Next() {
		var f models.Feedback
		err := rows.Scan(
			&f.ID, &f.Name, &f.Email,
			&f.ScreenTimeAddiction, &f.ConsumptiveHabits, &f.InappropriateContent,
			&f.BadInfluences, &f.Safety, &f.FalseInformation, &f.SocialDistortion,
			&f.OtherConcern, &f.OtherDescription, &f.GainsDescription, &f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		submissions = append(submissions, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return submissions, nil
}

// FeedbackStats computes the aggregate block of the admin feedback report:
// total submissions, today's submissions, and the dominant concern.
func (r *feedbackRepository) FeedbackStats(ctx context.Context) (models.FeedbackStats, error) {
	log := logger.FromContext(ctx)

	var stats models.FeedbackStats
	err := r.db.QueryRowContext(ctx, feedbackStats).Scan(&stats.Total, &stats.Today, &stats.TopConcern)
	if err != nil {
		log.Err(err).Str("func", "*feedbackRepository.FeedbackStats").Msg("error computing feedback stats")
		return models.FeedbackStats{}, WrapPgError(err)
	}

	return stats, nil
}
