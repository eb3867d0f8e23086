package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/models"
)

// tokenRepository is the PostgreSQL-backed implementation of
// [TokenRepository]. It owns both the single-use verification tokens and the
// multi-use download tokens.
type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a [TokenRepository] backed by the provided
// database connection and logger.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// CreateVerificationToken persists a freshly issued single-use token.
// The INSERT is retried on transient errors; the unique constraint on the
// token column absorbs a duplicate from a retried attempt.
func (r *tokenRepository) CreateVerificationToken(ctx context.Context, email, token string, expiresAt time.Time) (models.ConsumableToken, error) {
	log := logger.FromContext(ctx)

	ct := models.ConsumableToken{
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	err := r.db.QueryRowRetry(ctx, createVerificationToken, []any{email, token, expiresAt}, &ct.ID, &ct.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.CreateVerificationToken").Msg("error saving verification token")
		return models.ConsumableToken{}, WrapPgError(err)
	}

	return ct, nil
}

// RedeemVerificationToken performs the one-shot redemption as a single
// conditional UPDATE and returns the owning email. Two concurrent
// redemptions of the same token are serialized by the row lock: exactly one
// observes used_at IS NULL and wins; the loser, like expired and unknown
// tokens, gets [ErrTokenNotFound] with no hint of the cause.
//
// The statement is safe to retry: once used_at is set, re-execution matches
// no rows.
func (r *tokenRepository) RedeemVerificationToken(ctx context.Context, token string) (string, error) {
	log := logger.FromContext(ctx)

	var email string
	err := r.db.QueryRowRetry(ctx, redeemVerificationToken, []any{token}, &email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		log.Err(err).Str("func", "*tokenRepository.RedeemVerificationToken").Msg("error redeeming verification token")
		return "", WrapPgError(err)
	}

	return email, nil
}

// CreateDownloadToken persists a freshly issued multi-use token.
func (r *tokenRepository) CreateDownloadToken(ctx context.Context, email, token string, expiresAt time.Time) (models.RenewableWindowToken, error) {
	log := logger.FromContext(ctx)

	dt := models.RenewableWindowToken{
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	err := r.db.QueryRowRetry(ctx, createDownloadToken, []any{email, token, expiresAt}, &dt.ID, &dt.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*tokenRepository.CreateDownloadToken").Msg("error saving download token")
		return models.RenewableWindowToken{}, WrapPgError(err)
	}

	return dt, nil
}

// ResolveDownloadToken returns the email owning a still-valid download
// token. The token alone resolves the identity; callers never supply the
// email. Expired and unknown tokens both yield [ErrTokenNotFound].
func (r *tokenRepository) ResolveDownloadToken(ctx context.Context, token string) (string, error) {
	log := logger.FromContext(ctx)

	var email string
	err := r.db.QueryRowRetry(ctx, resolveDownloadToken, []any{token}, &email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		log.Err(err).Str("func", "*tokenRepository.ResolveDownloadToken").Msg("error resolving download token")
		return "", WrapPgError(err)
	}

	return email, nil
}
