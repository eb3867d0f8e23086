package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/migrations"
)

const (
	// retryAttempts is the total number of times a statement hitting a
	// retryable error is attempted before the error is surfaced.
	retryAttempts = 3

	// retryBackoff is the fixed pause between attempts.
	retryBackoff = time.Second
)

// DB wraps *sql.DB with transient-error retry, error classification, and a
// transaction helper. It is the single gateway every repository goes through.
type DB struct {
	*sql.DB
	errorClassifier ErrorClassifier
	logger          *logger.Logger
}

// NewConnectPostgres opens a Postgres connection through the pgx stdlib
// driver, configures the pool, and verifies connectivity with a ping.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.EffectiveDSN())
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(4)
	conn.SetConnMaxIdleTime(30 * time.Second)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	db := &DB{
		DB:              conn,
		logger:          log,
		errorClassifier: NewPostgresErrorClassifier(),
	}

	return db, nil
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Ping verifies database connectivity. Used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// ExecRetry runs a DML statement, retrying on the transient-error whitelist
// with a fixed backoff. Callers must keep retried statements individually
// idempotent: INSERTs absorbed by unique constraints, or conditional UPDATEs.
//
// Non-retryable errors (and retryable ones after the budget is exhausted) are
// wrapped in a *DatabaseError carrying the code and a human-readable detail.
func (db *DB) ExecRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := db.withRetry(ctx, func() error {
		var execErr error
		res, execErr = db.ExecContext(ctx, query, args...)
		return execErr
	})
	return res, err
}

// QueryRowRetry runs a single-row query with the same retry policy as
// ExecRetry and scans the result into dest. A query matching no rows yields
// sql.ErrNoRows untouched so callers can map it to domain sentinels.
func (db *DB) QueryRowRetry(ctx context.Context, query string, args []any, dest ...any) error {
	return db.withRetry(ctx, func() error {
		return db.QueryRowContext(ctx, query, args...).Scan(dest...)
	})
}

// withRetry runs op up to retryAttempts times, pausing retryBackoff between
// attempts while the classifier reports the error as retryable. Context
// cancellation aborts the pause.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 1; attempt <= retryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil || errors.Is(lastErr, sql.ErrNoRows) {
			return lastErr
		}

		if db.errorClassifier.Classify(lastErr) != Retryable || attempt == retryAttempts {
			break
		}

		db.logger.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Msg("retrying statement after transient database error")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff):
		}
	}

	return WrapPgError(lastErr)
}

// RunTx acquires one connection, wraps fn in BEGIN/COMMIT, and rolls back on
// any failure inside fn. The connection is released on every exit path.
func (db *DB) RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return WrapPgError(err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
