package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification is the result type returned by [ErrorClassifier.Classify].
// It indicates whether a failed database operation should be retried or
// abandoned.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations, syntax errors, and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. after a transient connection loss or a deadlock rollback).
	Retryable
)

// ErrorClassifier decides whether a database error is transient.
type ErrorClassifier interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassifier] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver and maps it
// to an [ErrorClassification] value.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassifier]. It attempts to unwrap err as a
// *pgconn.PgError and delegates to [ClassifyPgError]. If err is nil or is not
// a PostgreSQL driver error, [NonRetryable] is returned.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}

	return NonRetryable
}

// ClassifyPgError maps a *pgconn.PgError to an [ErrorClassification] based on
// the PostgreSQL error code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
//
// Retryable codes:
//   - 40001 serialization_failure
//   - 40P01 deadlock_detected
//   - 55P03 lock_not_available
//   - XX000 internal_error
//   - 08006 connection_failure
//
// Any code not listed above is classified as [NonRetryable].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected,  // 40P01
		pgerrcode.LockNotAvailable,  // 55P03
		pgerrcode.InternalError,     // XX000
		pgerrcode.ConnectionFailure: // 08006
		return Retryable
	}

	return NonRetryable
}

// DatabaseError is the wrapper every non-transient (or retry-exhausted)
// driver error is surfaced as. Detail is a best-effort human-readable
// description derived from the PostgreSQL error code.
type DatabaseError struct {
	Code   string
	Detail string
	Err    error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error (%s): %s", e.Code, e.Detail)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// WrapPgError converts a driver-level error into a *DatabaseError with a
// human-readable detail. Nil and non-driver errors pass through unchanged so
// sentinel matching keeps working.
func WrapPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	return &DatabaseError{
		Code:   pgErr.Code,
		Detail: pgErrorDetail(pgErr),
		Err:    err,
	}
}

// pgErrorDetail maps well-known constraint codes to operator-friendly
// messages, falling back to the raw driver detail.
func pgErrorDetail(pgErr *pgconn.PgError) string {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return "Duplicate entry"
	case pgerrcode.ForeignKeyViolation:
		return "Referenced record does not exist"
	case pgerrcode.NotNullViolation:
		return "Required field is missing"
	default:
		if pgErr.Detail != "" {
			return pgErr.Detail
		}
		return "No additional details"
	}
}

// postgresError extracts the PostgreSQL error code from err, or returns the
// empty string when err does not originate from the driver.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
