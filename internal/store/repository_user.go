package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and the login-attempt bookkeeping
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new non-admin account and returns the fully
// populated [models.User] with server-assigned fields.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped *DatabaseError.
func (r *userRepository) CreateUser(ctx context.Context, email, passwordHash string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := r.scanUser(r.db.QueryRowContext(ctx, createUser, email, passwordHash, false))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, WrapPgError(err)
	}

	return user, nil
}

// FindUserByEmail retrieves the account with the given email.
// Returns [ErrNoUserWasFound] when no such account exists.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := r.scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error finding user")
		return models.User{}, WrapPgError(err)
	}

	return user, nil
}

// FindUserByID retrieves the account with the given id.
// Returns [ErrNoUserWasFound] when no such account exists.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := r.scanUser(r.db.QueryRowContext(ctx, findUserByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error finding user")
		return models.User{}, WrapPgError(err)
	}

	return user, nil
}

// UpdatePasswordHash persists a freshly computed hash and clears the
// failed-login counters in the same statement.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, email, newHash string) error {
	if _, err := r.db.ExecRetry(ctx, updateUserHash, newHash, email); err != nil {
		return fmt.Errorf("error updating password hash: %w", err)
	}
	return nil
}

// IncrementFailedLogins bumps the consecutive-failure counter and stamps the
// failure time. The statement is idempotent enough for the retry wrapper
// only through its conditional callers; it is deliberately not retried.
func (r *userRepository) IncrementFailedLogins(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, incrementFailedLogins, email); err != nil {
		return WrapPgError(err)
	}
	return nil
}

// ResetFailedLogins clears the counter after a successful login.
func (r *userRepository) ResetFailedLogins(ctx context.Context, email string) error {
	if _, err := r.db.ExecRetry(ctx, resetFailedLogins, email); err != nil {
		return fmt.Errorf("error resetting failed logins: %w", err)
	}
	return nil
}

// UpsertAdmin creates or updates the operator-bootstrapped admin account and
// returns its id. Used only by the create-admin command.
func (r *userRepository) UpsertAdmin(ctx context.Context, email, passwordHash string) (int64, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, upsertAdmin, email, passwordHash).Scan(&id); err != nil {
		return 0, WrapPgError(err)
	}
	return id, nil
}

func (r *userRepository) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var lastFailed sql.NullTime

	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.PasswordUpdatedAt,
		&user.FailedLoginAttempts,
		&lastFailed,
		&user.CreatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if lastFailed.Valid {
		user.LastFailedLogin = &lastFailed.Time
	}

	return user, nil
}
