package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/store"
	"github.com/notsus/site-backend/internal/utils"
	"github.com/notsus/site-backend/models"
)

// Lockout policy: after maxFailedLogins consecutive failures, further
// attempts within lockoutWindow of the last failure are rejected without
// the password being compared.
const (
	maxFailedLogins = 5
	lockoutWindow   = 15 * time.Minute
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification with lockout
// bookkeeping, opportunistic hash upgrades, and the JWT token lifecycle,
// using a UserRepository for persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the cost factor for newly computed password hashes.
	bcryptCost int

	// now is the clock source, replaceable in tests.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     cfg.BcryptCost,
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates a new user account and issues its first bearer token.
//
// The email must be well-formed and not yet registered; the password must
// satisfy the policy enforced by ValidatePassword. The stored email is
// lowercased and trimmed.
//
// Returns the persisted user and a signed token, or:
//   - ErrValidationEmailRequired / ErrValidationPasswordWeak on bad input.
//   - ErrEmailAlreadyRegistered if the email is taken.
func (a *authService) Register(ctx context.Context, email, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return models.User{}, models.Token{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return models.User{}, models.Token{}, err
	}

	hash, err := HashPassword(password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("hashing password failed")
		return models.User{}, models.Token{}, fmt.Errorf("hashing password failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, email, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, models.Token{}, ErrEmailAlreadyRegistered
		}
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, models.Token{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	token, err := a.createToken(user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// Login authenticates an existing user and issues a bearer token.
//
// Unknown email and wrong password are rejected identically with
// ErrInvalidCredentials so the response never reveals which was wrong.
// Every failure increments the account's failed-attempt counter; once the
// counter reaches maxFailedLogins, attempts within lockoutWindow of the
// last failure return a *LockoutError without the password being compared.
// A successful login resets the counter and, when the stored hash is below
// the configured cost or older than the rehash age, transparently persists
// an upgraded hash.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	now := a.now()
	if remaining, locked := a.lockoutRemaining(user, now); locked {
		log.Warn().Str("email", email).Dur("remaining", remaining).Msg("login rejected by lockout")
		return models.User{}, models.Token{}, &LockoutError{Remaining: remaining}
	}

	check, err := VerifyPassword(password, user.PasswordHash, user.PasswordUpdatedAt, a.bcryptCost, now)
	if err != nil {
		log.Err(err).Str("email", email).Msg("password verification failed")
		return models.User{}, models.Token{}, fmt.Errorf("password verification failed: %w", err)
	}

	if !check.Valid {
		if err := a.userRepository.IncrementFailedLogins(ctx, email); err != nil {
			log.Err(err).Str("email", email).Msg("recording failed login attempt failed")
		}
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 {
		if err := a.userRepository.ResetFailedLogins(ctx, email); err != nil {
			log.Err(err).Str("email", email).Msg("resetting failed login counter failed")
		}
	}

	if check.NewHash != "" {
		if err := a.userRepository.UpdatePasswordHash(ctx, email, check.NewHash); err != nil {
			log.Err(err).Str("email", email).Msg("persisting upgraded password hash failed")
		} else {
			user.PasswordHash = check.NewHash
			user.PasswordUpdatedAt = now
			log.Info().Str("email", email).Msg("password hash upgraded")
		}
	}

	token, err := a.createToken(user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// GetUser returns the account for the given ID.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return nil, ErrTokenIsExpiredOrInvalid
	}

	return claims, nil
}

// createToken issues a signed JWT for the given user.
func (a *authService) createToken(user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// lockoutRemaining reports whether the account is inside an active lockout
// window and, if so, how long the window still lasts.
func (a *authService) lockoutRemaining(user models.User, now time.Time) (time.Duration, bool) {
	if user.FailedLoginAttempts < maxFailedLogins || user.LastFailedLogin == nil {
		return 0, false
	}

	elapsed := now.Sub(*user.LastFailedLogin)
	if elapsed >= lockoutWindow {
		return 0, false
	}

	return lockoutWindow - elapsed, true
}

// normalizeEmail trims, lowercases, and syntax-checks an email address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrValidationEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrValidationEmailRequired
	}

	return email, nil
}
