package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
	mailer "github.com/notsus/site-backend/internal/mail"
	"github.com/notsus/site-backend/internal/store"
	"github.com/notsus/site-backend/models"
)

// tokenEntropyBytes is the raw entropy of every opaque token; hex encoding
// doubles the string length.
const tokenEntropyBytes = 32

// tokenService is the concrete implementation of TokenService. It chains
// two token state machines: a verification token is redeemable exactly once
// and its successful redemption mints a download token valid for any number
// of downloads until expiry.
type tokenService struct {
	tokenRepository store.TokenRepository
	sender          mailer.Sender

	// baseURL is the public site origin embedded in verification links.
	baseURL string

	// tokenDuration is the validity window of both token kinds.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewTokenService constructs a TokenService wired to the token repository
// and the outbound mail sender.
func NewTokenService(tokenRepository store.TokenRepository, sender mailer.Sender, cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenRepository: tokenRepository,
		sender:          sender,
		baseURL:         cfg.BaseURL,
		tokenDuration:   cfg.TokenDuration,
		now:             time.Now,
		logger:          logger,
	}
}

// IssueVerificationToken mints a single-use verification token for email,
// persists it, and delivers the verification link via the mail sender.
//
// A delivery failure is returned to the caller but the token row stays
// persisted; the caller decides whether that failure is fatal.
func (t *tokenService) IssueVerificationToken(ctx context.Context, email string) (models.ConsumableToken, error) {
	log := logger.FromContext(ctx)

	raw, err := generateToken()
	if err != nil {
		return models.ConsumableToken{}, err
	}

	token, err := t.tokenRepository.CreateVerificationToken(ctx, email, raw, t.now().Add(t.tokenDuration))
	if err != nil {
		log.Err(err).Str("email", email).Msg("persisting verification token failed")
		return models.ConsumableToken{}, fmt.Errorf("persisting verification token failed: %w", err)
	}

	msg := mailer.VerificationEmail(t.baseURL, email, raw)
	if err := t.sender.Send(ctx, msg); err != nil {
		log.Err(err).Str("email", email).Msg("sending verification email failed")
		return token, fmt.Errorf("sending verification email failed: %w", err)
	}

	return token, nil
}

// RedeemVerificationToken atomically consumes a verification token and, on
// success, issues a download token for the same email.
//
// Unknown, expired, and already-used tokens all fail identically with
// ErrTokenIsExpiredOrInvalid; the cause is never disclosed to the caller.
func (t *tokenService) RedeemVerificationToken(ctx context.Context, token string) (models.RenewableWindowToken, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.RenewableWindowToken{}, ErrTokenIsExpiredOrInvalid
	}

	email, err := t.tokenRepository.RedeemVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return models.RenewableWindowToken{}, ErrTokenIsExpiredOrInvalid
		}
		log.Err(err).Msg("redeeming verification token failed")
		return models.RenewableWindowToken{}, fmt.Errorf("redeeming verification token failed: %w", err)
	}

	raw, err := generateToken()
	if err != nil {
		return models.RenewableWindowToken{}, err
	}

	downloadToken, err := t.tokenRepository.CreateDownloadToken(ctx, email, raw, t.now().Add(t.tokenDuration))
	if err != nil {
		log.Err(err).Str("email", email).Msg("persisting download token failed")
		return models.RenewableWindowToken{}, fmt.Errorf("persisting download token failed: %w", err)
	}

	log.Info().Str("email", email).Msg("verification token redeemed, download token issued")
	return downloadToken, nil
}

// ResolveDownloadToken returns the email owning a still-valid download
// token. The token alone resolves the email; callers never supply it.
func (t *tokenService) ResolveDownloadToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrTokenIsExpiredOrInvalid
	}

	email, err := t.tokenRepository.ResolveDownloadToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return "", ErrTokenIsExpiredOrInvalid
		}
		return "", fmt.Errorf("resolving download token failed: %w", err)
	}

	return email, nil
}

// generateToken returns a hex-encoded opaque token with tokenEntropyBytes
// bytes of cryptographic randomness.
func generateToken() (string, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
