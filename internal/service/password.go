package service

import (
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Password policy and hash-upgrade thresholds.
const (
	minPasswordLength = 8

	// rehashAge is how old a stored hash may grow before the next
	// successful login transparently recomputes it at the current cost.
	rehashAge = 30 * 24 * time.Hour
)

// PasswordCheck is the outcome of a password verification. When the stored
// hash should be upgraded, NewHash carries the replacement; persisting it is
// the caller's decision.
type PasswordCheck struct {
	Valid   bool
	NewHash string
}

// ValidatePassword enforces the registration password policy: at least
// minPasswordLength characters and at least one decimal digit.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrValidationPasswordWeak
	}

	for _, r := range password {
		if unicode.IsDigit(r) {
			return nil
		}
	}

	return ErrValidationPasswordWeak
}

// HashPassword computes a bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword compares password against storedHash and decides whether
// the hash is due for an upgrade.
//
// The result carries two independent facts:
//   - Valid — the password matched the stored hash;
//   - NewHash — non-empty when the match succeeded and NeedsRehash reports
//     the stored hash should be replaced; computed at the given cost.
//
// Verification itself never mutates anything; persisting NewHash is left to
// the caller so the upgrade decision stays testable in isolation.
func VerifyPassword(password, storedHash string, updatedAt time.Time, cost int, now time.Time) (PasswordCheck, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return PasswordCheck{Valid: false}, nil
	}

	check := PasswordCheck{Valid: true}
	if NeedsRehash(storedHash, updatedAt, cost, now) {
		newHash, err := HashPassword(password, cost)
		if err != nil {
			return check, err
		}
		check.NewHash = newHash
	}

	return check, nil
}

// NeedsRehash reports whether a stored bcrypt hash should be recomputed:
// its cost factor is below the configured cost, its cost cannot be
// determined, or it is older than rehashAge.
func NeedsRehash(storedHash string, updatedAt time.Time, cost int, now time.Time) bool {
	storedCost, err := bcrypt.Cost([]byte(storedHash))
	if err != nil || storedCost < cost {
		return true
	}

	return now.Sub(updatedAt) >= rehashAge
}
