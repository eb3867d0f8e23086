package service

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid email or password")

	ErrValidationEmailRequired = errors.New("valid email is required")
	ErrValidationPasswordWeak  = errors.New("password must be at least 8 characters and contain a number")
	ErrEmailAlreadyRegistered  = errors.New("email already registered")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrPlatformUnknown         = errors.New("unknown platform")
	ErrPlatformUnavailable     = errors.New("platform not yet available")
)

// LockoutError rejects a login attempt during an active lockout window
// without the password ever being compared.
type LockoutError struct {
	// Remaining is how long the lockout still lasts.
	Remaining time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("account temporarily locked, try again in %d minutes", e.RemainingMinutes())
}

// RemainingMinutes reports the remaining lockout time rounded up to whole
// minutes, which is the granularity surfaced to the caller.
func (e *LockoutError) RemainingMinutes() int {
	return int(math.Ceil(e.Remaining.Minutes()))
}
