package models

import "time"

// User represents an account entity used for authentication and authorization.
// The only accounts the system ever creates through the API are regular users;
// the admin flag is set by the operator bootstrap command.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique account identifier used during authentication.
	// Always stored lowercased and trimmed.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// IsAdmin gates access to the reporting endpoints.
	IsAdmin bool `json:"is_admin"`

	// PasswordUpdatedAt records when PasswordHash was last (re)computed.
	// Used by the opportunistic-rehash decision.
	PasswordUpdatedAt time.Time `json:"-"`

	// FailedLoginAttempts counts consecutive failed logins since the last
	// successful one. Reset to zero on success.
	FailedLoginAttempts int `json:"-"`

	// LastFailedLogin is the timestamp of the most recent failed login,
	// nil if there has never been one (or the counter was reset).
	LastFailedLogin *time.Time `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
