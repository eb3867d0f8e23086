package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set carried by every bearer token the server issues.
// It extends the registered claims with the account identity so that
// authenticated handlers never need a database round trip to know who is
// calling or whether they are an admin.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the internal identifier of the authenticated account.
	UserID int64 `json:"user_id"`

	// Email is the account email at token-issue time.
	Email string `json:"email"`

	// IsAdmin mirrors the users.is_admin column at token-issue time.
	IsAdmin bool `json:"is_admin"`
}

// Token wraps a signed JWT together with its decoded claims.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Claims is the decoded claim set of the token.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// ConsumableToken is a single-use, time-boxed token. It proves control of an
// email address: issued on feedback submission, redeemable exactly once while
// unexpired. After redemption UsedAt is set and every further redemption
// attempt fails identically to an unknown token.
type ConsumableToken struct {
	ID        int64      `json:"-"`
	Email     string     `json:"email"`
	Token     string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the ConsumableToken model.
func (ConsumableToken) TableName() string {
	return "email_verification_tokens"
}

// RenewableWindowToken is a multi-use, time-boxed token. It is issued when a
// ConsumableToken is redeemed and authorizes any number of downloads across
// any number of platforms until ExpiresAt. It deliberately has no
// consumed-at state.
type RenewableWindowToken struct {
	ID        int64     `json:"-"`
	Email     string    `json:"email"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the RenewableWindowToken model.
func (RenewableWindowToken) TableName() string {
	return "download_tokens"
}
