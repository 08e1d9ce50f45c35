package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a session token stays valid after login.
const DefaultSessionTTL = 8 * time.Hour

// Claims are the session-token claims. The payload on the wire is exactly
// {id, username, iat, exp}.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the numeric identity assigned by the store.
	UserID int64 `json:"id"`

	// Username for the authenticated user
	Username string `json:"username"`
}

// NewSessionClaims builds claims issued at now and expiring after ttl.
func NewSessionClaims(userID int64, username string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
	}
}

// ValidateExpiryAt reports ErrExpired once now has reached exp. A token issued
// at T is therefore accepted strictly before T+ttl.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}

// ValidateIdentity makes sure the token names somebody.
func (c *Claims) ValidateIdentity() error {
	if c.UserID <= 0 || c.Username == "" {
		return ErrInvalidClaim
	}
	return nil
}
