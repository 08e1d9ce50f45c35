package jwtx

import (
	"errors"
	"time"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOption tweaks verifier behaviour.
type VerifyOption func(*verifyOptions)

type verifyOptions struct {
	now func() time.Time
}

// WithClock overrides the time source used for exp checks. Tests use it to
// move across the expiry boundary without sleeping.
func WithClock(now func() time.Time) VerifyOption {
	return func(o *verifyOptions) {
		if now != nil {
			o.now = now
		}
	}
}

var (
	ErrMissingSecret = errors.New("jwtx: missing secret")
	ErrMalformed     = errors.New("jwtx: malformed token")
	ErrAlgMismatch   = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig    = errors.New("jwtx: invalid signature")

	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)
