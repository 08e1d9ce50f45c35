package jwtx

import (
	"errors"

	"github.com/aussiebroadwan/library/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// minSecretLen is the shortest secret we will sign with.
const minSecretLen = 16

// HS256Signer implements the Signer interface using a shared HMAC secret.
type HS256Signer struct {
	kid    string
	secret []byte
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	s := &HS256Signer{
		kid:    cryptox.Fingerprint(secret),
		secret: append([]byte(nil), secret...),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }
func (s *HS256Signer) KID() string { return s.kid }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.secret)
}

// Validate does a quick sanity check on the secret.
func (s *HS256Signer) Validate() error {
	if len(s.secret) < minSecretLen {
		return errors.New("jwtx: HS256 secret must be at least 16 bytes")
	}
	return nil
}
