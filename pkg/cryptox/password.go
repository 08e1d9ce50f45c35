package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for every newly hashed password.
const BcryptCost = 10

const maxBcryptBytes = 72

// Scheme names the one-way function an encoded hash was produced with.
type Scheme string

const (
	SchemeNone     Scheme = ""
	SchemeBcrypt   Scheme = "bcrypt"
	SchemeArgon2id Scheme = "argon2id"
)

var (
	// ErrMismatch is returned when a password does not match a well-formed hash.
	ErrMismatch = errors.New("password does not match")

	// ErrPasswordTooLong is returned for passwords bcrypt cannot represent (>72 bytes).
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

	// ErrUnknownScheme is returned when asked to verify against a value with no
	// recognised hash prefix.
	ErrUnknownScheme = errors.New("unrecognised hash scheme")
)

// HashPassword returns a salted bcrypt hash of password at BcryptCost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(hash), nil
}

// DetectScheme inspects the fixed prefix of an encoded value. Anything without
// a recognised marker reports SchemeNone.
func DetectScheme(encoded string) Scheme {
	switch {
	case strings.HasPrefix(encoded, "$2a$"),
		strings.HasPrefix(encoded, "$2b$"),
		strings.HasPrefix(encoded, "$2y$"):
		return SchemeBcrypt
	case strings.HasPrefix(encoded, "$argon2id$"):
		return SchemeArgon2id
	default:
		return SchemeNone
	}
}

// VerifyPassword checks password against an encoded hash using the scheme
// named by its prefix. A clean mismatch yields ErrMismatch; a malformed hash
// yields some other error so callers can tell the two apart.
func VerifyPassword(password, encoded string) error {
	switch DetectScheme(encoded) {
	case SchemeBcrypt:
		// bcrypt only reads the first 72 bytes; anything longer could never
		// have been hashed here.
		if len(password) > maxBcryptBytes {
			return ErrMismatch
		}
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	case SchemeArgon2id:
		return verifyArgon2id(password, encoded)
	default:
		return ErrUnknownScheme
	}
}

// verifyArgon2id compares a password against a PHC-style Argon2id hash:
// $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
func verifyArgon2id(password, encoded string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return errors.New("invalid hash format: expected 6 parts")
	}
	if parts[2] != "v=19" {
		return errors.New("invalid hash format: wrong version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - hash length is tiny
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrMismatch
}

// EqualPlaintext compares two secrets in constant time.
func EqualPlaintext(presented, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) == 1
}
