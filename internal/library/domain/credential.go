package domain

import (
	"errors"

	"github.com/aussiebroadwan/library/pkg/cryptox"
)

// ErrCredentialMismatch is returned by Credential.Verify when the presented
// password does not match. Any other error means the stored value is unusable.
var ErrCredentialMismatch = errors.New("credential mismatch")

// Credential is the stored password value resolved into one of two variants:
// a one-way hash carrying a recognised prefix marker, or a legacy plaintext
// value written before hashing was introduced.
type Credential struct {
	scheme cryptox.Scheme
	value  string
}

// ParseCredential classifies a stored password string.
func ParseCredential(stored string) Credential {
	return Credential{scheme: cryptox.DetectScheme(stored), value: stored}
}

// IsHashed reports whether the credential is a one-way hash.
func (c Credential) IsHashed() bool { return c.scheme != cryptox.SchemeNone }

// Scheme returns the hash scheme, or cryptox.SchemeNone for plaintext.
func (c Credential) Scheme() cryptox.Scheme { return c.scheme }

// NeedsUpgrade reports whether a successful login should rehash this value.
func (c Credential) NeedsUpgrade() bool { return !c.IsHashed() }

// Verify checks password against the credential. Hashed values only ever go
// through their one-way verifier, so presenting the hash itself never matches.
func (c Credential) Verify(password string) error {
	if !c.IsHashed() {
		if c.value == "" || !cryptox.EqualPlaintext(password, c.value) {
			return ErrCredentialMismatch
		}
		return nil
	}

	err := cryptox.VerifyPassword(password, c.value)
	if errors.Is(err, cryptox.ErrMismatch) {
		return ErrCredentialMismatch
	}
	return err
}
