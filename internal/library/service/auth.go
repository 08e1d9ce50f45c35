package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/library/internal/library/domain"
	"github.com/aussiebroadwan/library/internal/library/store"
	"github.com/aussiebroadwan/library/pkg/cryptox"
	"github.com/aussiebroadwan/library/pkg/jwtx"
	"github.com/aussiebroadwan/library/pkg/slogx"
)

// AuthService registers users, exchanges credentials for session tokens and
// verifies those tokens. It satisfies jwtx.Verifier so it can back
// httpx.AuthnMiddleware directly.
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier

	// TokenTTL defaults to jwtx.DefaultSessionTTL.
	TokenTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

var _ jwtx.Verifier = (*AuthService)(nil)

// dummyHash is compared against when the username is unknown so a miss costs
// the same bcrypt work as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	secret, err := cryptox.GenerateToken(cryptox.SecretSize256)
	if err != nil {
		secret = "library-dummy-password"
	}
	h, err := cryptox.HashPassword(secret)
	if err != nil {
		return ""
	}
	return h
})

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultSessionTTL
}

// Register creates a user with a bcrypt-hashed password and returns the id
// assigned by the store.
func (s *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, ErrValidation
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return 0, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	id, err := s.Store.Users().CreateUser(ctx, username, hash)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return 0, ErrDuplicateUser
		}
		return 0, fmt.Errorf("%w: %w", ErrStore, err)
	}

	slogx.FromContext(ctx).Info("user registered", slog.Int64("user_id", id))
	return id, nil
}

// Login checks username and password and mints a session token. Unknown users
// and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, ErrValidation
	}

	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash())
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("%w: %w", ErrStore, err)
	}

	cred := domain.ParseCredential(user.Password)
	if !cred.IsHashed() {
		_ = cryptox.VerifyPassword(password, dummyHash())
	}

	if err := cred.Verify(password); err != nil {
		if errors.Is(err, domain.ErrCredentialMismatch) {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if cred.NeedsUpgrade() {
		s.upgradeCredential(ctx, user.ID, password)
	}

	now := s.now()
	claims := jwtx.NewSessionClaims(user.ID, user.Username, s.ttl(), now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	l.Info("user logged in", slog.Int64("user_id", user.ID))
	return domain.Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user.Identity(),
	}, nil
}

// upgradeCredential replaces a legacy plaintext password with a bcrypt hash.
// Failures are logged and otherwise ignored; the next login retries.
func (s *AuthService) upgradeCredential(ctx context.Context, userID int64, password string) {
	l := slogx.FromContext(ctx).With(slog.Int64("user_id", userID))

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Warn("credential upgrade: hash failed", slog.Any("error", err))
		return
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		l.Warn("credential upgrade: store failed", slog.Any("error", err))
		return
	}
	l.Info("credential upgraded to bcrypt")
}

// Verify checks a session token. Every failure is reported as
// ErrUnauthenticated with the reason wrapped for logging.
func (s *AuthService) Verify(token string) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return claims, nil
}

// Ready reports whether the token signer is usable.
func (s *AuthService) Ready() error {
	if s.Signer == nil {
		return errors.New("signer not configured")
	}
	return s.Signer.Validate()
}
