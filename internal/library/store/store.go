package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/library/internal/library/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this and expose sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Books() Books

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Users is the credential store accessor used by the auth service.
type Users interface {
	// GetUserByUsername matches the username exactly (case sensitive).
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a user and returns the id assigned by the database.
	// A username collision yields ErrAlreadyExists.
	CreateUser(ctx context.Context, username, passwordHash string) (int64, error)

	// UpdatePasswordHash replaces the stored credential, used when upgrading
	// legacy plaintext rows.
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error
}

type Books interface {
	// ListBooks returns every book, newest first.
	ListBooks(ctx context.Context) ([]domain.Book, error)

	GetBook(ctx context.Context, id int64) (domain.Book, error)

	// CreateBook inserts a book and returns its id.
	CreateBook(ctx context.Context, in domain.BookInput) (int64, error)

	// UpdateBook applies the non-nil fields of patch. ErrNotFound when no row matched.
	UpdateBook(ctx context.Context, id int64, patch domain.BookPatch) error

	// DeleteBook removes a book. ErrNotFound when no row matched.
	DeleteBook(ctx context.Context, id int64) error
}
