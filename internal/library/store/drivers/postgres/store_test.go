package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/library/internal/library/domain"
	"github.com/aussiebroadwan/library/internal/library/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewStoreFromDB(db), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func strp(s string) *string { return &s }

func TestApplyMigrations(t *testing.T) {
	s, _ := newMockStore(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	t.Run("success", func(t *testing.T) {
		gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			if dir != "." {
				return errors.New("unexpected dir")
			}
			return nil
		}
		require.NoError(t, s.ApplyMigrations())
	})

	t.Run("error", func(t *testing.T) {
		gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			return errors.New("boom")
		}
		require.EqualError(t, s.ApplyMigrations(), "boom")
	})
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("get by username", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(`SELECT id, username, password, created_at FROM users WHERE username = $1`)).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at"}).
				AddRow(int64(1), "alice", "hash", now))

		u, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, domain.User{ID: 1, Username: "alice", Password: "hash", CreatedAt: now}, u)
	})

	t.Run("get missing", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(`FROM users WHERE username = $1`)).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := s.Users().GetUserByUsername(ctx, "ghost")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("create returns id", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(`INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id`)).
			WithArgs("alice", "hash").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		id, err := s.Users().CreateUser(ctx, "alice", "hash")
		require.NoError(t, err)
		require.Equal(t, int64(42), id)
	})

	t.Run("create maps unique violation", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(`INSERT INTO users`)).
			WithArgs("alice", "hash").
			WillReturnError(&pgconn.PgError{Code: uniqueViolation, Message: "duplicate key"})

		_, err := s.Users().CreateUser(ctx, "alice", "hash")
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("create passes other errors through", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(`INSERT INTO users`)).
			WithArgs("alice", "hash").
			WillReturnError(errors.New("connection reset"))

		_, err := s.Users().CreateUser(ctx, "alice", "hash")
		require.Error(t, err)
		require.NotErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update password hash", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(q(`UPDATE users SET password = $1 WHERE id = $2`)).
			WithArgs("new", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q(`UPDATE users SET password = $1 WHERE id = $2`)).
			WithArgs("new", int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, s.Users().UpdatePasswordHash(ctx, 1, "new"))
		require.ErrorIs(t, s.Users().UpdatePasswordHash(ctx, 2, "new"), store.ErrNotFound)
	})
}

func TestBooksRepo(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cols := []string{"id", "title", "author", "category", "description", "pdf_url", "created_at"}

	t.Run("list", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(`FROM books ORDER BY created_at DESC, id DESC`)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(2), "Emma", nil, nil, nil, nil, now).
				AddRow(int64(1), "Dune", "Frank Herbert", "SF", nil, nil, now))

		books, err := s.Books().ListBooks(ctx)
		require.NoError(t, err)
		require.Len(t, books, 2)
		require.Equal(t, int64(2), books[0].ID)
		require.Nil(t, books[0].Author)
		require.Equal(t, "Frank Herbert", *books[1].Author)
	})

	t.Run("get missing", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(`FROM books WHERE id = $1`)).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := s.Books().GetBook(ctx, 9)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("create", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(q(`INSERT INTO books (title, author, category, description, pdf_url) VALUES ($1, $2, $3, $4, $5) RETURNING id`)).
			WithArgs("Dune", "Frank Herbert", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

		id, err := s.Books().CreateBook(ctx, domain.BookInput{Title: "Dune", Author: strp("Frank Herbert")})
		require.NoError(t, err)
		require.Equal(t, int64(5), id)
	})

	t.Run("update", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(q(`UPDATE books SET title = $1 WHERE id = $2`)).
			WithArgs("Dune Messiah", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Books().UpdateBook(ctx, 5, domain.BookPatch{Title: strp("Dune Messiah")}))
	})

	t.Run("delete missing", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(q(`DELETE FROM books WHERE id = $1`)).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, s.Books().DeleteBook(ctx, 5), store.ErrNotFound)
	})
}
