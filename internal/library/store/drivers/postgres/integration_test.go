package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/library/internal/library/domain"
	"github.com/aussiebroadwan/library/internal/library/store"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway postgres container and returns a migrated store.
func setupPostgres(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "library",
			"POSTGRES_PASSWORD": "library",
			"POSTGRES_DB":       "library",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://library:library@%s:%s/library?sslmode=disable", host, port.Port())
	s, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestPostgresIntegration(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	t.Run("concurrent registration has one winner", func(t *testing.T) {
		const n = 8
		var (
			wg   sync.WaitGroup
			errs = make([]error, n)
		)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = s.Users().CreateUser(ctx, "alice", "hash")
			}()
		}
		wg.Wait()

		var ok int
		for _, err := range errs {
			if err == nil {
				ok++
				continue
			}
			require.ErrorIs(t, err, store.ErrAlreadyExists)
		}
		require.Equal(t, 1, ok)
	})

	t.Run("books round trip", func(t *testing.T) {
		title := "Dune"
		id, err := s.Books().CreateBook(ctx, domain.BookInput{Title: title})
		require.NoError(t, err)

		b, err := s.Books().GetBook(ctx, id)
		require.NoError(t, err)
		require.Equal(t, title, b.Title)
		require.Nil(t, b.Author)

		author := "Frank Herbert"
		require.NoError(t, s.Books().UpdateBook(ctx, id, domain.BookPatch{Author: &author}))
		require.NoError(t, s.Books().DeleteBook(ctx, id))
		require.ErrorIs(t, s.Books().DeleteBook(ctx, id), store.ErrNotFound)
	})

	t.Run("long text fields are stored whole", func(t *testing.T) {
		title := strings.Repeat("t", 1000)
		category := strings.Repeat("c", 300)
		id, err := s.Books().CreateBook(ctx, domain.BookInput{Title: title, Category: &category})
		require.NoError(t, err)

		b, err := s.Books().GetBook(ctx, id)
		require.NoError(t, err)
		require.Equal(t, title, b.Title)
		require.Equal(t, category, *b.Category)
	})
}
