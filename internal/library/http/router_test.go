package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	libraryhttp "github.com/aussiebroadwan/library/internal/library/http"
	"github.com/aussiebroadwan/library/internal/library/service"
	"github.com/aussiebroadwan/library/internal/library/store/drivers/sqlite"
	"github.com/aussiebroadwan/library/pkg/httpx"
	"github.com/aussiebroadwan/library/pkg/jwtx"
	"github.com/aussiebroadwan/library/pkg/librarysdk"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("router-test-secret-0123456789abcdef")

type testServer struct {
	URL    string
	Client *librarysdk.Client
	Store  *sqlite.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	st, err := sqlite.NewStore(filepath.Join(dir, "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	public := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(public, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(public, "index.html"), []byte("<h1>Library</h1>"), 0o644))

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := libraryhttp.NewRouter("test", st, logger)
	router.AuthService = &service.AuthService{Store: st, Signer: signer, Verifier: verifier}
	router.BookService = &service.BookService{Store: st}
	router.PublicDir = public
	router.Use(httpx.CORSMiddleware([]string{"*"}))
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: librarysdk.NewClient(srv.URL), Store: st}
}

// do sends a raw request and returns status plus decoded message, if any.
func (s *testServer) do(t *testing.T, method, path, body, token string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(method, s.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var msg librarysdk.MessageResponse
	_ = json.Unmarshal(raw, &msg)
	return resp.StatusCode, msg.Message
}

func requireAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var apiErr *librarysdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, message, apiErr.Message)
}

func TestAuthFlowExample(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	reg, err := s.Client.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)
	require.Equal(t, "User created", reg.Message)
	require.Equal(t, int64(1), reg.ID)

	_, err = s.Client.Login(ctx, "alice", "wrong")
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid credentials")

	login, err := s.Client.Login(ctx, "alice", "s3cr3t")
	require.NoError(t, err)
	require.Equal(t, "Logged in", login.Message)
	require.NotEmpty(t, login.Token)
	require.Equal(t, librarysdk.UserInfo{ID: 1, Username: "alice"}, login.User)

	t.Run("unknown user looks like wrong password", func(t *testing.T) {
		_, err := s.Client.Login(ctx, "mallory", "s3cr3t")
		requireAPIError(t, err, http.StatusUnauthorized, "Invalid credentials")
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := s.Client.Register(ctx, "alice", "another")
		requireAPIError(t, err, http.StatusBadRequest, "Username exists")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := s.Client.Register(ctx, "bob", "")
		requireAPIError(t, err, http.StatusBadRequest, "Missing fields")

		_, err = s.Client.Login(ctx, "", "s3cr3t")
		requireAPIError(t, err, http.StatusBadRequest, "Missing fields")

		status, msg := s.do(t, http.MethodPost, "/api/auth/register", "", "")
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "Missing fields", msg)
	})

	t.Run("password too long", func(t *testing.T) {
		_, err := s.Client.Register(ctx, "bob", strings.Repeat("p", 73))
		requireAPIError(t, err, http.StatusBadRequest, "Password too long")
	})

	t.Run("invalid json", func(t *testing.T) {
		status, msg := s.do(t, http.MethodPost, "/api/auth/login", `{"username":`, "")
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "Invalid JSON in request body", msg)
	})
}

func TestLoginResponseOmitsCredential(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"s3cr3t"}`, "")
	require.Equal(t, http.StatusCreated, status)

	resp, err := http.Post(s.URL+"/api/auth/login", "application/json",
		bytes.NewBufferString(`{"username":"alice","password":"s3cr3t"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.ElementsMatch(t, []string{"message", "token", "user"}, keys(body))

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.ElementsMatch(t, []string{"id", "username"}, keys(user))
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestBooksFlow(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.Client.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)
	session, err := s.Client.Authenticate(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	t.Run("writes need a token", func(t *testing.T) {
		anon := s.Client.NewSessionFromToken("")
		_, err := anon.AddBook(ctx, librarysdk.BookInput{Title: librarysdk.String("Dune")})
		requireAPIError(t, err, http.StatusUnauthorized, "Unauthorized")

		bogus := s.Client.NewSessionFromToken("not.a.jwt")
		err = bogus.DeleteBook(ctx, 1)
		requireAPIError(t, err, http.StatusUnauthorized, "Unauthorized")
	})

	t.Run("title required", func(t *testing.T) {
		_, err := session.AddBook(ctx, librarysdk.BookInput{Author: librarysdk.String("Anon")})
		requireAPIError(t, err, http.StatusBadRequest, "Title is required")
	})

	dune, err := session.AddBook(ctx, librarysdk.BookInput{
		Title:  librarysdk.String(" Dune "),
		Author: librarysdk.String("Frank Herbert"),
	})
	require.NoError(t, err)
	emma, err := session.AddBook(ctx, librarysdk.BookInput{Title: librarysdk.String("Emma")})
	require.NoError(t, err)

	t.Run("list is public and newest first", func(t *testing.T) {
		books, err := s.Client.ListBooks(ctx)
		require.NoError(t, err)
		require.Len(t, books, 2)
		require.Equal(t, emma, books[0].ID)
		require.Equal(t, dune, books[1].ID)
		require.Nil(t, books[0].Author)
	})

	t.Run("get", func(t *testing.T) {
		b, err := s.Client.GetBook(ctx, dune)
		require.NoError(t, err)
		require.Equal(t, "Dune", b.Title)
		require.Equal(t, "Frank Herbert", *b.Author)
		require.False(t, b.CreatedAt.IsZero())

		_, err = s.Client.GetBook(ctx, 999)
		requireAPIError(t, err, http.StatusNotFound, "Book not found")

		status, msg := s.do(t, http.MethodGet, "/api/books/abc", "", "")
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "Invalid id", msg)

		status, msg = s.do(t, http.MethodGet, "/api/books/0", "", "")
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "Invalid id", msg)
	})

	t.Run("update", func(t *testing.T) {
		require.NoError(t, session.UpdateBook(ctx, dune, librarysdk.BookInput{Category: librarysdk.String("SF")}))

		b, err := s.Client.GetBook(ctx, dune)
		require.NoError(t, err)
		require.Equal(t, "SF", *b.Category)

		err = session.UpdateBook(ctx, dune, librarysdk.BookInput{})
		requireAPIError(t, err, http.StatusBadRequest, "No fields to update")

		err = session.UpdateBook(ctx, 999, librarysdk.BookInput{Title: librarysdk.String("x")})
		requireAPIError(t, err, http.StatusNotFound, "Book not found")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, session.DeleteBook(ctx, emma))

		err := session.DeleteBook(ctx, emma)
		requireAPIError(t, err, http.StatusNotFound, "Book not found")

		status, msg := s.do(t, http.MethodDelete, "/api/books/delete/-3", "", session.Token())
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "Invalid id", msg)
	})
}

func TestExpiredTokenRejected(t *testing.T) {
	s := newTestServer(t)

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	stale, err := signer.Sign(jwtx.NewSessionClaims(1, "alice", jwtx.DefaultSessionTTL, time.Now().Add(-9*time.Hour)))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, s.URL+"/api/books/add", strings.NewReader(`{"title":"Dune"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+stale)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, `Bearer error="invalid_token"`, resp.Header.Get("WWW-Authenticate"))
}

func TestSystemRoutes(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	t.Run("smoke test", func(t *testing.T) {
		resp, err := http.Get(s.URL + "/test")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "SERVER WORKING", string(body))
	})

	t.Run("health", func(t *testing.T) {
		live, err := s.Client.GetLiveness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", live.Status)
		require.Equal(t, "test", live.Version)

		ready, err := s.Client.GetReadiness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", ready.Status)
		require.Equal(t, "ok", ready.Checks.Database)
		require.Equal(t, "ok", ready.Checks.Signer)
	})

	t.Run("unknown api route", func(t *testing.T) {
		status, msg := s.do(t, http.MethodGet, "/api/nope", "", "")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "API Route Not Found", msg)

		status, msg = s.do(t, http.MethodPost, "/api/books", "", "")
		require.Equal(t, http.StatusNotFound, status)
		require.Equal(t, "API Route Not Found", msg)
	})

	t.Run("static frontend", func(t *testing.T) {
		resp, err := http.Get(s.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, string(body), "Library")
	})

	t.Run("request id echoed", func(t *testing.T) {
		resp, err := http.Get(s.URL + "/livez")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})

	t.Run("cors preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, s.URL+"/api/books/add", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "https://frontend.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}
