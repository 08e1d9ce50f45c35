package librarysdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/library/pkg/librarysdk"
	"github.com/stretchr/testify/require"
)

func TestClientLoginAndSession(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			var req librarysdk.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != "s3cr3t" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(librarysdk.MessageResponse{Message: "Invalid credentials"})
				return
			}
			_ = json.NewEncoder(w).Encode(librarysdk.LoginResponse{
				Message: "Logged in",
				Token:   "tok",
				User:    librarysdk.UserInfo{ID: 1, Username: req.Username},
			})
		case "/api/books/add":
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(librarysdk.CreateBookResponse{Message: "Book added", ID: 7})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client := librarysdk.NewClient(srv.URL + "/")
	ctx := context.Background()

	_, err := client.Authenticate(ctx, "alice", "wrong")
	var apiErr *librarysdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Invalid credentials", apiErr.Message)

	session, err := client.Authenticate(ctx, "alice", "s3cr3t")
	require.NoError(t, err)
	require.Equal(t, "tok", session.Token())
	require.Equal(t, librarysdk.UserInfo{ID: 1, Username: "alice"}, session.User())

	id, err := session.AddBook(ctx, librarysdk.BookInput{Title: librarysdk.String("Dune")})
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.Equal(t, "Bearer tok", gotAuth)

	_, err = client.GetBook(ctx, 1)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Not Found", apiErr.Message)
}
