package librarysdk

import (
	"context"
	"net/http"
	"strconv"
)

// Session carries a bearer token for the protected book endpoints.
type Session struct {
	client *Client
	token  string
	user   UserInfo
}

// Token returns the raw session token.
func (s *Session) Token() string { return s.token }

// User returns the identity returned at login. It is zero for sessions built
// with NewSessionFromToken.
func (s *Session) User() UserInfo { return s.user }

// AddBook creates a book and returns its id.
func (s *Session) AddBook(ctx context.Context, in BookInput) (int64, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/api/books/add", in, s.token)
	if err != nil {
		return 0, err
	}

	var out CreateBookResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// UpdateBook applies the non-blank fields of in to book id.
func (s *Session) UpdateBook(ctx context.Context, id int64, in BookInput) error {
	resp, err := s.client.doRequest(ctx, http.MethodPut,
		"/api/books/update/"+strconv.FormatInt(id, 10), in, s.token)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// DeleteBook removes book id.
func (s *Session) DeleteBook(ctx context.Context, id int64) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete,
		"/api/books/delete/"+strconv.FormatInt(id, 10), nil, s.token)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}
