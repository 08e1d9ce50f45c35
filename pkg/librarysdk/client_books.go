package librarysdk

import (
	"context"
	"net/http"
	"strconv"
)

// ListBooks returns every book, newest first.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/books", nil, "")
	if err != nil {
		return nil, err
	}

	var books []Book
	if err := decodeJSON(resp, &books, http.StatusOK); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook fetches one book by id.
func (c *Client) GetBook(ctx context.Context, id int64) (*Book, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/books/"+strconv.FormatInt(id, 10), nil, "")
	if err != nil {
		return nil, err
	}

	var book Book
	if err := decodeJSON(resp, &book, http.StatusOK); err != nil {
		return nil, err
	}
	return &book, nil
}
