package librarysdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to the public endpoints and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Authenticate logs in and wraps the resulting token in a Session.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: resp.Token, user: resp.User}, nil
}

// NewSessionFromToken creates a Session from a token obtained elsewhere.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}
