package librarysdk

import (
	"context"
	"net/http"
)

// Register creates a user account. It does not log in.
func (c *Client) Register(ctx context.Context, username, password string) (*RegisterResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register",
		RegisterRequest{Username: username, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login",
		LoginRequest{Username: username, Password: password}, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
