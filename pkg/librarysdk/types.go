package librarysdk

import "time"

// MessageResponse is the body of every error and of most acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse is returned with 201 Created.
type RegisterResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo is the public identity of a user.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is returned with 200 OK.
type LoginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// Book is a catalog entry. Optional fields are null when unset.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      *string   `json:"author"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	PDFURL      *string   `json:"pdf_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookInput is the body of the add and update endpoints. Title is required
// when adding; on update only the non-blank fields present are applied.
type BookInput struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	PDFURL      *string `json:"pdf_url,omitempty"`
}

// CreateBookResponse is returned with 201 Created.
type CreateBookResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Status is "ok" or "degraded".
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	Version string `json:"version,omitempty"`

	// Checks is only set by the readiness probe.
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// String returns a pointer to s, for filling BookInput.
func String(s string) *string { return &s }
