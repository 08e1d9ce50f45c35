package domain

import "time"

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      Identity
}
