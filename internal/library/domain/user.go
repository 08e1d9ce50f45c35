package domain

import "time"

type User struct {
	ID        int64
	Username  string
	Password  string // stored credential: a one-way hash, or plaintext on legacy rows
	CreatedAt time.Time
}

// Identity is the subset of a user that is safe to hand back to callers.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}
