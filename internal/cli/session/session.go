package session

import "errors"

// User is the cached record of the logged-in account
type User struct {
	ID        int64  `json:"id" yaml:"id"`
	UUID      string `json:"uuid" yaml:"uuid"`
	Email     string `json:"email" yaml:"email"`
	Role      string `json:"role" yaml:"role"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// Store defines the session storage operations.
// Reads never fail: an unreadable entry is reported as absent.
type Store interface {
	Token() (string, bool)
	SetToken(token string) error
	ClearToken() error

	User() (*User, bool)
	SetUser(u *User) error
	ClearUser() error
}

// Clear removes both the token and the user from the store.
// Both entries are always attempted.
func Clear(s Store) error {
	return errors.Join(s.ClearToken(), s.ClearUser())
}
