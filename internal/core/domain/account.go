package domain

import (
	"strings"
	"time"
)

// Account models one registered user.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the public view of an account. It never carries the password hash.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Profile returns the redacted view of the account.
func (a *Account) Profile() Profile {
	return Profile{ID: a.ID, Email: a.Email, Name: a.Name}
}

// IssuedToken is the result of a successful signup or signin.
type IssuedToken struct {
	AccessToken string  `json:"access_token"`
	User        Profile `json:"user"`
}

// NormalizeEmail returns the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
