package domain

import "time"

const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
	MaxEmailLength    = 255
)

// User models a registered account. PasswordHash never leaves the credential
// store boundary in serialised form.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the subset of User that may be returned to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips the credential fields.
func (u *User) Public() *PublicUser {
	return &PublicUser{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Session is the result of a successful login.
type Session struct {
	User      *PublicUser `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}
