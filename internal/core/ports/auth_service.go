package ports

import (
	"context"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.PublicUser, error)
	// Login returns a nil session and a nil error when the credentials do not
	// match a user.
	Login(ctx context.Context, email, password string) (*domain.Session, error)
}

// TokenVerifier resolves a bearer token to the caller's user id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}
