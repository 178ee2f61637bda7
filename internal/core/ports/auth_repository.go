package ports

import (
	"context"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts a user. Implementations must rely on the engine's
	// uniqueness constraint and return domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
