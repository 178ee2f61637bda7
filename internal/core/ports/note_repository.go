package ports

import (
	"context"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	// FindByID returns domain.ErrNoteNotFound when the note does not exist.
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	// Update writes title, content and updated_at. The owner column is never
	// touched. Returns domain.ErrNoteNotFound when the row is gone.
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// ListByOwner returns the owner's notes, most recently updated first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error)
}
