package ports

import (
	"context"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

// NoteService defines use-case operations for notes. It performs no
// ownership filtering; callers enforce ownership with domain.EnsureOwner.
type NoteService interface {
	CreateNote(ctx context.Context, ownerID, title, content string) (*domain.Note, error)
	// GetNote returns (nil, nil) when the note does not exist.
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	// UpdateNote returns (nil, nil) when the note does not exist.
	UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error)
	DeleteNote(ctx context.Context, id string) (bool, error)
	ListNotes(ctx context.Context, ownerID string) ([]*domain.Note, error)
	RenderNote(ctx context.Context, note *domain.Note) (string, error)
}

// Renderer converts Markdown to HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}

// RenderCache memoises rendered HTML.
type RenderCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, html string) error
}

// RenderWarmer pre-renders notes in the background. Enqueue must not block.
type RenderWarmer interface {
	Enqueue(note *domain.Note) bool
}
