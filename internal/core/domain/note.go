package domain

import "time"

const (
	// DefaultMaxContentLength bounds note content, in characters.
	DefaultMaxContentLength = 10240
	MaxTitleLength          = 255
)

// Note is a Markdown document owned by a single user. UserID is fixed at
// creation.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NotePatch is a partial update; nil fields are left unchanged.
type NotePatch struct {
	Title   *string
	Content *string
}

// EnsureOwner is the single ownership guard for note-scoped operations.
// A missing note yields ErrNoteNotFound, a note owned by someone else
// yields ErrForbidden.
func EnsureOwner(note *Note, callerID string) (*Note, error) {
	if note == nil {
		return nil, ErrNoteNotFound
	}
	if callerID == "" || note.UserID != callerID {
		return nil, ErrForbidden
	}
	return note, nil
}
