// Package memory keeps users and notes in process memory. It backs
// STORE_DRIVER=memory and the end-to-end router tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*domain.User)}
}

// Create checks and inserts under one lock, so concurrent registrations of
// the same email yield exactly one success.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	stored := *user
	r.byEmail[user.Email] = &stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*domain.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]*domain.Note)}
}

func (r *NoteRepository) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *note
	r.notes[note.ID] = &stored
	out := stored
	return &out, nil
}

func (r *NoteRepository) FindByID(_ context.Context, id string) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	out := *n
	return &out, nil
}

func (r *NoteRepository) Update(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[note.ID]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	n.Title = note.Title
	n.Content = note.Content
	n.UpdatedAt = note.UpdatedAt

	out := *n
	return &out, nil
}

func (r *NoteRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return false, nil
	}
	delete(r.notes, id)
	return true, nil
}

func (r *NoteRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := []*domain.Note{}
	for _, n := range r.notes {
		if n.UserID == ownerID {
			out := *n
			notes = append(notes, &out)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		}
		return notes[i].ID < notes[j].ID
	})
	return notes, nil
}

// Ping always succeeds; it lets the store take part in readiness checks.
func (r *NoteRepository) Ping(context.Context) error { return nil }
