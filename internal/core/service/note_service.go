package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mdnotes/notes-api/internal/core/domain"
	"github.com/mdnotes/notes-api/internal/core/ports"
)

// NoteService validates note payloads and delegates persistence. It does not
// filter by owner; the HTTP layer applies domain.EnsureOwner.
type NoteService struct {
	repo       ports.NoteRepository
	renderer   ports.Renderer
	cache      ports.RenderCache
	warmer     ports.RenderWarmer
	maxContent int
	log        zerolog.Logger
	now        func() time.Time
}

// NoteOption customises a NoteService.
type NoteOption func(*NoteService)

// WithMaxContentLength overrides domain.DefaultMaxContentLength.
func WithMaxContentLength(n int) NoteOption {
	return func(s *NoteService) {
		if n > 0 {
			s.maxContent = n
		}
	}
}

// WithRenderCache enables memoisation of rendered HTML.
func WithRenderCache(c ports.RenderCache) NoteOption {
	return func(s *NoteService) { s.cache = c }
}

// WithRenderWarmer queues created and updated notes for background rendering.
func WithRenderWarmer(w ports.RenderWarmer) NoteOption {
	return func(s *NoteService) { s.warmer = w }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) NoteOption {
	return func(s *NoteService) { s.now = now }
}

func NewNoteService(repo ports.NoteRepository, renderer ports.Renderer, log zerolog.Logger, opts ...NoteOption) *NoteService {
	s := &NoteService{
		repo:       repo,
		renderer:   renderer,
		maxContent: domain.DefaultMaxContentLength,
		log:        log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *NoteService) CreateNote(ctx context.Context, ownerID, title, content string) (*domain.Note, error) {
	if err := s.validateTitle(title); err != nil {
		return nil, err
	}
	if err := s.validateContent(content); err != nil {
		return nil, err
	}

	now := s.timestamp()
	note := &domain.Note{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, note)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", ownerID).Msg("failed to create note")
		return nil, err
	}

	s.log.Info().Str("note_id", created.ID).Str("user_id", ownerID).Msg("note created")
	s.warm(created)
	return created, nil
}

func (s *NoteService) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return note, nil
}

// UpdateNote applies the fields present in patch. Validation only covers
// those fields; updatedAt advances on every accepted update and never moves
// behind createdAt.
func (s *NoteService) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil || note == nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := s.validateTitle(*patch.Title); err != nil {
			return nil, err
		}
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		if err := s.validateContent(*patch.Content); err != nil {
			return nil, err
		}
		note.Content = *patch.Content
	}

	note.UpdatedAt = s.timestamp()
	if note.UpdatedAt.Before(note.CreatedAt) {
		note.UpdatedAt = note.CreatedAt
	}

	updated, err := s.repo.Update(ctx, note)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, nil
		}
		return nil, err
	}

	s.log.Info().Str("note_id", id).Msg("note updated")
	s.warm(updated)
	return updated, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		s.log.Info().Str("note_id", id).Msg("note deleted")
	}
	return removed, nil
}

func (s *NoteService) ListNotes(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	notes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*domain.Note{}
	}
	return notes, nil
}

// RenderNote converts the note content to HTML. Results are cached per
// note revision when a cache is configured; cache failures only cost a
// re-render.
func (s *NoteService) RenderNote(ctx context.Context, note *domain.Note) (string, error) {
	key := renderKey(note)

	if s.cache != nil {
		html, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("note_id", note.ID).Msg("render cache lookup failed, rendering anyway")
		} else if ok {
			return html, nil
		}
	}

	html, err := s.renderer.Render(note.Content)
	if err != nil {
		return "", fmt.Errorf("render note %s: %w", note.ID, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, html); err != nil {
			s.log.Warn().Err(err).Str("note_id", note.ID).Msg("failed to store rendered note")
		}
	}
	return html, nil
}

func (s *NoteService) warm(note *domain.Note) {
	if s.warmer != nil && s.cache != nil {
		s.warmer.Enqueue(note)
	}
}

func (s *NoteService) validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.InvalidInput("title cannot be empty")
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return domain.InvalidInput(fmt.Sprintf("title must be at most %d characters", domain.MaxTitleLength))
	}
	return nil
}

func (s *NoteService) validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.InvalidInput("content cannot be empty")
	}
	if utf8.RuneCountInString(content) > s.maxContent {
		return domain.InvalidInput(fmt.Sprintf("content size exceeds maximum of %d characters", s.maxContent))
	}
	return nil
}

// timestamp is truncated to microseconds, the finest resolution every store keeps.
func (s *NoteService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func renderKey(note *domain.Note) string {
	return fmt.Sprintf("%s:%d", note.ID, note.UpdatedAt.UnixNano())
}
