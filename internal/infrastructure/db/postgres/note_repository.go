package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

const noteColumns = `id, user_id, title, content, created_at, updated_at`

type NoteRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewNoteRepository(db DBTX, timeout time.Duration) *NoteRepository {
	return &NoteRepository{db: db, timeout: timeout}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*domain.Note, error) {
	var n domain.Note
	if err := s.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return &n, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `INSERT INTO notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + noteColumns

	created, err := scanNote(r.db.QueryRowContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.CreatedAt, note.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return created, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	if !validID(id) {
		return nil, domain.ErrNoteNotFound
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`

	note, err := scanNote(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return note, nil
}

// Update writes title, content and updated_at. user_id and created_at are
// never part of the statement.
func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if !validID(note.ID) {
		return nil, domain.ErrNoteNotFound
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `UPDATE notes SET title = $2, content = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + noteColumns

	updated, err := scanNote(r.db.QueryRowContext(ctx, query, note.ID, note.Title, note.Content, note.UpdatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return updated, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	return n > 0, nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + noteColumns + ` FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}
