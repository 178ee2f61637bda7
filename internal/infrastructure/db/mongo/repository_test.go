package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

func noteDoc(id, owner string, updated time.Time) bson.D {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "user_id", Value: owner},
		{Key: "title", Value: "T"},
		{Key: "content", Value: "body"},
		{Key: "created_at", Value: created.UnixMicro()},
		{Key: "updated_at", Value: updated.UnixMicro()},
	}
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		got, err := repo.Create(context.Background(), &domain.User{ID: "u-1", Email: "a@b.co", PasswordHash: "hash"})
		require.NoError(mt, err)
		assert.Equal(mt, "u-1", got.ID)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := repo.Create(context.Background(), &domain.User{ID: "u-2", Email: "a@b.co"})
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		created := time.Date(2025, 3, 1, 10, 0, 0, 123000, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "notes.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u-1"},
			{Key: "email", Value: "a@b.co"},
			{Key: "password_hash", Value: "hash"},
			{Key: "created_at", Value: created.UnixMicro()},
		}))

		got, err := repo.FindByEmail(context.Background(), "a@b.co")
		require.NoError(mt, err)
		assert.Equal(mt, "hash", got.PasswordHash)
		assert.True(mt, got.CreatedAt.Equal(created))
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "notes.users", mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "ghost@b.co")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})
}

func TestNoteRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	updated := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	mt.Run("find by id", func(mt *mtest.T) {
		repo := NewNoteRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "notes.notes", mtest.FirstBatch, noteDoc("n-1", "u-1", updated)))

		got, err := repo.FindByID(context.Background(), "n-1")
		require.NoError(mt, err)
		assert.Equal(mt, "u-1", got.UserID)
		assert.True(mt, got.UpdatedAt.Equal(updated))
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := NewNoteRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "notes.notes", mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, domain.ErrNoteNotFound)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := NewNoteRepository(mt.DB, time.Second)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: noteDoc("n-1", "u-1", updated)},
		})

		got, err := repo.Update(context.Background(), &domain.Note{ID: "n-1", Title: "T", Content: "body", UpdatedAt: updated})
		require.NoError(mt, err)
		assert.Equal(mt, "u-1", got.UserID)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewNoteRepository(mt.DB, time.Second)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.Update(context.Background(), &domain.Note{ID: "missing"})
		assert.ErrorIs(mt, err, domain.ErrNoteNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewNoteRepository(mt.DB, time.Second)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		removed, err := repo.Delete(context.Background(), "n-1")
		require.NoError(mt, err)
		assert.True(mt, removed)

		removed, err = repo.Delete(context.Background(), "n-1")
		require.NoError(mt, err)
		assert.False(mt, removed)
	})

	mt.Run("list by owner", func(mt *mtest.T) {
		repo := NewNoteRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "notes.notes", mtest.FirstBatch,
			noteDoc("n-2", "u-1", updated),
			noteDoc("n-1", "u-1", updated.Add(-time.Hour)),
		))

		notes, err := repo.ListByOwner(context.Background(), "u-1")
		require.NoError(mt, err)
		require.Len(mt, notes, 2)
		assert.Equal(mt, "n-2", notes[0].ID)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repo := NewNoteRepository(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "notes.notes", mtest.FirstBatch))

		notes, err := repo.ListByOwner(context.Background(), "u-9")
		require.NoError(mt, err)
		assert.NotNil(mt, notes)
		assert.Empty(mt, notes)
	})
}
