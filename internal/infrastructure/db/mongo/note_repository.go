package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mdnotes/notes-api/internal/core/domain"
)

const notesCollection = "notes"

type NoteRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewNoteRepository(db *mongo.Database, timeout time.Duration) *NoteRepository {
	return &NoteRepository{coll: db.Collection(notesCollection), timeout: timeout}
}

type mongoNote struct {
	ID        string `bson:"_id"`
	UserID    string `bson:"user_id"`
	Title     string `bson:"title"`
	Content   string `bson:"content"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func toMongoNote(n *domain.Note) mongoNote {
	return mongoNote{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: toMicros(n.CreatedAt),
		UpdatedAt: toMicros(n.UpdatedAt),
	}
}

func (m mongoNote) toDomain() *domain.Note {
	return &domain.Note{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Content:   m.Content,
		CreatedAt: fromMicros(m.CreatedAt),
		UpdatedAt: fromMicros(m.UpdatedAt),
	}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := toMongoNote(note)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc mongoNote
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return doc.toDomain(), nil
}

// Update sets title, content and updated_at; the owner is never written.
func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":      note.Title,
		"content":    note.Content,
		"updated_at": toMicros(note.UpdatedAt),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoNote
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": note.ID}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoNote
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]*domain.Note, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, d.toDomain())
	}
	return notes, nil
}
