//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mdnotes/notes-api/internal/core/domain"
	"github.com/mdnotes/notes-api/internal/infrastructure/db/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "notes_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/notes_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	var db *sql.DB
	var err error
	// The port can accept connections before the server finishes booting.
	for i := 0; i < 20; i++ {
		db, err = postgres.Connect(ctx, postgres.Config{DSN: dsn})
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.MigrateUp(ctx, db))
	return db
}

func TestStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := connect(t)
	users := postgres.NewUserRepository(db, 5*time.Second)
	notes := postgres.NewNoteRepository(db, 5*time.Second)

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &domain.User{ID: uuid.NewString(), Email: "int@example.com", PasswordHash: "hash", CreatedAt: now}

	_, err := users.Create(ctx, user)
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{ID: uuid.NewString(), Email: "int@example.com", PasswordHash: "x", CreatedAt: now})
	require.ErrorIs(t, err, domain.ErrUserExists)

	found, err := users.FindByEmail(ctx, "int@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	note := &domain.Note{ID: uuid.NewString(), UserID: user.ID, Title: "T", Content: "# H", CreatedAt: now, UpdatedAt: now}
	_, err = notes.Create(ctx, note)
	require.NoError(t, err)

	got, err := notes.FindByID(ctx, note.ID)
	require.NoError(t, err)
	require.True(t, got.CreatedAt.Equal(got.UpdatedAt))

	note.Title = "T2"
	note.UpdatedAt = now.Add(time.Second)
	updated, err := notes.Update(ctx, note)
	require.NoError(t, err)
	require.Equal(t, "T2", updated.Title)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	list, err := notes.ListByOwner(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	removed, err := notes.Delete(ctx, note.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = notes.Delete(ctx, note.ID)
	require.NoError(t, err)
	require.False(t, removed)

	_, err = notes.FindByID(ctx, note.ID)
	require.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestMigrateDown(t *testing.T) {
	ctx := context.Background()
	db := connect(t)

	require.NoError(t, postgres.MigrateDown(ctx, db))
	require.NoError(t, postgres.MigrateUp(ctx, db))
}
