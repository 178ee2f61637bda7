package main

import (
	"context"
	"fmt"

	"github.com/mdnotes/notes-api/internal/core/ports"
	"github.com/mdnotes/notes-api/internal/infrastructure/db/memory"
	mongostore "github.com/mdnotes/notes-api/internal/infrastructure/db/mongo"
	"github.com/mdnotes/notes-api/internal/infrastructure/db/postgres"
	"github.com/mdnotes/notes-api/internal/pkg/config"
)

// store bundles the repositories of the selected driver with its lifecycle hooks.
type store struct {
	users ports.UserRepository
	notes ports.NoteRepository
	ping  func(ctx context.Context) error
	close func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	timeout := cfg.Store.Timeout

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN, Timeout: timeout})
		if err != nil {
			return nil, err
		}
		if err := postgres.MigrateUp(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &store{
			users: postgres.NewUserRepository(db, timeout),
			notes: postgres.NewNoteRepository(db, timeout),
			ping:  db.PingContext,
			close: func() { _ = db.Close() },
		}, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &store{
			users: mongostore.NewUserRepository(db, timeout),
			notes: mongostore.NewNoteRepository(db, timeout),
			ping:  func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverMemory:
		notes := memory.NewNoteRepository()
		return &store{
			users: memory.NewUserRepository(),
			notes: notes,
			ping:  notes.Ping,
			close: func() {},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
