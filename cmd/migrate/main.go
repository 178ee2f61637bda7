// Command migrate applies or rolls back the PostgreSQL schema.
//
//	migrate up     apply all pending migrations
//	migrate down   roll back the most recent migration
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mdnotes/notes-api/internal/infrastructure/db/postgres"
	"github.com/mdnotes/notes-api/internal/pkg/config"
	"github.com/mdnotes/notes-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.Production(), Service: "notes-migrate"})

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN, Timeout: cfg.Store.Timeout})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	switch direction {
	case "up":
		err = postgres.MigrateUp(ctx, db)
	case "down":
		err = postgres.MigrateDown(ctx, db)
	default:
		log.Fatal().Str("direction", direction).Msg("usage: migrate [up|down]")
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("migration failed")
	}
	log.Info().Str("direction", direction).Msg("migrations applied")
}
