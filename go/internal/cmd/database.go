package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/go/internal/dbconfig"
)

// setupDatabase migrates the schema and opens the pgx pool. The DSN is
// also returned, the outbox listener needs its own lib/pq connection for
// LISTEN/NOTIFY.
func setupDatabase(ctx context.Context) (*pgxpool.Pool, string, error) {
	cfg := dbconfig.NewConfigFromEnv()

	if err := dbconfig.RunMigrations(cfg.DSN()); err != nil {
		return nil, "", fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := dbconfig.NewPool(ctx, cfg)
	if err != nil {
		return nil, "", err
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("connected to database")
	return pool, cfg.DSN(), nil
}
