package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guttosm/exdivpulse/config"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// pingTimeout bounds the connectivity check.
const pingTimeout = 5 * time.Second

// InitPostgres opens the archive database and pings it.
//
// Example usage:
//
//	db, err := app.InitPostgres(cfg.Postgres)
//	if err != nil {
//	    logger.L().Fatal().Err(err).Msg("db connect error")
//	}
//	defer db.Close()
func InitPostgres(cfg config.PostgresConfig) (*sql.DB, error) {
	dsn := cfg.URL
	if dsn == "" {
		dsn = cfg.DSN()
	}

	db, err := sqlOpener("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}
