package app

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/exdivpulse/config"
	"github.com/guttosm/exdivpulse/internal/archive"
	"github.com/guttosm/exdivpulse/internal/storage"
)

// postgresOpener is an indirection used by RunArchive; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres

// RunArchive connects to PostgreSQL and archives the window resolved at now.
func RunArchive(ctx context.Context, cfg *config.Config, now time.Time, parallel int, force bool) (archive.Result, error) {
	resolver, err := NewResolver(cfg.Market)
	if err != nil {
		return archive.Result{}, fmt.Errorf("failed to initialize calendar: %w", err)
	}

	db, err := postgresOpener(cfg.Postgres)
	if err != nil {
		return archive.Result{}, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer func() { _ = db.Close() }()

	client := NewUpstreamClient(cfg.Upstream)
	defer client.CloseIdleConnections()

	return archive.Run(ctx, client, storage.NewSnapshotsRepository(db), resolver.Window(now), archive.Options{
		Days:         cfg.Upstream.Days,
		IncludeToday: cfg.Upstream.IncludeToday,
		Parallel:     parallel,
		Force:        force,
	})
}
