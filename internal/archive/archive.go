// Package archive stores the raw upstream events for each date of the
// five-day window so that past windows can be inspected later.
package archive

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/exdivpulse/internal/calendar"
	"github.com/guttosm/exdivpulse/internal/domain/models"
	"github.com/guttosm/exdivpulse/internal/logger"
	"github.com/guttosm/exdivpulse/internal/storage"
	"github.com/guttosm/exdivpulse/internal/upstream"
)

// Options controls one archive run.
type Options struct {
	Days         int
	IncludeToday bool
	// Parallel caps concurrent dates; 0 means min(window size, NumCPU).
	Parallel int
	// Force re-archives dates already present, replacing their rows.
	Force bool
}

// Result summarises a run.
type Result struct {
	RunID    uuid.UUID
	Archived int
	Skipped  int
	Rows     int
}

// Run fetches the upstream payload once and archives the events of every
// window date. Dates already in snapshot_log are skipped unless Force is set,
// in which case their rows are replaced atomically.
// The first failing date cancels the others and its error is returned.
func Run(ctx context.Context, fetcher upstream.Fetcher, repo storage.SnapshotsRepository, window []calendar.Tile, opts Options) (Result, error) {
	res := Result{RunID: uuid.New()}
	log := logger.Component("archive").With().Str("run_id", res.RunID.String()).Logger()

	if opts.Days < 1 {
		opts.Days = 14
	}
	data, err := fetcher.FetchUpcomingEx(ctx, opts.Days, opts.IncludeToday)
	if err != nil {
		return res, fmt.Errorf("fetch upcoming ex-dividends: %w", err)
	}
	if data == nil {
		data = &models.UpcomingResponse{}
	}
	byDate := data.ByDate()

	parallel := parallelism(opts.Parallel, len(window))
	log.Info().Int("dates", len(window)).Int("max_parallel", parallel).Bool("force", opts.Force).Msg("archive start")

	var archived, skipped, rows atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, tile := range window {
		g.Go(func() error {
			start := time.Now()
			day := tile.Date.Time()
			iso := tile.Date.ISO()
			dlog := log.With().Int("idx", i+1).Int("total", len(window)).Str("ex_date", iso).Logger()

			exists, err := repo.HasSnapshotForDate(gctx, day)
			if err != nil {
				dlog.Error().Err(err).Msg("check snapshot log failed")
				return fmt.Errorf("date %s: check snapshot log: %w", iso, err)
			}
			if exists && !opts.Force {
				skipped.Add(1)
				dlog.Info().Bool("skipped", true).Msg("already archived")
				return nil
			}

			events := byDate[iso]
			if err := repo.ArchiveDate(gctx, res.RunID, day, events, exists); err != nil {
				dlog.Error().Err(err).Bool("replace", exists).Dur("elapsed", time.Since(start)).Msg("archive date failed")
				return fmt.Errorf("date %s: archive: %w", iso, err)
			}

			archived.Add(1)
			rows.Add(int64(len(events)))
			dlog.Info().Int("rows", len(events)).Dur("elapsed", time.Since(start)).Msg("date archived")
			return nil
		})
	}

	err = g.Wait()
	res.Archived, res.Skipped, res.Rows = int(archived.Load()), int(skipped.Load()), int(rows.Load())
	if err != nil {
		return res, err
	}

	log.Info().Int("archived", res.Archived).Int("skipped", res.Skipped).Int("rows", res.Rows).Msg("archive done")
	return res, nil
}

// parallelism clamps requested to [1, dates]; 0 picks min(dates, NumCPU).
func parallelism(requested, dates int) int {
	if dates < 1 {
		return 1
	}
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	return max(1, min(requested, dates))
}
