package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/guttosm/exdivpulse/internal/calendar"
	"github.com/guttosm/exdivpulse/internal/domain/models"
	"github.com/guttosm/exdivpulse/internal/format"
)

// SnapshotsRepository persists raw upstream events per ex-dividend date.
// Derived tiles and statistics are never stored.
type SnapshotsRepository interface {
	HasSnapshotForDate(ctx context.Context, exDate time.Time) (bool, error)
	ArchiveDate(ctx context.Context, runID uuid.UUID, exDate time.Time, events []models.DividendEvent, replace bool) error
}

type snapshotsRepository struct {
	db *sql.DB
}

func NewSnapshotsRepository(db *sql.DB) SnapshotsRepository {
	return &snapshotsRepository{db: db}
}

// HasSnapshotForDate reports whether snapshot_log already has exDate.
func (r *snapshotsRepository) HasSnapshotForDate(ctx context.Context, exDate time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM snapshot_log WHERE ex_date = $1)`, exDate).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ArchiveDate stores the events of one ex-date and its snapshot_log entry in
// a single transaction. With replace, rows already archived for exDate are
// deleted first; a failure anywhere leaves the previous archive untouched.
func (r *snapshotsRepository) ArchiveDate(ctx context.Context, runID uuid.UUID, exDate time.Time, events []models.DividendEvent, replace bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	rollback := func(err error) error {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		return rollback(err)
	}

	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ex_dividend_snapshots WHERE ex_date = $1`, exDate); err != nil {
			return rollback(err)
		}
	}

	if len(events) > 0 {
		if err := copyEvents(ctx, tx, runID, exDate, events); err != nil {
			return rollback(err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_log (ex_date, run_id, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (ex_date)
		DO UPDATE SET run_id = EXCLUDED.run_id,
					  row_count = EXCLUDED.row_count,
					  archived_at = NOW()
	`, exDate, runID.String(), len(events)); err != nil {
		return rollback(err)
	}

	return tx.Commit()
}

// copyEvents streams events into ex_dividend_snapshots with COPY.
func copyEvents(ctx context.Context, tx *sql.Tx, runID uuid.UUID, exDate time.Time, events []models.DividendEvent) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"ex_dividend_snapshots",
		"run_id",
		"ex_date",
		"ticker",
		"name",
		"per_share",
		"currency",
		"frequency",
		"payment_date",
		"logo_url",
		"current_price_per_share",
		"computed_return",
	))
	if err != nil {
		return err
	}

	run := runID.String()
	for _, ev := range events {
		logo := ev.Logo()
		if _, err := stmt.ExecContext(ctx,
			run,
			exDate,
			ev.Ticker,
			nullString(ev.Name),
			nullFloat(ev.PerShare),
			nullString(ev.Currency),
			nullInt(ev.Frequency),
			nullDate(ev.PaymentDate),
			nullString(&logo),
			nullFloat(ev.CurrentPricePerShare),
			nullFloat(ev.ComputedReturn),
		); err != nil {
			_ = stmt.Close()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return err
	}
	return stmt.Close()
}

// NULL mapping for optional upstream fields.

func nullString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullFloat(v *float64) any {
	if !format.IsFinite(v) {
		return nil
	}
	return *v
}

func nullInt(n *int) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}

func nullDate(s *string) any {
	if s == nil {
		return nil
	}
	d, err := calendar.ParseMarketDate(*s)
	if err != nil {
		return nil
	}
	return d.Time()
}
