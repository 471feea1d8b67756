package storage

import (
	"context"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/guttosm/exdivpulse/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*snapshotsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &snapshotsRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

var (
	exDay = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	runID = uuid.MustParse("0d6f4a8e-3b57-4f0e-9a2c-51f5c1a7a001")
)

func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }

func TestHasSnapshotForDate_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM snapshot_log WHERE ex_date = $1)")).
		WithArgs(exDay).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasSnapshotForDate(context.Background(), exDay)
	if err != nil || !ok {
		t.Fatalf("HasSnapshotForDate: ok=%v err=%v", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasSnapshotForDate_Error(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery("SELECT EXISTS").WithArgs(exDay).WillReturnError(dummyErr{})
	ok, err := repo.HasSnapshotForDate(context.Background(), exDay)
	if err == nil || ok {
		t.Fatalf("want error, got ok=%v err=%v", ok, err)
	}
}

func TestNewSnapshotsRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewSnapshotsRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

const (
	setLocalSQL = "SET LOCAL synchronous_commit = OFF"
	deleteSQL   = "DELETE FROM ex_dividend_snapshots WHERE ex_date = $1"
	logSQL      = "INSERT INTO snapshot_log (ex_date, run_id, row_count) VALUES ($1, $2, $3) ON CONFLICT (ex_date)"
)

func sampleEvents() []models.DividendEvent {
	return []models.DividendEvent{{
		Ticker:         "MAIN",
		Name:           sp("Main Street Capital"),
		ExDividendDate: "2026-10-20",
		PerShare:       fp(0.25),
		ComputedReturn: fp(0.0048),
		PaymentDate:    sp("2026-11-14"),
	}}
}

// expectCopy registers one COPY of a single row. pq.CopyIn is driver
// specific; sqlmock only sees a prepared statement executed once per row and
// once more to flush.
func expectCopy(mock sqlmock.Sqlmock) {
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestArchiveDate_SQLMock(t *testing.T) {
	cases := []struct {
		name    string
		events  []models.DividendEvent
		replace bool
		expect  func(mock sqlmock.Sqlmock)
	}{
		{
			name:   "insert and log",
			events: sampleEvents(),
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				expectCopy(mock)
				mock.ExpectExec(regexp.QuoteMeta(logSQL)).
					WithArgs(exDay, runID.String(), 1).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:    "replace deletes inside the transaction",
			events:  sampleEvents(),
			replace: true,
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(deleteSQL)).WithArgs(exDay).WillReturnResult(sqlmock.NewResult(0, 3))
				expectCopy(mock)
				mock.ExpectExec(regexp.QuoteMeta(logSQL)).
					WithArgs(exDay, runID.String(), 1).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "empty date only logs",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(logSQL)).
					WithArgs(exDay, runID.String(), 0).WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.expect(mock)

			if err := repo.ArchiveDate(context.Background(), runID, exDay, tc.events, tc.replace); err != nil {
				t.Fatalf("ArchiveDate: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestArchiveDate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
	}{
		{
			name: "begin",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dummyErr{})
			},
		},
		{
			name: "delete",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(deleteSQL)).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			// The delete is rolled back with the failed copy, so the old
			// rows and their log entry survive.
			name: "row exec after delete",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(deleteSQL)).WithArgs(exDay).WillReturnResult(sqlmock.NewResult(0, 3))
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "final exec",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(deleteSQL)).WithArgs(exDay).WillReturnResult(sqlmock.NewResult(0, 3))
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(".*").WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "snapshot log",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(setLocalSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(regexp.QuoteMeta(deleteSQL)).WithArgs(exDay).WillReturnResult(sqlmock.NewResult(0, 3))
				expectCopy(mock)
				mock.ExpectExec(regexp.QuoteMeta(logSQL)).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.expect(mock)

			err := repo.ArchiveDate(context.Background(), runID, exDay, sampleEvents(), true)
			if err == nil {
				t.Fatalf("expected error on %s", tc.name)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestNullMapping(t *testing.T) {
	if nullString(nil) != nil || nullString(sp("")) != nil || nullString(sp("USD")) != "USD" {
		t.Fatal("nullString")
	}
	if nullFloat(nil) != nil || nullFloat(fp(math.NaN())) != nil || nullFloat(fp(math.Inf(1))) != nil {
		t.Fatal("nullFloat must drop missing and non-finite values")
	}
	if nullFloat(fp(1.5)) != 1.5 {
		t.Fatal("nullFloat value")
	}
	n := 12
	if nullInt(nil) != nil || nullInt(&n) != int64(12) {
		t.Fatal("nullInt")
	}
	if nullDate(nil) != nil || nullDate(sp("soon")) != nil {
		t.Fatal("nullDate must drop malformed dates")
	}
	got, ok := nullDate(sp("2026-11-14")).(time.Time)
	if !ok || !got.Equal(time.Date(2026, 11, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("nullDate=%v", got)
	}
}
