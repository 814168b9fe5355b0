package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"table-counts-service/internal/metrics/core/domain"
	"table-counts-service/internal/metrics/core/ports"
)

// fakeRowScanner implements RowScanner for tests.
type fakeRowScanner struct {
	rows []fakeRow
	i    int
	err  error
}

type fakeRow struct {
	values []any
}

func (f *fakeRowScanner) Next() bool {
	return f.i < len(f.rows)
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	if f.i >= len(f.rows) {
		return errors.New("no more rows")
	}
	row := f.rows[f.i]
	if len(dest) != len(row.values) {
		return errors.New("dest length mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *int64:
			v, ok := row.values[i].(int64)
			if !ok {
				return errors.New("type assertion to int64 failed")
			}
			*d = v
		case *time.Time:
			v, ok := row.values[i].(time.Time)
			if !ok {
				return errors.New("type assertion to time.Time failed")
			}
			*d = v
		default:
			return errors.New("unsupported dest type")
		}
	}
	f.i++
	return nil
}

func (f *fakeRowScanner) Err() error {
	return f.err
}

func (f *fakeRowScanner) Close() error {
	return nil
}

// fakeDB implements DB interface.
type fakeDB struct {
	QueryFn   func(ctx context.Context, query string, args ...any) (RowScanner, error)
	lastQuery string
	lastArgs  []any
	called    bool
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.called = true
	f.lastQuery = query
	f.lastArgs = args
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return &fakeRowScanner{}, nil
}

func filter() ports.CountsFilter {
	return ports.CountsFilter{
		Namespace: "sales",
		Table:     "orders",
		Window:    domain.DefaultWindow(),
	}
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestCountsRepository_CountsByDate(t *testing.T) {
	d1 := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{d1, int64(2)}},
					{values: []any{d2, int64(3)}},
				},
			}, nil
		},
	}

	repo := NewCountsRepository(db, "")

	records, err := repo.CountsByDate(context.Background(), filter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Table != "orders" || !records[0].Date.Equal(d1) || records[0].Count != 2 {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if !records[1].Date.Equal(d2) || records[1].Count != 3 {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestCountsRepository_QueryShape(t *testing.T) {
	db := &fakeDB{}
	repo := NewCountsRepository(db, "created_at")

	f := filter()
	f.Table = `we"ird`
	if _, err := repo.CountsByDate(context.Background(), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		`FROM "sales"."we""ird"`,
		`CAST("created_at" AS DATE) BETWEEN CURRENT_DATE - $1::int AND CURRENT_DATE`,
		"GROUP BY 1",
		"ORDER BY 1",
	} {
		if !strings.Contains(db.lastQuery, want) {
			t.Fatalf("expected %q in query, got: %s", want, db.lastQuery)
		}
	}
	if len(db.lastArgs) != 1 || db.lastArgs[0] != 5 {
		t.Fatalf("expected window days as only arg, got %v", db.lastArgs)
	}
}

// ------------------------------------------------------------
// NO ROWS IN WINDOW
// ------------------------------------------------------------

func TestCountsRepository_NoRows(t *testing.T) {
	repo := NewCountsRepository(&fakeDB{}, "")

	records, err := repo.CountsByDate(context.Background(), filter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

// ------------------------------------------------------------
// INVALID WINDOW
// ------------------------------------------------------------

func TestCountsRepository_InvalidWindow(t *testing.T) {
	db := &fakeDB{}
	repo := NewCountsRepository(db, "")

	f := filter()
	f.Window = domain.Window{Days: 0}
	if _, err := repo.CountsByDate(context.Background(), f); !errors.Is(err, domain.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
	if db.called {
		t.Fatalf("query must not run for an invalid window")
	}
}

// ------------------------------------------------------------
// DB ERROR
// ------------------------------------------------------------

func TestCountsRepository_DBError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return nil, errors.New("db failure")
		},
	}

	repo := NewCountsRepository(db, "")

	res, err := repo.CountsByDate(context.Background(), filter())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err.Error() != "db failure" {
		t.Fatalf("expected db failure, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result on error")
	}
}
