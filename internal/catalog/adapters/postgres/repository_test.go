package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"table-counts-service/internal/catalog/core/domain"
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
		case *string:
			v, ok := row.values[i].(string)
			if !ok {
				return errors.New("type assertion to string failed")
			}
			*d = v
		case *bool:
			v, ok := row.values[i].(bool)
			if !ok {
				return errors.New("type assertion to bool failed")
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

// fakeDB routes the schema check and the table listing to separate hooks.
type fakeDB struct {
	ExistsFn func(namespace string) (RowScanner, error)
	ListFn   func(namespace string) (RowScanner, error)
	queries  []string
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.queries = append(f.queries, query)
	namespace, _ := args[0].(string)
	if strings.Contains(query, "information_schema.schemata") {
		if f.ExistsFn != nil {
			return f.ExistsFn(namespace)
		}
		return &fakeRowScanner{rows: []fakeRow{{values: []any{true}}}}, nil
	}
	if f.ListFn != nil {
		return f.ListFn(namespace)
	}
	return &fakeRowScanner{}, nil
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestCatalogRepository_ListTables(t *testing.T) {
	db := &fakeDB{
		ListFn: func(namespace string) (RowScanner, error) {
			if namespace != "sales" {
				t.Fatalf("expected namespace=sales, got %s", namespace)
			}
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{"customers"}},
					{values: []any{"orders"}},
				},
			}, nil
		},
	}

	repo := NewCatalogRepository(db)

	tables, err := repo.ListTables(context.Background(), "sales")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables) != 2 || tables[0] != "customers" || tables[1] != "orders" {
		t.Fatalf("unexpected tables: %v", tables)
	}
	if len(db.queries) != 2 {
		t.Fatalf("expected 2 queries, got %d", len(db.queries))
	}
	if !strings.Contains(db.queries[1], "information_schema.tables") {
		t.Fatalf("unexpected list query: %s", db.queries[1])
	}
}

// ------------------------------------------------------------
// EMPTY SCHEMA
// ------------------------------------------------------------

func TestCatalogRepository_EmptySchema(t *testing.T) {
	db := &fakeDB{}
	repo := NewCatalogRepository(db)

	tables, err := repo.ListTables(context.Background(), "empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tables == nil || len(tables) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", tables)
	}
}

// ------------------------------------------------------------
// UNKNOWN SCHEMA
// ------------------------------------------------------------

func TestCatalogRepository_UnknownSchema(t *testing.T) {
	db := &fakeDB{
		ExistsFn: func(namespace string) (RowScanner, error) {
			return &fakeRowScanner{rows: []fakeRow{{values: []any{false}}}}, nil
		},
		ListFn: func(namespace string) (RowScanner, error) {
			t.Fatalf("tables must not be listed for an unknown schema")
			return nil, nil
		},
	}

	repo := NewCatalogRepository(db)

	tables, err := repo.ListTables(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNamespaceNotFound) {
		t.Fatalf("expected ErrNamespaceNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected namespace in error, got %v", err)
	}
	if tables != nil {
		t.Fatalf("expected nil tables on error")
	}
}

// ------------------------------------------------------------
// DB ERROR
// ------------------------------------------------------------

func TestCatalogRepository_DBError(t *testing.T) {
	db := &fakeDB{
		ExistsFn: func(namespace string) (RowScanner, error) {
			return nil, errors.New("pq: permission denied for schema sales")
		},
	}

	repo := NewCatalogRepository(db)

	_, err := repo.ListTables(context.Background(), "sales")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err.Error() != "pq: permission denied for schema sales" {
		t.Fatalf("expected engine error, got %v", err)
	}
}

func TestCatalogRepository_RowsError(t *testing.T) {
	db := &fakeDB{
		ListFn: func(namespace string) (RowScanner, error) {
			return &fakeRowScanner{err: errors.New("connection reset")}, nil
		},
	}

	repo := NewCatalogRepository(db)

	if _, err := repo.ListTables(context.Background(), "sales"); err == nil {
		t.Fatalf("expected rows error, got nil")
	}
}
