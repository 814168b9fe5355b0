package sqlite

import (
	"context"
	"fmt"

	"table-counts-service/internal/catalog/core/ports"
	"table-counts-service/internal/engine"
)

// Querier is the part of *sqlx.DB the repository needs.
type Querier interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// CatalogRepository lists tables of a SQLite schema ("main", "temp" or an
// attached database). An unknown schema fails inside the engine.
type CatalogRepository struct {
	db Querier
}

func NewCatalogRepository(db Querier) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ ports.CatalogReaderPort = (*CatalogRepository)(nil)

// Only the literal, lowercase "sqlite_" prefix is reserved for internal
// tables. LIKE would treat "_" as a wildcard and ignore case.
const listTablesSQL = `
SELECT name
FROM %s.sqlite_master
WHERE type IN ('table', 'view')
  AND substr(name, 1, 7) <> 'sqlite_'
ORDER BY name`

func (r *CatalogRepository) ListTables(ctx context.Context, namespace string) ([]string, error) {
	query := fmt.Sprintf(listTablesSQL, engine.QuoteSQLite(namespace))

	tables := []string{}
	if err := r.db.SelectContext(ctx, &tables, query); err != nil {
		return nil, err
	}

	return tables, nil
}
