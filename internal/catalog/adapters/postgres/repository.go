package postgres

import (
	"context"
	"fmt"

	"table-counts-service/internal/catalog/core/domain"
	"table-counts-service/internal/catalog/core/ports"
)

type CatalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ ports.CatalogReaderPort = (*CatalogRepository)(nil)

// information_schema answers an unknown schema with zero rows, so existence is
// checked separately.
const schemaExistsSQL = `
SELECT EXISTS (
    SELECT 1
    FROM information_schema.schemata
    WHERE schema_name = $1
)`

const listTablesSQL = `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = $1
  AND table_type IN ('BASE TABLE', 'VIEW')
ORDER BY table_name`

func (r *CatalogRepository) ListTables(ctx context.Context, namespace string) ([]string, error) {
	exists, err := r.schemaExists(ctx, namespace)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrNamespaceNotFound, namespace)
	}

	rows, err := r.db.QueryContext(ctx, listTablesSQL, namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}

func (r *CatalogRepository) schemaExists(ctx context.Context, namespace string) (bool, error) {
	rows, err := r.db.QueryContext(ctx, schemaExistsSQL, namespace)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var exists bool
	if rows.Next() {
		if err := rows.Scan(&exists); err != nil {
			return false, err
		}
	}

	if err := rows.Err(); err != nil {
		return false, err
	}

	return exists, nil
}
