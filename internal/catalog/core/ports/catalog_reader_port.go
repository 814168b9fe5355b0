package ports

import "context"

type CatalogReaderPort interface {
	// ListTables:
	//   tables = [...], err = nil  -> namespace has tables
	//   tables = [],    err = nil  -> namespace exists but is empty
	//   tables = nil,   err != nil -> engine error (unknown namespace, permission, connection)
	ListTables(ctx context.Context, namespace string) ([]string, error)
}
