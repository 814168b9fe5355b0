package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"table-counts-service/internal/catalog/core/domain"
	"table-counts-service/internal/catalog/core/ports"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

var ErrInvalidNamespace = errors.New("namespace is required")

type ListTablesInput struct {
	Namespace string
}

type ListTablesUseCase struct {
	reader ports.CatalogReaderPort
}

func NewListTablesUseCase(reader ports.CatalogReaderPort) *ListTablesUseCase {
	return &ListTablesUseCase{reader: reader}
}

// Execute validates the namespace and asks the engine for its tables. An empty
// catalog is a valid result.
func (uc *ListTablesUseCase) Execute(ctx context.Context, in ListTablesInput) (*domain.Catalog, error) {
	namespace := strings.TrimSpace(in.Namespace)
	if namespace == "" {
		return nil, ErrInvalidNamespace
	}

	tables, err := uc.reader.ListTables(ctx, namespace)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tables", goerr.V("namespace", namespace))
	}
	if tables == nil {
		tables = []string{}
	}

	ctxlog.From(ctx).Debug("tables listed",
		slog.String("namespace", namespace),
		slog.Int("count", len(tables)),
	)

	return &domain.Catalog{Namespace: namespace, Tables: tables}, nil
}
