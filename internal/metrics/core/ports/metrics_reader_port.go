package ports

import (
	"context"

	"table-counts-service/internal/metrics/core/domain"
)

type CountsFilter struct {
	Namespace string
	Table     string
	Window    domain.Window
}

type CountsReaderPort interface {
	// CountsByDate returns one record per date with at least one row in the
	// window, ascending by date. The engine evaluates "today" when the query runs.
	CountsByDate(ctx context.Context, f CountsFilter) ([]domain.CountRecord, error)
}
