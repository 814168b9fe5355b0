package sqlite

import (
	"context"
	"fmt"

	"table-counts-service/internal/engine"
	"table-counts-service/internal/metrics/core/domain"
	"table-counts-service/internal/metrics/core/ports"

	"github.com/m-mizutani/goerr/v2"
)

// Querier is the part of *sqlx.DB the repository needs.
type Querier interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

const DefaultDateColumn = "event_date"

type CountsRepository struct {
	db         Querier
	dateColumn string
}

func NewCountsRepository(db Querier, dateColumn string) *CountsRepository {
	if dateColumn == "" {
		dateColumn = DefaultDateColumn
	}
	return &CountsRepository{db: db, dateColumn: dateColumn}
}

var _ ports.CountsReaderPort = (*CountsRepository)(nil)

// date('now') is UTC and evaluated per statement.
const countsByDateSQL = `
SELECT
    date(%[3]s) AS day,
    COUNT(*) AS record_count
FROM %[1]s.%[2]s
WHERE date(%[3]s) BETWEEN date('now', ?) AND date('now')
GROUP BY 1
ORDER BY 1
`

type countRow struct {
	Day   string `db:"day"`
	Count int64  `db:"record_count"`
}

func (r *CountsRepository) CountsByDate(ctx context.Context, f ports.CountsFilter) ([]domain.CountRecord, error) {
	if err := f.Window.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(countsByDateSQL,
		engine.QuoteSQLite(f.Namespace),
		engine.QuoteSQLite(f.Table),
		engine.QuoteSQLite(r.dateColumn),
	)

	var rows []countRow
	if err := r.db.SelectContext(ctx, &rows, query, fmt.Sprintf("-%d days", f.Window.Days)); err != nil {
		return nil, err
	}

	records := make([]domain.CountRecord, 0, len(rows))
	for _, row := range rows {
		day, err := domain.ParseDate(row.Day)
		if err != nil {
			return nil, goerr.Wrap(err, "unexpected date from engine", goerr.V("day", row.Day))
		}
		records = append(records, domain.CountRecord{
			Table: f.Table,
			Date:  day,
			Count: row.Count,
		})
	}

	return records, nil
}
