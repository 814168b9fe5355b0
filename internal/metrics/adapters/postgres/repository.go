package postgres

import (
	"context"
	"fmt"
	"time"

	"table-counts-service/internal/metrics/core/domain"
	"table-counts-service/internal/metrics/core/ports"

	"github.com/lib/pq"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

const DefaultDateColumn = "event_date"

type CountsRepository struct {
	db         DB
	dateColumn string
}

func NewCountsRepository(db DB, dateColumn string) *CountsRepository {
	if dateColumn == "" {
		dateColumn = DefaultDateColumn
	}
	return &CountsRepository{db: db, dateColumn: dateColumn}
}

var _ ports.CountsReaderPort = (*CountsRepository)(nil)

// CURRENT_DATE is evaluated by the server, per statement.
const countsByDateSQL = `
SELECT
    CAST(%[3]s AS DATE) AS day,
    COUNT(*) AS record_count
FROM %[1]s.%[2]s
WHERE CAST(%[3]s AS DATE) BETWEEN CURRENT_DATE - $1::int AND CURRENT_DATE
GROUP BY 1
ORDER BY 1
`

func (r *CountsRepository) CountsByDate(ctx context.Context, f ports.CountsFilter) ([]domain.CountRecord, error) {
	if err := f.Window.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(countsByDateSQL,
		pq.QuoteIdentifier(f.Namespace),
		pq.QuoteIdentifier(f.Table),
		pq.QuoteIdentifier(r.dateColumn),
	)

	rows, err := r.db.QueryContext(ctx, query, f.Window.Days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.CountRecord
	for rows.Next() {
		var day time.Time
		var count int64

		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}

		records = append(records, domain.CountRecord{
			Table: f.Table,
			Date:  domain.DateOf(day),
			Count: count,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
