package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type sqlDB struct {
	db *sqlx.DB
}

func NewSQLDB(db *sqlx.DB) DB {
	return &sqlDB{db: db}
}

func (s *sqlDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
