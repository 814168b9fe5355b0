package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"table-counts-service/internal/metrics/core/domain"
	"table-counts-service/internal/metrics/core/ports"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidCountsQuery = errors.New("namespace is required")
	ErrNoTablesSelected   = errors.New("at least one table must be selected")
)

type GetCountsInput struct {
	Namespace  string
	Tables     []string
	WindowDays int // 0 means domain.DefaultWindowDays
}

type GetCountsUseCase struct {
	reader      ports.CountsReaderPort
	maxParallel int
}

type GetCountsOption func(*GetCountsUseCase)

// WithMaxParallel bounds how many per-table queries run at once. 1 (the
// default) runs them strictly in selection order.
func WithMaxParallel(n int) GetCountsOption {
	return func(uc *GetCountsUseCase) {
		if n > 0 {
			uc.maxParallel = n
		}
	}
}

func NewGetCountsUseCase(reader ports.CountsReaderPort, opts ...GetCountsOption) *GetCountsUseCase {
	uc := &GetCountsUseCase{reader: reader, maxParallel: 1}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs one grouped-count query per table and concatenates the results
// in selection order. The first failing table aborts the whole batch.
func (uc *GetCountsUseCase) Execute(ctx context.Context, in GetCountsInput) ([]domain.CountRecord, error) {
	namespace := strings.TrimSpace(in.Namespace)
	if namespace == "" {
		return nil, ErrInvalidCountsQuery
	}

	tables := normalizeTables(in.Tables)
	if len(tables) == 0 {
		return nil, ErrNoTablesSelected
	}

	window := domain.Window{Days: in.WindowDays}
	if window.Days == 0 {
		window = domain.DefaultWindow()
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	perTable := make([][]domain.CountRecord, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.maxParallel)

	for i, table := range tables {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			records, err := uc.reader.CountsByDate(gctx, ports.CountsFilter{
				Namespace: namespace,
				Table:     table,
				Window:    window,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to count rows",
					goerr.V("namespace", namespace),
					goerr.V("table", table),
				)
			}

			for j := range records {
				records[j].Table = table
			}
			perTable[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.CountRecord
	for _, records := range perTable {
		out = append(out, records...)
	}

	ctxlog.From(ctx).Debug("counts collected",
		slog.String("namespace", namespace),
		slog.Int("tables", len(tables)),
		slog.Int("records", len(out)),
		slog.Int("window_days", window.Days),
	)

	return out, nil
}

// normalizeTables trims names, drops blanks and keeps the first occurrence of
// each name.
func normalizeTables(tables []string) []string {
	out := make([]string, 0, len(tables))
	seen := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
