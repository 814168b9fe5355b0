package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	catalogDomain "table-counts-service/internal/catalog/core/domain"
	catalogUsecase "table-counts-service/internal/catalog/core/usecase"
	"table-counts-service/internal/metrics/core/domain"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
)

var ErrUnknownTable = errors.New("table not found in namespace")

type TableLister interface {
	Execute(ctx context.Context, in catalogUsecase.ListTablesInput) (*catalogDomain.Catalog, error)
}

type CountsFetcher interface {
	Execute(ctx context.Context, in GetCountsInput) ([]domain.CountRecord, error)
}

type DashboardConfig struct {
	DefaultNamespace string // used when no namespace is supplied at all
	WindowDays       int
	FillWindow       bool // add all-zero rows for window days without data
	Now              func() time.Time
}

type SelectionInput struct {
	Namespace *string // nil: not supplied
	Selected  []string
}

type DashboardUseCase struct {
	tables TableLister
	counts CountsFetcher
	cfg    DashboardConfig
}

func NewDashboardUseCase(tables TableLister, counts CountsFetcher, cfg DashboardConfig) *DashboardUseCase {
	if cfg.WindowDays == 0 {
		cfg.WindowDays = domain.DefaultWindowDays
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &DashboardUseCase{tables: tables, counts: counts, cfg: cfg}
}

// OnSelectionChanged recomputes the whole view from the current inputs. Engine
// failures become the Error state; they are never returned.
func (uc *DashboardUseCase) OnSelectionChanged(ctx context.Context, in SelectionInput) domain.RenderState {
	logger := ctxlog.From(ctx).With(slog.String("run_id", uuid.NewString()))
	ctx = ctxlog.With(ctx, logger)

	var namespace string
	switch {
	case in.Namespace != nil:
		namespace = *in.Namespace
	case uc.cfg.DefaultNamespace != "":
		namespace = uc.cfg.DefaultNamespace
	default:
		return domain.Idle()
	}

	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return domain.NeedsNamespace()
	}

	catalog, err := uc.tables.Execute(ctx, catalogUsecase.ListTablesInput{Namespace: namespace})
	if err != nil {
		logger.Error("failed to list tables", slog.String("namespace", namespace), slog.Any("error", err))
		return domain.Failed(namespace, err)
	}
	if catalog.IsEmpty() {
		return domain.NoTables(namespace)
	}

	selected := normalizeTables(in.Selected)
	if len(selected) == 0 {
		return domain.NeedsSelection(namespace, catalog.Tables)
	}
	for _, table := range selected {
		if !catalog.Contains(table) {
			err := fmt.Errorf("%w: %s", ErrUnknownTable, table)
			logger.Warn("unknown table selected", slog.String("namespace", namespace), slog.String("table", table))
			return domain.Failed(namespace, err)
		}
	}

	records, err := uc.counts.Execute(ctx, GetCountsInput{
		Namespace:  namespace,
		Tables:     selected,
		WindowDays: uc.cfg.WindowDays,
	})
	if err != nil {
		logger.Error("failed to count rows", slog.String("namespace", namespace), slog.Any("error", err))
		return domain.Failed(namespace, err)
	}
	if len(records) == 0 {
		return domain.NoData(namespace, catalog.Tables, selected)
	}

	var matrix *domain.MetricsMatrix
	if uc.cfg.FillWindow {
		dates := domain.Window{Days: uc.cfg.WindowDays}.Dates(fillAnchor(uc.cfg.Now(), records))
		matrix = domain.ReshapeWindow(records, selected, dates)
	} else {
		matrix = domain.Reshape(records, selected)
	}

	logger.Info("dashboard evaluated",
		slog.String("namespace", namespace),
		slog.Any("tables", selected),
		slog.Int("dates", len(matrix.Dates)),
	)

	return domain.Data(namespace, catalog.Tables, selected, records, matrix)
}

// fillAnchor is the last day of the zero-filled window. The engine filters by
// its own current date, which may already be past the application's, so a
// record dated after now moves the anchor forward.
func fillAnchor(now time.Time, records []domain.CountRecord) time.Time {
	anchor := domain.DateOf(now)
	for _, r := range records {
		if d := domain.DateOf(r.Date); d.After(anchor) {
			anchor = d
		}
	}
	return anchor
}
