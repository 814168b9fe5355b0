package config

import (
	"log/slog"

	metricsPg "table-counts-service/internal/metrics/adapters/postgres"
	"table-counts-service/internal/metrics/core/domain"
	"table-counts-service/internal/metrics/core/usecase"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Dashboard holds the aggregation settings
type Dashboard struct {
	WindowDays         int
	DateColumn         string
	DefaultNamespace   string
	MaxParallelQueries int
	FillWindow         bool
}

func (d *Dashboard) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "window-days",
			Usage:       "Trailing window in days; the window covers today and the N days before",
			Category:    "Dashboard",
			Value:       domain.DefaultWindowDays,
			Sources:     cli.EnvVars("TABLE_COUNTS_WINDOW_DAYS"),
			Destination: &d.WindowDays,
		},
		&cli.StringFlag{
			Name:        "date-column",
			Usage:       "Column holding the event date in every table",
			Category:    "Dashboard",
			Value:       metricsPg.DefaultDateColumn,
			Sources:     cli.EnvVars("TABLE_COUNTS_DATE_COLUMN"),
			Destination: &d.DateColumn,
		},
		&cli.StringFlag{
			Name:        "default-namespace",
			Usage:       "Namespace used when a request does not name one",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("TABLE_COUNTS_DEFAULT_NAMESPACE"),
			Destination: &d.DefaultNamespace,
		},
		&cli.IntFlag{
			Name:        "max-parallel-queries",
			Usage:       "Per-table count queries run at once (1 runs them in order)",
			Category:    "Dashboard",
			Value:       1,
			Sources:     cli.EnvVars("TABLE_COUNTS_MAX_PARALLEL_QUERIES"),
			Destination: &d.MaxParallelQueries,
		},
		&cli.BoolFlag{
			Name:        "fill-window",
			Usage:       "Add all-zero rows for window days without any record; the window ends at the later of the UTC date and the newest record date, so run postgres sessions in UTC",
			Category:    "Dashboard",
			Sources:     cli.EnvVars("TABLE_COUNTS_FILL_WINDOW"),
			Destination: &d.FillWindow,
		},
	}
}

func (d *Dashboard) Validate() error {
	if err := (domain.Window{Days: d.WindowDays}).Validate(); err != nil {
		return goerr.Wrap(err, "invalid window", goerr.V("window_days", d.WindowDays))
	}
	if d.DateColumn == "" {
		return goerr.New("date column is required")
	}
	if d.MaxParallelQueries < 1 {
		return goerr.New("max parallel queries must be at least 1", goerr.V("value", d.MaxParallelQueries))
	}
	return nil
}

// UseCaseConfig is the dashboard usecase configuration derived from the flags.
func (d *Dashboard) UseCaseConfig() usecase.DashboardConfig {
	return usecase.DashboardConfig{
		DefaultNamespace: d.DefaultNamespace,
		WindowDays:       d.WindowDays,
		FillWindow:       d.FillWindow,
	}
}

func (d Dashboard) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_days", d.WindowDays),
		slog.String("date_column", d.DateColumn),
		slog.String("default_namespace", d.DefaultNamespace),
		slog.Int("max_parallel_queries", d.MaxParallelQueries),
		slog.Bool("fill_window", d.FillWindow),
	)
}
