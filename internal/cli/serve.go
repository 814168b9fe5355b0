package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	catalogHttp "table-counts-service/internal/catalog/adapters/http/fiber"
	catalogPg "table-counts-service/internal/catalog/adapters/postgres"
	catalogSqlite "table-counts-service/internal/catalog/adapters/sqlite"
	catalogPorts "table-counts-service/internal/catalog/core/ports"
	catalogUsecase "table-counts-service/internal/catalog/core/usecase"
	"table-counts-service/internal/cli/config"
	"table-counts-service/internal/engine"
	"table-counts-service/internal/metrics/adapters/chart"
	metricsHttp "table-counts-service/internal/metrics/adapters/http/fiber"
	metricsPg "table-counts-service/internal/metrics/adapters/postgres"
	metricsSqlite "table-counts-service/internal/metrics/adapters/sqlite"
	metricsPorts "table-counts-service/internal/metrics/core/ports"
	metricsUsecase "table-counts-service/internal/metrics/core/usecase"
	"table-counts-service/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		engineCfg    config.Engine
		dashboardCfg config.Dashboard
	)

	flags := joinFlags(
		serverCfg.Flags(),
		engineCfg.Flags(),
		dashboardCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := serverCfg.Validate(); err != nil {
				return err
			}
			if err := dashboardCfg.Validate(); err != nil {
				return err
			}

			logger.Info("Starting table-counts server",
				slog.Any("server", serverCfg),
				slog.Any("engine", engineCfg),
				slog.Any("dashboard", dashboardCfg),
			)

			db, err := engineCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					logger.Warn("failed to close engine", slog.Any("error", err))
				}
			}()

			app, err := buildApp(ctx, db, engine.Driver(engineCfg.Driver), serverCfg, dashboardCfg)
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				errCh <- app.Listen(serverCfg.Addr)
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				if err != nil {
					return goerr.Wrap(err, "HTTP server stopped", goerr.V("addr", serverCfg.Addr))
				}
				return nil
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// buildApp wires adapters for the selected engine into the usecases and the
// HTTP application.
func buildApp(ctx context.Context, db *sqlx.DB, driver engine.Driver, serverCfg config.Server, dashboardCfg config.Dashboard) (*fiber.App, error) {
	var (
		catalogReader catalogPorts.CatalogReaderPort
		countsReader  metricsPorts.CountsReaderPort
	)

	switch driver {
	case engine.DriverPostgres:
		catalogReader = catalogPg.NewCatalogRepository(catalogPg.NewSQLDB(db))
		countsReader = metricsPg.NewCountsRepository(metricsPg.NewSQLDB(db), dashboardCfg.DateColumn)
	case engine.DriverSQLite:
		catalogReader = catalogSqlite.NewCatalogRepository(db)
		countsReader = metricsSqlite.NewCountsRepository(db, dashboardCfg.DateColumn)
	default:
		return nil, goerr.New("unsupported engine driver", goerr.V("driver", driver))
	}

	listTablesUC := catalogUsecase.NewListTablesUseCase(catalogReader)
	getCountsUC := metricsUsecase.NewGetCountsUseCase(countsReader,
		metricsUsecase.WithMaxParallel(dashboardCfg.MaxParallelQueries),
	)
	dashboardUC := metricsUsecase.NewDashboardUseCase(listTablesUC, getCountsUC, dashboardCfg.UseCaseConfig())

	return server.New(ctx, server.Handlers{
		Catalog: catalogHttp.NewCatalogHandler(listTablesUC),
		Metrics: metricsHttp.NewMetricsHandler(getCountsUC, dashboardUC, chart.NewRenderer()),
	}, server.Options{
		Pinger:       db,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
	}), nil
}
