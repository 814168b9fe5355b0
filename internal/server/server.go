package server

import (
	"context"
	"net/http"
	"time"

	catalogHttp "table-counts-service/internal/catalog/adapters/http/fiber"
	metricsHttp "table-counts-service/internal/metrics/adapters/http/fiber"
	"table-counts-service/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/m-mizutani/ctxlog"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// Pinger reports whether the query engine is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Catalog *catalogHttp.CatalogHandler
	Metrics *metricsHttp.MetricsHandler
}

type Options struct {
	Pinger       Pinger
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New builds the Fiber application with every route of the service.
func New(ctx context.Context, h Handlers, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "table-counts-service",
		DisableStartupMessage: true,
		UnescapePath:          true, // route params arrive decoded, e.g. "my%20ns" as "my ns"
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
	})

	app.Use(recover.New())
	app.Use(RequestLogger(ctx))

	app.Get("/health", handleHealth(opts.Pinger))

	// catalog endpoints
	app.Get("/namespaces/:namespace/tables", h.Catalog.ListTables)

	// metrics endpoints
	app.Get("/metrics/counts", h.Metrics.GetCounts)
	app.Get("/metrics/daily", h.Metrics.GetDaily)
	app.Get("/metrics/daily/chart.png", h.Metrics.GetDailyChart)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	fsys, err := web.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("dashboard page unavailable", "error", err)
		app.Get("/", handleFallbackHome)
	} else {
		app.Use("/", filesystem.New(filesystem.Config{
			Root:  fsys,
			Index: "index.html",
		}))
	}

	return app
}

func handleHealth(p Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if p != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := p.PingContext(ctx); err != nil {
				ctxlog.From(c.UserContext()).Warn("engine ping failed", "error", err)
				return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable",
					"error":  err.Error(),
				})
			}
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"service": "table-counts-service",
		})
	}
}

func handleFallbackHome(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!DOCTYPE html>
<html>
<head><title>Table Counts</title></head>
<body>
  <h1>Table Counts</h1>
  <p>Use <a href="/metrics/daily">/metrics/daily</a> or browse the <a href="/docs/index.html">API docs</a>.</p>
</body>
</html>`)
}
