package config

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"table-counts-service/internal/engine"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Engine holds query-engine connection settings
type Engine struct {
	Driver          string
	DSN             string
	Attach          []string // name=path
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

func (e *Engine) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "engine",
			Usage:       "Query engine (postgres, sqlite)",
			Category:    "Engine",
			Value:       string(engine.DriverPostgres),
			Sources:     cli.EnvVars("TABLE_COUNTS_ENGINE"),
			Destination: &e.Driver,
		},
		&cli.StringFlag{
			Name:        "dsn",
			Usage:       "Engine DSN (postgres URL or sqlite file; sqlite defaults to in-memory)",
			Category:    "Engine",
			Sources:     cli.EnvVars("TABLE_COUNTS_DSN", "POSTGRES_DSN"),
			Destination: &e.DSN,
		},
		&cli.StringSliceFlag{
			Name:        "sqlite-attach",
			Usage:       "Attach a sqlite database as a namespace (name=path, repeatable)",
			Category:    "Engine",
			Sources:     cli.EnvVars("TABLE_COUNTS_SQLITE_ATTACH"),
			Destination: &e.Attach,
		},
		&cli.IntFlag{
			Name:        "max-open-conns",
			Usage:       "Maximum open connections (postgres)",
			Category:    "Engine",
			Value:       20,
			Sources:     cli.EnvVars("TABLE_COUNTS_MAX_OPEN_CONNS"),
			Destination: &e.MaxOpenConns,
		},
		&cli.IntFlag{
			Name:        "max-idle-conns",
			Usage:       "Maximum idle connections (postgres)",
			Category:    "Engine",
			Value:       10,
			Sources:     cli.EnvVars("TABLE_COUNTS_MAX_IDLE_CONNS"),
			Destination: &e.MaxIdleConns,
		},
		&cli.DurationFlag{
			Name:        "conn-max-lifetime",
			Usage:       "Maximum connection lifetime (postgres)",
			Category:    "Engine",
			Value:       30 * time.Minute,
			Sources:     cli.EnvVars("TABLE_COUNTS_CONN_MAX_LIFETIME"),
			Destination: &e.ConnMaxLifetime,
		},
		&cli.DurationFlag{
			Name:        "ping-timeout",
			Usage:       "Timeout of the startup ping",
			Category:    "Engine",
			Value:       5 * time.Second,
			Sources:     cli.EnvVars("TABLE_COUNTS_PING_TIMEOUT"),
			Destination: &e.PingTimeout,
		},
	}
}

// EngineConfig converts the flags into an engine.Config.
func (e *Engine) EngineConfig() (engine.Config, error) {
	cfg := engine.Config{
		Driver:          engine.Driver(e.Driver),
		DSN:             e.DSN,
		MaxOpenConns:    e.MaxOpenConns,
		MaxIdleConns:    e.MaxIdleConns,
		ConnMaxLifetime: e.ConnMaxLifetime,
		PingTimeout:     e.PingTimeout,
	}
	for _, s := range e.Attach {
		a, err := engine.ParseAttachment(s)
		if err != nil {
			return engine.Config{}, err
		}
		cfg.Attachments = append(cfg.Attachments, a)
	}
	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}

// Configure opens the engine handle. The caller must Close it.
func (e *Engine) Configure(ctx context.Context) (*sqlx.DB, error) {
	cfg, err := e.EngineConfig()
	if err != nil {
		return nil, goerr.Wrap(err, "invalid engine configuration")
	}
	return engine.Open(ctx, cfg)
}

func (e Engine) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", e.Driver),
		slog.String("dsn", redactDSN(e.DSN)),
		slog.Any("attach", e.Attach),
		slog.Int("max_open_conns", e.MaxOpenConns),
		slog.Int("max_idle_conns", e.MaxIdleConns),
		slog.Duration("conn_max_lifetime", e.ConnMaxLifetime),
	)
}

// redactDSN hides the password of URL-style DSNs. Key/value DSNs that mention a
// password are replaced entirely; plain file paths are kept.
func redactDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Redacted()
	}
	if strings.Contains(strings.ToLower(dsn), "password") {
		return "[REDACTED]"
	}
	return dsn
}
