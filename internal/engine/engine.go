// Package engine opens the single long-lived query-engine handle shared by the
// catalog and metrics adapters.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Attachment maps an extra SQLite database file to a namespace.
type Attachment struct {
	Name string
	Path string
}

type Config struct {
	Driver          Driver
	DSN             string
	Attachments     []Attachment // sqlite only
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.DSN == "" {
			return goerr.New("postgres DSN is required")
		}
		if len(c.Attachments) > 0 {
			return goerr.New("attachments are only supported by the sqlite engine")
		}
	case DriverSQLite:
		for _, a := range c.Attachments {
			if a.Name == "" || a.Path == "" {
				return goerr.New("invalid sqlite attachment", goerr.V("attachment", a))
			}
		}
	default:
		return goerr.New("unsupported engine driver", goerr.V("driver", c.Driver))
	}
	return nil
}

// Open connects, applies pool settings and pings. The caller owns the returned
// handle and must Close it.
func Open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if cfg.Driver == DriverSQLite && dsn == "" {
		dsn = ":memory:"
	}

	db, err := sqlx.Open(string(cfg.Driver), dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open engine", goerr.V("driver", cfg.Driver))
	}

	switch cfg.Driver {
	case DriverSQLite:
		// One connection keeps in-memory databases and ATTACHes visible to every query.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to ping engine", goerr.V("driver", cfg.Driver))
	}

	for _, a := range cfg.Attachments {
		query := fmt.Sprintf("ATTACH DATABASE ? AS %s", QuoteSQLite(a.Name))
		if _, err := db.ExecContext(ctx, query, a.Path); err != nil {
			_ = db.Close()
			return nil, goerr.Wrap(err, "failed to attach sqlite database",
				goerr.V("name", a.Name),
				goerr.V("path", a.Path),
			)
		}
	}

	ctxlog.From(ctx).Info("engine connected",
		slog.String("driver", string(cfg.Driver)),
		slog.Int("attachments", len(cfg.Attachments)),
	)

	return db, nil
}

// ParseAttachment parses "name=path".
func ParseAttachment(s string) (Attachment, error) {
	name, path, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	path = strings.TrimSpace(path)
	if !ok || name == "" || path == "" {
		return Attachment{}, goerr.New("attachment must be name=path", goerr.V("value", s))
	}
	return Attachment{Name: name, Path: path}, nil
}

// QuoteSQLite quotes a SQLite identifier with backticks, doubling any embedded
// backtick. A backticked name is always an identifier, never a string literal.
// NUL bytes are dropped.
func QuoteSQLite(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
