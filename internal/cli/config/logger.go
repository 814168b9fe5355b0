package config

import (
	"io"
	"log/slog"
	"os"

	"table-counts-service/internal/logging"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level  string
	Format string
}

func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("TABLE_COUNTS_LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto)",
			Category:    "Logging",
			Value:       "auto",
			Sources:     cli.EnvVars("TABLE_COUNTS_LOG_FORMAT"),
			Destination: &l.Format,
		},
	}
}

// Configure builds the process logger writing to stdout.
func (l *Logger) Configure() (*slog.Logger, error) {
	return l.ConfigureWriter(os.Stdout)
}

func (l *Logger) ConfigureWriter(w io.Writer) (*slog.Logger, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	format, _ := logging.ParseFormat(l.Format)
	return logging.New(logging.ParseLevel(l.Level), w, format), nil
}

func (l *Logger) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return goerr.New("invalid log level", goerr.V("level", l.Level))
	}
	if _, ok := logging.ParseFormat(l.Format); !ok {
		return goerr.New("invalid log format", goerr.V("format", l.Format))
	}
	return nil
}

func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
	)
}
