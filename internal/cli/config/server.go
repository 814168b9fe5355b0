package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Server holds HTTP server configuration
type Server struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("TABLE_COUNTS_ADDR"),
			Destination: &s.Addr,
		},
		&cli.DurationFlag{
			Name:        "read-timeout",
			Usage:       "HTTP read timeout (0 disables)",
			Value:       15 * time.Second,
			Sources:     cli.EnvVars("TABLE_COUNTS_READ_TIMEOUT"),
			Destination: &s.ReadTimeout,
		},
		&cli.DurationFlag{
			Name:        "write-timeout",
			Usage:       "HTTP write timeout (0 disables)",
			Value:       60 * time.Second,
			Sources:     cli.EnvVars("TABLE_COUNTS_WRITE_TIMEOUT"),
			Destination: &s.WriteTimeout,
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "Grace period for in-flight requests on shutdown",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("TABLE_COUNTS_SHUTDOWN_TIMEOUT"),
			Destination: &s.ShutdownTimeout,
		},
	}
}

func (s *Server) Validate() error {
	if s.Addr == "" {
		return goerr.New("server address is required")
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 || s.ShutdownTimeout < 0 {
		return goerr.New("timeouts must not be negative",
			goerr.V("read", s.ReadTimeout),
			goerr.V("write", s.WriteTimeout),
			goerr.V("shutdown", s.ShutdownTimeout),
		)
	}
	return nil
}

func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.Duration("read_timeout", s.ReadTimeout),
		slog.Duration("write_timeout", s.WriteTimeout),
		slog.Duration("shutdown_timeout", s.ShutdownTimeout),
	)
}
