package config_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"table-counts-service/internal/cli/config"
	"table-counts-service/internal/engine"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

func TestLogger_Validate(t *testing.T) {
	gt.NoError(t, (&config.Logger{Level: "debug", Format: "json"}).Validate())
	gt.NoError(t, (&config.Logger{Level: "info", Format: ""}).Validate())
	gt.Error(t, (&config.Logger{Level: "verbose", Format: "json"}).Validate())
	gt.Error(t, (&config.Logger{Level: "info", Format: "xml"}).Validate())
}

func TestLogger_ConfigureWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := (&config.Logger{Level: "warn", Format: "json"}).ConfigureWriter(&buf)
	gt.NoError(t, err).Required()

	logger.Info("dropped")
	logger.Warn("kept")
	gt.False(t, strings.Contains(buf.String(), "dropped"))
	gt.S(t, buf.String()).Contains(`"msg":"kept"`)
}

func TestEngine_EngineConfig(t *testing.T) {
	e := &config.Engine{
		Driver: "sqlite",
		Attach: []string{"archive=/tmp/archive.db"},
	}
	cfg, err := e.EngineConfig()
	gt.NoError(t, err).Required()
	gt.Equal(t, cfg.Driver, engine.DriverSQLite)
	gt.Equal(t, cfg.Attachments, []engine.Attachment{{Name: "archive", Path: "/tmp/archive.db"}})
}

func TestEngine_EngineConfigErrors(t *testing.T) {
	_, err := (&config.Engine{Driver: "sqlite", Attach: []string{"broken"}}).EngineConfig()
	gt.Error(t, err)

	_, err = (&config.Engine{Driver: "postgres"}).EngineConfig()
	gt.Error(t, err)

	_, err = (&config.Engine{Driver: "mysql", DSN: "x"}).EngineConfig()
	gt.Error(t, err)
}

func TestEngine_LogValueRedactsDSN(t *testing.T) {
	cases := map[string]string{
		"postgres://app:s3cret@db:5432/sales": "s3cret",
		"host=db user=app password=s3cret":    "s3cret",
	}
	for dsn, secret := range cases {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		logger.Info("cfg", slog.Any("engine", config.Engine{Driver: "postgres", DSN: dsn}))
		gt.False(t, strings.Contains(buf.String(), secret))
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("cfg", slog.Any("engine", config.Engine{Driver: "sqlite", DSN: "/data/app.db"}))
	gt.S(t, buf.String()).Contains("/data/app.db")
}

func TestDashboard_Validate(t *testing.T) {
	valid := config.Dashboard{WindowDays: 5, DateColumn: "event_date", MaxParallelQueries: 1}
	gt.NoError(t, valid.Validate())

	bad := valid
	bad.WindowDays = 0
	gt.Error(t, bad.Validate())

	bad = valid
	bad.DateColumn = ""
	gt.Error(t, bad.Validate())

	bad = valid
	bad.MaxParallelQueries = 0
	gt.Error(t, bad.Validate())
}

func TestDashboard_UseCaseConfig(t *testing.T) {
	d := config.Dashboard{WindowDays: 7, DefaultNamespace: "sales", FillWindow: true}
	cfg := d.UseCaseConfig()
	gt.Equal(t, cfg.WindowDays, 7)
	gt.Equal(t, cfg.DefaultNamespace, "sales")
	gt.True(t, cfg.FillWindow)
}

func TestDashboard_FillWindowUsageNamesClock(t *testing.T) {
	var d config.Dashboard
	for _, f := range d.Flags() {
		if f.Names()[0] != "fill-window" {
			continue
		}
		bf, ok := f.(*cli.BoolFlag)
		gt.True(t, ok)
		gt.S(t, bf.Usage).Contains("UTC")
		return
	}
	t.Fatal("fill-window flag not found")
}

func TestServer_Validate(t *testing.T) {
	gt.NoError(t, (&config.Server{Addr: ":8080"}).Validate())
	gt.Error(t, (&config.Server{}).Validate())
	gt.Error(t, (&config.Server{Addr: ":8080", ReadTimeout: -1}).Validate())
}
