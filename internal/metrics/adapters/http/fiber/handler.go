package fiber

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"table-counts-service/internal/metrics/core/domain"
	"table-counts-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/m-mizutani/ctxlog"
)

type GetCountsUseCase interface {
	Execute(ctx context.Context, in usecase.GetCountsInput) ([]domain.CountRecord, error)
}

type DashboardUseCase interface {
	OnSelectionChanged(ctx context.Context, in usecase.SelectionInput) domain.RenderState
}

type ChartRenderer interface {
	RenderPNG(w io.Writer, m *domain.MetricsMatrix) error
}

type MetricsHandler struct {
	counts    GetCountsUseCase
	dashboard DashboardUseCase
	chart     ChartRenderer
}

func NewMetricsHandler(counts GetCountsUseCase, dashboard DashboardUseCase, chart ChartRenderer) *MetricsHandler {
	return &MetricsHandler{counts: counts, dashboard: dashboard, chart: chart}
}

// GetCounts godoc
// @Summary Daily record counts of one table
// @Description Returns one record per date with at least one row inside the trailing window
// @Tags Metrics
// @Produce json
// @Param namespace query string true "Namespace (schema) name"
// @Param table query string true "Table name"
// @Param window_days query int false "Trailing window in days (default 5)"
// @Success 200 {object} CountsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /metrics/counts [get]
func (h *MetricsHandler) GetCounts(c *fiber.Ctx) error {
	namespace := c.Query("namespace", "")
	table := c.Query("table", "")

	windowDays := 0
	if s := c.Query("window_days", ""); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: "invalid 'window_days' parameter",
			})
		}
		if n <= 0 {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: domain.ErrInvalidWindow.Error(),
			})
		}
		windowDays = n
	}

	records, err := h.counts.Execute(c.UserContext(), usecase.GetCountsInput{
		Namespace:  namespace,
		Tables:     []string{table},
		WindowDays: windowDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCountsQuery),
			errors.Is(err, usecase.ErrNoTablesSelected),
			errors.Is(err, domain.ErrInvalidWindow):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		default:
			ctxlog.From(c.UserContext()).Error("count query failed",
				slog.String("namespace", namespace),
				slog.String("table", table),
				slog.Any("error", err),
			)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error:   "engine_error",
				Message: err.Error(),
			})
		}
	}

	if windowDays == 0 {
		windowDays = domain.DefaultWindowDays
	}

	return c.Status(http.StatusOK).JSON(CountsResponse{
		Namespace:  strings.TrimSpace(namespace),
		Table:      strings.TrimSpace(table),
		WindowDays: windowDays,
		Records:    toRecordsResponse(records),
	})
}

// GetDaily godoc
// @Summary Dashboard state for a namespace and table selection
// @Description Evaluates the dashboard and returns its render state. Only the error state is a non-200 response.
// @Tags Metrics
// @Produce json
// @Param namespace query string false "Namespace (schema) name"
// @Param tables query []string false "Selected tables, comma separated or repeated" collectionFormat(multi)
// @Success 200 {object} RenderStateResponse
// @Failure 500 {object} RenderStateResponse
// @Router /metrics/daily [get]
func (h *MetricsHandler) GetDaily(c *fiber.Ctx) error {
	state := h.dashboard.OnSelectionChanged(c.UserContext(), selectionFrom(c))

	status := http.StatusOK
	if state.Kind == domain.StateError {
		status = http.StatusInternalServerError
	}
	return c.Status(status).JSON(toRenderStateResponse(state))
}

// GetDailyChart godoc
// @Summary Line chart of daily record counts
// @Description Renders the matrix as a PNG when there is data; otherwise returns the render state with 404 (500 for errors)
// @Tags Metrics
// @Produce png
// @Produce json
// @Param namespace query string false "Namespace (schema) name"
// @Param tables query []string false "Selected tables, comma separated or repeated" collectionFormat(multi)
// @Success 200 {file} binary
// @Failure 404 {object} RenderStateResponse
// @Failure 500 {object} RenderStateResponse
// @Router /metrics/daily/chart.png [get]
func (h *MetricsHandler) GetDailyChart(c *fiber.Ctx) error {
	state := h.dashboard.OnSelectionChanged(c.UserContext(), selectionFrom(c))

	if !state.HasData() {
		status := http.StatusNotFound
		if state.Kind == domain.StateError {
			status = http.StatusInternalServerError
		}
		return c.Status(status).JSON(toRenderStateResponse(state))
	}

	var buf bytes.Buffer
	if err := h.chart.RenderPNG(&buf, state.Matrix); err != nil {
		ctxlog.From(c.UserContext()).Error("chart rendering failed", slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_server_error",
			Message: err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(http.StatusOK).Send(buf.Bytes())
}

// selectionFrom reads namespace and tables from the query string. A missing
// namespace parameter differs from an empty one: only the latter asks the user
// to type a name.
func selectionFrom(c *fiber.Ctx) usecase.SelectionInput {
	var in usecase.SelectionInput

	args := c.Context().QueryArgs()
	if args.Has("namespace") {
		ns := string(args.Peek("namespace"))
		in.Namespace = &ns
	}

	for _, raw := range args.PeekMulti("tables") {
		for _, t := range strings.Split(string(raw), ",") {
			if t = strings.TrimSpace(t); t != "" {
				in.Selected = append(in.Selected, t)
			}
		}
	}
	return in
}
