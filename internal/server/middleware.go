package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
)

// RequestLogger puts a request-scoped logger into the user context so handlers
// and usecases below log with the same request_id.
func RequestLogger(ctx context.Context) fiber.Handler {
	base := ctxlog.From(ctx)

	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		logger := base.With(slog.String("request_id", requestID))
		c.SetUserContext(ctxlog.With(c.UserContext(), logger))

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		logger.Info("HTTP request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("query", string(c.Request().URI().QueryString())),
			slog.Int("status", status),
			slog.Int("bytes", len(c.Response().Body())),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote", c.IP()),
		)
		return err
	}
}
