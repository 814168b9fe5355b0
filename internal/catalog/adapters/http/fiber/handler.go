package fiber

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"table-counts-service/internal/catalog/core/domain"
	"table-counts-service/internal/catalog/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/m-mizutani/ctxlog"
)

type ListTablesUseCase interface {
	Execute(ctx context.Context, in usecase.ListTablesInput) (*domain.Catalog, error)
}

type CatalogHandler struct {
	uc ListTablesUseCase
}

func NewCatalogHandler(uc ListTablesUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListTables godoc
// @Summary List tables in a namespace
// @Description Returns the base tables and views of a namespace ordered by name
// @Tags Catalog
// @Produce json
// @Param namespace path string true "Namespace (schema) name"
// @Success 200 {object} TablesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /namespaces/{namespace}/tables [get]
func (h *CatalogHandler) ListTables(c *fiber.Ctx) error {
	namespace := c.Params("namespace")

	res, err := h.uc.Execute(c.UserContext(), usecase.ListTablesInput{Namespace: namespace})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidNamespace) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_namespace",
				Message: err.Error(),
			})
		}
		ctxlog.From(c.UserContext()).Error("list tables failed",
			slog.String("namespace", namespace),
			slog.Any("error", err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "engine_error",
			Message: err.Error(),
		})
	}

	return c.Status(http.StatusOK).JSON(TablesResponse{
		Namespace: res.Namespace,
		Tables:    res.Tables,
		Total:     len(res.Tables),
	})
}
