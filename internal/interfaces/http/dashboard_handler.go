package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/tu-usuario/municare-api/internal/application/analytics"
	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen combinado de la pantalla principal.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (query_stats, usage_stats, aged_summary,
// last_batches). Las cuatro fuentes se consultan en paralelo en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}

// GetAgedSummary GET /api/dashboard/aged/:period
func (h *DashboardHandler) GetAgedSummary(c *fiber.Ctx) error {
	summary, err := h.uc.AgedSummary(c.Context(), c.Params("period"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay registros para ese período"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}
