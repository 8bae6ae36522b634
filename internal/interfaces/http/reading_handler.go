package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/application/usecase"
	"github.com/tu-usuario/municare-api/internal/domain"
)

// ReadingHandler maneja lecturas de medidor y series de consumo.
type ReadingHandler struct {
	uc *usecase.ReadingUseCase
}

// NewReadingHandler construye el handler.
func NewReadingHandler(uc *usecase.ReadingUseCase) *ReadingHandler {
	return &ReadingHandler{uc: uc}
}

// Record POST /api/readings
func (h *ReadingHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordReadingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	reading, err := h.uc.Record(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la cuenta indicada no existe"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lectura inválida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(reading)
}

// ListByAccount GET /api/readings/:account?type=water&limit=50
func (h *ReadingHandler) ListByAccount(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	list, err := h.uc.ListByAccount(c.Context(), c.Params("account"), c.Query("type"), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// UsageSeries GET /api/readings/:account/usage?type=water
// Serie mensual de consumo de la cuenta para las gráficas.
func (h *ReadingHandler) UsageSeries(c *fiber.Ctx) error {
	series, err := h.uc.UsageSeries(c.Context(), c.Params("account"), c.Query("type"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(series)
}

// GlobalUsage GET /api/usage?from=2025-09&to=2026-08
// Agregados globales mensuales para el dashboard.
func (h *ReadingHandler) GlobalUsage(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to son requeridos (formato YYYY-MM)"})
	}
	stats, err := h.uc.GlobalUsage(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stats)
}
