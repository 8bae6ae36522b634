package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/application/uploads"
)

// UploadHandler maneja las cargas masivas de registros financieros (solo admin).
type UploadHandler struct {
	uc *uploads.UploadUseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *uploads.UploadUseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// UploadAged POST /api/uploads/aged
// Las filas inválidas se cuentan y se omiten; la carga nunca se aborta por una fila.
func (h *UploadHandler) UploadAged(c *fiber.Ctx) error {
	var in dto.UploadAgedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	result, err := h.uc.UploadAged(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// UploadLevied POST /api/uploads/levied
func (h *UploadHandler) UploadLevied(c *fiber.Ctx) error {
	var in dto.UploadLeviedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	result, err := h.uc.UploadLevied(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}
