package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/application/reports"
	"github.com/tu-usuario/municare-api/internal/domain"
)

// ReportHandler maneja la descarga de informes PDF.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// AgedReportPDF GET /api/reports/aged/:period
// Devuelve el PDF de antigüedad de saldos del período como descarga.
func (h *ReportHandler) AgedReportPDF(c *fiber.Ctx) error {
	period := c.Params("period")
	pdfBytes, err := h.uc.AgedReportPDF(c.Context(), period)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay registros para ese período"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="aged-%s.pdf"`, period))
	return c.Send(pdfBytes)
}
