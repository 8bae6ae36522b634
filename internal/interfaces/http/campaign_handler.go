package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/municare-api/internal/application/campaign"
	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain"
)

// CampaignHandler maneja las campañas masivas de correo y SMS.
type CampaignHandler struct {
	uc *campaign.CampaignUseCase
}

// NewCampaignHandler construye el handler.
func NewCampaignHandler(uc *campaign.CampaignUseCase) *CampaignHandler {
	return &CampaignHandler{uc: uc}
}

// SendEmails POST /api/send-emails
// La respuesta llega cuando la campaña terminó: conteos finales, nunca parciales.
func (h *CampaignHandler) SendEmails(c *fiber.Ctx) error {
	var in dto.SendEmailsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	result, err := h.uc.SendEmails(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecipients) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_RECIPIENTS", Message: "la campaña no tiene destinatarios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// SendSMS POST /api/send-sms
func (h *CampaignHandler) SendSMS(c *fiber.Ctx) error {
	var in dto.SendSMSRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	result, err := h.uc.SendSMS(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecipients) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_RECIPIENTS", Message: "la campaña no tiene destinatarios"})
		}
		if errors.Is(err, domain.ErrProviderDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SMS_DISABLED", Message: "el proveedor de SMS no está configurado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// ListBatches GET /api/campaigns?limit=20
func (h *CampaignHandler) ListBatches(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	list, err := h.uc.ListBatches(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// ListLogs GET /api/campaigns/:id/logs?limit=100
func (h *CampaignHandler) ListLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))
	list, err := h.uc.ListLogs(c.Context(), c.Params("id"), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
