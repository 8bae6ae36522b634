package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/municare-api/internal/application/dto"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
)

// ActivityHandler expone la traza de acciones de los operadores.
type ActivityHandler struct {
	repo repository.ActivityRepository
}

// NewActivityHandler construye el handler.
func NewActivityHandler(repo repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

// ListByUser GET /api/users/:id/activities?limit=50 (solo admin)
func (h *ActivityHandler) ListByUser(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	activities, err := h.repo.ListByUser(c.Context(), c.Params("id"), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(activities)
}
