package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tu-usuario/municare-api/internal/domain/entity"
	"github.com/tu-usuario/municare-api/internal/domain/repository"
	"github.com/tu-usuario/municare-api/pkg/logger"
)

// ActivityMiddleware registra en userActivities cada mutación de un operador
// autenticado (POST/PUT/PATCH/DELETE con respuesta exitosa). La escritura es
// asíncrona y best-effort: nunca afecta la respuesta al cliente.
func ActivityMiddleware(activityRepo repository.ActivityRepository, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if !isMutation(c.Method()) {
			return err
		}
		userID := GetUserID(c)
		if userID == "" || err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return err
		}

		now := time.Now()
		activity := &entity.UserActivity{
			UserID:    userID,
			SortKey:   now.UTC().Format(time.RFC3339Nano) + "#" + uuid.NewString(),
			Action:    c.Method() + " " + c.Route().Path,
			Detail:    c.Path(),
			Timestamp: now,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := activityRepo.Record(ctx, activity); err != nil {
				log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo registrar userActivity")
			}
		}()
		return err
	}
}

func isMutation(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}
	return false
}
