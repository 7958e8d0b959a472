package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/DonnyDianderas/dcp-inventory-api/pkg/logger"
)

// RequestLogger registra cada petición HTTP: método, ruta, status y duración.
// En rutas protegidas agrega quién la hizo (la sesión ya quedó en Locals
// cuando el middleware de auth corrió dentro de c.Next()).
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		if username := GetUsername(c); username != "" {
			ev = ev.Str("user_id", GetUserID(c)).Str("username", username)
		}
		ev.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
