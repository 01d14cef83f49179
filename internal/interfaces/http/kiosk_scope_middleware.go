package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
)

// RequireKioskScope corta antes del caso de uso las peticiones de un kiosk_user sobre un
// kiosco que no es el suyo. El parámetro de ruta indica dónde viene el ID del kiosco.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireKioskScope(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCompanyID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}
		if !ActorFrom(c).CanAccessKiosk(c.Params(param)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "solo puede operar sobre su propio kiosco",
			})
		}
		return c.Next()
	}
}
