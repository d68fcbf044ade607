package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lacteos-api/internal/application/dto"
)

// moduleChecker contrato mínimo para saber si un módulo opcional tiene backend configurado.
// Lo implementa config.HerdDBConfig.
type moduleChecker interface {
	Enabled() bool
}

// RequireModule responde 503 MODULE_DISABLED si el módulo no está configurado en este despliegue.
func RequireModule(moduleName string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if checker == nil || !checker.Enabled() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleName + "' no está habilitado en este servidor",
			})
		}
		return c.Next()
	}
}
