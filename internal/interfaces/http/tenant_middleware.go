package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// LocalController controlador resuelto por RequireControllerAccess.
const LocalController = "controller"

// controllerResolver es el contrato mínimo que necesita el middleware para ubicar un controlador.
// Lo implementa cualquier repository.ControllerDirectory.
type controllerResolver interface {
	Get(ctx context.Context, id string) (*entity.Controller, error)
}

// RequireCompanyAccess limita las rutas /companies/:id a la empresa del token.
// El administrador accede a todas. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 → el token no trae company_id.
//   - 403 → la empresa de la ruta no es la del usuario.
func RequireCompanyAccess(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IsAdmin(c) {
			return c.Next()
		}
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}
		if c.Params(param) != companyID {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "la empresa no pertenece al usuario",
			})
		}
		return c.Next()
	}
}

// RequireControllerAccess resuelve el controlador de la ruta y verifica que sea de la empresa
// del usuario (salvo administrador). Deja el controlador en c.Locals(LocalController).
//
// Comportamiento:
//   - 404 → el controlador no existe.
//   - 403 → el controlador es de otra empresa.
//   - 503 → fallo de infraestructura al consultar la DB.
func RequireControllerAccess(param string, resolver controllerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		controller, err := resolver.Get(c.UserContext(), c.Params(param))
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "CONTROLLER_CHECK_FAILED",
				Message: "no se pudo verificar el controlador, intente más tarde",
			})
		}
		if controller == nil {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "CONTROLLER_NOT_FOUND",
				Message: "controlador no encontrado",
			})
		}
		if !IsAdmin(c) && controller.CompanyID != GetCompanyID(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el controlador no pertenece a la empresa del usuario",
			})
		}
		c.Locals(LocalController, controller)
		return c.Next()
	}
}
