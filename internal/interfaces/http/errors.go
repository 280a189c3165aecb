package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain"
)

// errorMapping status y código de respuesta para cada error de dominio.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrPermissionDenied, fiber.StatusForbidden, "PERMISSION_DENIED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrControllerNotFound, fiber.StatusNotFound, "CONTROLLER_NOT_FOUND"},
	{domain.ErrTenantNotFound, fiber.StatusNotFound, "COMPANY_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidTimeRange, fiber.StatusBadRequest, "INVALID_TIME_RANGE"},
	{domain.ErrInvalidSignal, fiber.StatusBadRequest, "INVALID_SIGNAL"},
	{domain.ErrInvalidConfig, fiber.StatusBadRequest, "INVALID_CONFIG"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrAddressAlreadyTaken, fiber.StatusConflict, "ADDRESS_TAKEN"},
	{domain.ErrDuplicateSignal, fiber.StatusConflict, "DUPLICATE_SIGNAL"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// respondError traduce un error de los casos de uso a la respuesta HTTP.
// Los errores no mapeados se registran y responden 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
