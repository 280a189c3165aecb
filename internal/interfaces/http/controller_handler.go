package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/application/usecase"
)

// ControllerHandler alta, consulta y configuración de controladores.
type ControllerHandler struct {
	uc *usecase.ControllerUseCase
}

// NewControllerHandler construye el handler.
func NewControllerHandler(uc *usecase.ControllerUseCase) *ControllerHandler {
	return &ControllerHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar controlador en una empresa
// @Tags         controllers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateControllerRequest  true  "empresa_id, name, phone_number, config"
// @Success      201   {object}  dto.ControllerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/controllers [post]
func (h *ControllerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateControllerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if !IsAdmin(c) && in.CompanyID != GetCompanyID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la empresa no pertenece al usuario"})
	}
	out, err := h.uc.Create(c.UserContext(), in, GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener controlador
// @Tags         controllers
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del controlador"
// @Success      200  {object}  dto.ControllerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/controllers/{id} [get]
func (h *ControllerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCompany godoc
// @Summary      Controladores de una empresa
// @Tags         controllers
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.ControllerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/controllers [get]
func (h *ControllerHandler) ListByCompany(c *fiber.Ctx) error {
	out, err := h.uc.ListByCompany(c.UserContext(), c.Params("id"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetConfig godoc
// @Summary      Configuración del controlador
// @Tags         controllers
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del controlador"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/controllers/{id}/config [get]
func (h *ControllerHandler) GetConfig(c *fiber.Ctx) error {
	out, err := h.uc.GetConfig(c.UserContext(), c.Params("id"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateConfig godoc
// @Summary      Reemplazar configuración del controlador
// @Description  Requiere sensor_types, thresholds y sampling_rate.
// @Tags         controllers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                             true  "ID del controlador"
// @Param        body  body  dto.UpdateControllerConfigRequest  true  "Nueva configuración"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/controllers/{id}/config [put]
func (h *ControllerHandler) UpdateConfig(c *fiber.Ctx) error {
	var in dto.UpdateControllerConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateConfig(c.UserContext(), c.Params("id"), in.Config, GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar controlador y sus señales
// @Tags         controllers
// @Security     Bearer
// @Param        id  path  string  true  "ID del controlador"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/controllers/{id} [delete]
func (h *ControllerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), GetPermissions(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
