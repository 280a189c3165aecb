package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Telemetria-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero de controladores.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Tablero de la empresa
// @Description  Un registro por controlador con estado de conexión y últimas señales.
// @Tags         dashboard
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.DashboardEntry
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.BuildCompanyDashboard(c.UserContext(), c.Params("id"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConnectedStats godoc
// @Summary      Controladores en línea y fuera de línea
// @Tags         dashboard
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.ConnectedStats
// @Router       /api/companies/{id}/connected-stats [get]
func (h *DashboardHandler) ConnectedStats(c *fiber.Ctx) error {
	out, err := h.uc.BuildConnectedStats(c.UserContext(), c.Params("id"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SignalSummary godoc
// @Summary      Resumen de señales por controlador
// @Tags         dashboard
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {array}  dto.SignalSummaryDTO
// @Router       /api/companies/{id}/signal-summary [get]
func (h *DashboardHandler) SignalSummary(c *fiber.Ctx) error {
	out, err := h.uc.SignalSummary(c.UserContext(), c.Params("id"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado de conexión de un controlador
// @Tags         dashboard
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del controlador"
// @Success      200  {object}  dto.ControllerStatus
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/controllers/{id}/status [get]
func (h *DashboardHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.BuildControllerStatus(c.UserContext(), c.Params("id"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
