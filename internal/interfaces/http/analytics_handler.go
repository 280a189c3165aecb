package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Telemetria-api/internal/application/analytics"
)

// AnalyticsHandler maneja los endpoints de analítica por controlador.
type AnalyticsHandler struct {
	uc *appanalytics.ControllerAnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.ControllerAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// UptimeDowntime godoc
// @Summary      Intervalos en línea / fuera de línea por día
// @Description  Una brecha mayor al umbral entre señales consecutivas genera un intervalo fuera de línea.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true  "ID del controlador"
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.UptimeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/controllers/{id}/uptime-downtime [get]
func (h *AnalyticsHandler) UptimeDowntime(c *fiber.Ctx) error {
	out, err := h.uc.UptimeDowntime(c.UserContext(), c.Params("id"), c.Query("start_date"), c.Query("end_date"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// OperationalHours godoc
// @Summary      Mapa de calor de actividad por día y hora
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true  "ID del controlador"
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.HeatmapResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/controllers/{id}/operational-hours [get]
func (h *AnalyticsHandler) OperationalHours(c *fiber.Ctx) error {
	out, err := h.uc.OperationalHours(c.UserContext(), c.Params("id"), c.Query("start_date"), c.Query("end_date"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SensorCorrelation godoc
// @Summary      Correlación de Pearson entre sensores
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del controlador"
// @Param        hours  query  int     false  "Ventana en horas (default 24)"
// @Success      200  {object}  dto.CorrelationResponse
// @Router       /api/controllers/{id}/sensor-correlation [get]
func (h *AnalyticsHandler) SensorCorrelation(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 0)
	if hours < 0 {
		return badRequest(c, "VALIDATION", "hours debe ser positivo")
	}
	out, err := h.uc.SensorCorrelation(c.UserContext(), c.Params("id"), hours, GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Changes godoc
// @Summary      Cambios de estado de los sensores en los últimos 7 días
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del controlador"
// @Success      200  {object}  dto.ChangesResponse
// @Router       /api/controllers/{id}/changes [get]
func (h *AnalyticsHandler) Changes(c *fiber.Ctx) error {
	out, err := h.uc.Changes(c.UserContext(), c.Params("id"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Timeline godoc
// @Summary      Señales de los últimos 7 días con estado de conexión
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del controlador"
// @Success      200  {object}  dto.TimelineResponse
// @Router       /api/controllers/{id}/timeline [get]
func (h *AnalyticsHandler) Timeline(c *fiber.Ctx) error {
	out, err := h.uc.Timeline(c.UserContext(), c.Params("id"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UptimeReport godoc
// @Summary      Reporte PDF de disponibilidad
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        id          path   string  true  "ID del controlador"
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/controllers/{id}/reports/uptime.pdf [get]
func (h *AnalyticsHandler) UptimeReport(c *fiber.Ctx) error {
	out, err := h.uc.UptimeReport(c.UserContext(), c.Params("id"), c.Query("start_date"), c.Query("end_date"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="uptime-`+c.Params("id")+`.pdf"`)
	return c.Send(out)
}

// Track godoc
// @Summary      Recorrido del controlador en KML
// @Tags         analytics
// @Security     Bearer
// @Produce      application/vnd.google-earth.kml+xml
// @Param        id          path   string  true  "ID del controlador"
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/controllers/{id}/track.kml [get]
func (h *AnalyticsHandler) Track(c *fiber.Ctx) error {
	out, err := h.uc.Track(c.UserContext(), c.Params("id"), c.Query("start_date"), c.Query("end_date"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.google-earth.kml+xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="track-`+c.Params("id")+`.kml"`)
	return c.Send(out)
}
