package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Telemetria-api/internal/application/analytics"
	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
)

// SignalHandler entrada de señales y consulta por rango.
type SignalHandler struct {
	ingest    *ingestion.IngestUseCase
	analytics *analytics.ControllerAnalyticsUseCase
}

// NewSignalHandler construye el handler.
func NewSignalHandler(ingest *ingestion.IngestUseCase, reader *analytics.ControllerAnalyticsUseCase) *SignalHandler {
	return &SignalHandler{ingest: ingest, analytics: reader}
}

// Input godoc
// @Summary      Recibir señal de un controlador
// @Description  Endpoint público usado por los equipos. sensor_states acepta arreglo de 6 valores, objeto sensorN o máscara de 6 bits.
// @Tags         signals
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignalInput  true  "Señal"
// @Success      201   {object}  dto.SignalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/signals/input [post]
func (h *SignalHandler) Input(c *fiber.Ctx) error {
	var in dto.SignalInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.ingest.Ingest(c.UserContext(), ingestion.SourceHTTP, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Señales de un controlador en un rango de días
// @Tags         signals
// @Produce      json
// @Security     Bearer
// @Param        id          path   string  true  "ID del controlador"
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.SignalListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/controllers/{id}/signals [get]
func (h *SignalHandler) List(c *fiber.Ctx) error {
	out, err := h.analytics.Signals(c.UserContext(), c.Params("id"), c.Query("start_date"), c.Query("end_date"), GetPermissions(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
