package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// SignalInput señal recibida de un controlador (HTTP o MQTT).
// SensorStates admite arreglo de 6 bool/0-1, objeto sensorN|value_sensorN o máscara de 6 bits.
type SignalInput struct {
	ControllerAddress string           `json:"controlador_id" validate:"required"`
	SensorStates      json.RawMessage  `json:"sensor_states" validate:"required" swaggertype:"object"`
	Latitude          *decimal.Decimal `json:"latitude,omitempty" swaggertype:"number"`
	Longitude         *decimal.Decimal `json:"longitude,omitempty" swaggertype:"number"`
	Metadata          map[string]any   `json:"metadata,omitempty"`
	Timestamp         *time.Time       `json:"tstamp,omitempty"`
	// MessageID identificador de entrega para descartar reenvíos; opcional.
	MessageID string `json:"message_id,omitempty"`
}

// SignalResponse salida de una señal.
type SignalResponse struct {
	ID           string           `json:"id"`
	ControllerID string           `json:"controller_id"`
	Timestamp    time.Time        `json:"tstamp"`
	Sensors      map[string]bool  `json:"sensors"`
	Active       bool             `json:"active"`
	Latitude     *decimal.Decimal `json:"latitude,omitempty" swaggertype:"number"`
	Longitude    *decimal.Decimal `json:"longitude,omitempty" swaggertype:"number"`
	Metadata     map[string]any   `json:"metadata,omitempty"`
}

// SignalListResponse señales de un controlador en un rango.
type SignalListResponse struct {
	ControllerID string           `json:"controller_id"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	Items        []SignalResponse `json:"items"`
}

// SignalSummaryDTO resumen de señales por controlador.
type SignalSummaryDTO struct {
	ControllerID   string          `json:"controller_id"`
	Name           string          `json:"name"`
	LastSignalTime *time.Time      `json:"last_signal_time"`
	SignalCount    int             `json:"signal_count"`
	LatestValues   map[string]bool `json:"latest_values"`
}

// NewSignalResponse construye la salida de una señal.
func NewSignalResponse(s *entity.Signal) SignalResponse {
	return SignalResponse{
		ID:           s.ID,
		ControllerID: s.ControllerID,
		Timestamp:    s.Timestamp,
		Sensors:      s.Sensors.Map(),
		Active:       s.Sensors.Active(),
		Latitude:     s.Latitude,
		Longitude:    s.Longitude,
		Metadata:     s.Metadata,
	}
}

// NewSignalResponses mapea una lista conservando el orden; nunca devuelve nil.
func NewSignalResponses(signals []*entity.Signal) []SignalResponse {
	out := make([]SignalResponse, 0, len(signals))
	for _, s := range signals {
		out = append(out, NewSignalResponse(s))
	}
	return out
}
