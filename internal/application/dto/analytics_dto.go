package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntervalDTO tramo de actividad o silencio.
type IntervalDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // uptime | downtime
}

// UptimeResponse intervalos por día más totales del rango.
type UptimeResponse struct {
	ControllerID    string                   `json:"controller_id"`
	StartDate       string                   `json:"start_date"`
	EndDate         string                   `json:"end_date"`
	DailyActivity   map[string][]IntervalDTO `json:"daily_activity"`
	UptimeMinutes   decimal.Decimal          `json:"uptime_minutes" swaggertype:"number"`
	DowntimeMinutes decimal.Decimal          `json:"downtime_minutes" swaggertype:"number"`
	UptimePercent   decimal.Decimal          `json:"uptime_percentage" swaggertype:"number"`
}

// HeatmapResponse minutos de actividad por día y hora.
type HeatmapResponse struct {
	ControllerID   string             `json:"controller_id"`
	StartDate      string             `json:"start_date"`
	EndDate        string             `json:"end_date"`
	HourlyActivity map[string][24]int `json:"hourly_activity"`
}

// CorrelationResponse matriz de correlación entre sensores.
type CorrelationResponse struct {
	ControllerID string                        `json:"controller_id"`
	Hours        int                           `json:"hours"`
	SampleSize   int                           `json:"sample_size"`
	Correlation  map[string]map[string]float64 `json:"correlation_matrix"`
}

// SensorChangeDTO transición de un canal.
type SensorChangeDTO struct {
	Sensor   string `json:"sensor"`
	OldValue bool   `json:"old_value"`
	NewValue bool   `json:"new_value"`
}

// ChangeEventDTO cambios en una señal respecto a la anterior.
type ChangeEventDTO struct {
	Timestamp time.Time         `json:"timestamp"`
	Changes   []SensorChangeDTO `json:"changes"`
}

// ChangesResponse eventos de cambio de la ventana.
type ChangesResponse struct {
	ControllerID string           `json:"controller_id"`
	Changes      []ChangeEventDTO `json:"changes"`
}

// TimelinePointDTO señal con indicador de conexión.
type TimelinePointDTO struct {
	SignalResponse
	Status string `json:"status"` // connected | disconnected
}

// TimelineResponse señales de los últimos días con su estado.
type TimelineResponse struct {
	ControllerID string             `json:"controller_id"`
	SensorConfig map[string]any     `json:"sensor_config"`
	Timeline     []TimelinePointDTO `json:"timeline"`
}
