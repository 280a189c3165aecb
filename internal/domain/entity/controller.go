package entity

import "time"

// Controller representa un dispositivo de campo. Address (número telefónico) es la clave
// con la que llegan sus señales y es única en todo el sistema.
type Controller struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Config    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Claves obligatorias al reemplazar la configuración de un controlador.
const (
	ConfigSensorTypes  = "sensor_types"
	ConfigThresholds   = "thresholds"
	ConfigSamplingRate = "sampling_rate"
)
