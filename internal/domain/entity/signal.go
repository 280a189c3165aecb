package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SensorCount canales booleanos que reporta cada controlador.
const SensorCount = 6

// SensorNames nombres de los canales en el orden del arreglo SensorValues.
var SensorNames = [SensorCount]string{"sensor1", "sensor2", "sensor3", "sensor4", "sensor5", "sensor6"}

// SensorValues lecturas de los seis canales; el índice 0 es sensor1.
type SensorValues [SensorCount]bool

// Sensor1..Sensor6 accesores con nombre.
func (v SensorValues) Sensor1() bool { return v[0] }
func (v SensorValues) Sensor2() bool { return v[1] }
func (v SensorValues) Sensor3() bool { return v[2] }
func (v SensorValues) Sensor4() bool { return v[3] }
func (v SensorValues) Sensor5() bool { return v[4] }
func (v SensorValues) Sensor6() bool { return v[5] }

// Active es verdadero si al menos un canal está encendido.
func (v SensorValues) Active() bool {
	for _, on := range v {
		if on {
			return true
		}
	}
	return false
}

// Map expone los valores con las claves sensorN (formato de respuesta).
func (v SensorValues) Map() map[string]bool {
	m := make(map[string]bool, SensorCount)
	for i, on := range v {
		m[SensorNames[i]] = on
	}
	return m
}

// Mask codifica los canales como entero de 6 bits (bit i = sensor i+1).
func (v SensorValues) Mask() int {
	mask := 0
	for i, on := range v {
		if on {
			mask |= 1 << i
		}
	}
	return mask
}

// Signal muestra de telemetría inmutable. Solo referencia a su controlador por ID.
type Signal struct {
	ID           string
	ControllerID string
	Timestamp    time.Time
	Sensors      SensorValues
	Latitude     *decimal.Decimal // nil si el equipo no reportó posición
	Longitude    *decimal.Decimal
	Metadata     map[string]any
	CreatedAt    time.Time
}

// HasLocation informa si la señal trae coordenadas.
func (s *Signal) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}
