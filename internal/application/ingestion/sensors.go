package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// DecodeSensorStates interpreta los estados de los seis canales en cualquiera de los formatos aceptados:
//   - arreglo de 6 elementos bool o 0/1: [true,false,1,0,0,1]
//   - objeto con claves sensorN o value_sensorN: {"sensor1":true,"value_sensor2":0}
//   - entero de 6 bits, bit i = sensor i+1: 37
//
// Los canales ausentes en el objeto quedan apagados. Cualquier otra forma devuelve ErrInvalidSignal.
func DecodeSensorStates(raw json.RawMessage) (entity.SensorValues, error) {
	var values entity.SensorValues
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return values, fmt.Errorf("%w: sensor_states vacío", domain.ErrInvalidSignal)
	}
	switch data[0] {
	case '[':
		return decodeArray(data)
	case '{':
		return decodeObject(data)
	default:
		return decodeMask(data)
	}
}

func decodeArray(data []byte) (entity.SensorValues, error) {
	var values entity.SensorValues
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return values, fmt.Errorf("%w: sensor_states: %v", domain.ErrInvalidSignal, err)
	}
	if len(items) != entity.SensorCount {
		return values, fmt.Errorf("%w: se esperaban %d sensores, llegaron %d", domain.ErrInvalidSignal, entity.SensorCount, len(items))
	}
	for i, item := range items {
		on, err := decodeBool(item)
		if err != nil {
			return values, fmt.Errorf("%w: %s: %v", domain.ErrInvalidSignal, entity.SensorNames[i], err)
		}
		values[i] = on
	}
	return values, nil
}

func decodeObject(data []byte) (entity.SensorValues, error) {
	var values entity.SensorValues
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return values, fmt.Errorf("%w: sensor_states: %v", domain.ErrInvalidSignal, err)
	}
	for key, item := range fields {
		idx := sensorIndex(key)
		if idx < 0 {
			return values, fmt.Errorf("%w: clave desconocida %q", domain.ErrInvalidSignal, key)
		}
		on, err := decodeBool(item)
		if err != nil {
			return values, fmt.Errorf("%w: %s: %v", domain.ErrInvalidSignal, key, err)
		}
		values[idx] = on
	}
	return values, nil
}

func decodeMask(data []byte) (entity.SensorValues, error) {
	var values entity.SensorValues
	var mask int
	if err := json.Unmarshal(data, &mask); err != nil {
		return values, fmt.Errorf("%w: sensor_states: %v", domain.ErrInvalidSignal, err)
	}
	if mask < 0 || mask >= 1<<entity.SensorCount {
		return values, fmt.Errorf("%w: máscara fuera de rango: %d", domain.ErrInvalidSignal, mask)
	}
	for i := range values {
		values[i] = mask&(1<<i) != 0
	}
	return values, nil
}

// sensorIndex resuelve sensorN o value_sensorN al índice del arreglo; -1 si no corresponde.
func sensorIndex(key string) int {
	name := strings.TrimPrefix(strings.ToLower(key), "value_")
	for i, n := range entity.SensorNames {
		if n == name {
			return i
		}
	}
	return -1
}

func decodeBool(item json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(item, &b); err == nil {
		return b, nil
	}
	var n int
	if err := json.Unmarshal(item, &n); err != nil || (n != 0 && n != 1) {
		return false, fmt.Errorf("valor no booleano %s", string(item))
	}
	return n == 1, nil
}
