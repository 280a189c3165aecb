package telemetry

import (
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// DefaultChangesWindow ventana del detector de cambios.
const DefaultChangesWindow = 7 * 24 * time.Hour

// SensorChange transición de un canal entre dos señales consecutivas.
type SensorChange struct {
	Sensor   string
	OldValue bool
	NewValue bool
}

// ChangeEvent cambios detectados en la señal de Timestamp respecto a la anterior.
type ChangeEvent struct {
	Timestamp time.Time
	Changes   []SensorChange
}

// DetectChanges compara pares consecutivos de señales dentro de [now-window, now] y emite un
// evento por señal que difiere de su antecesora. La primera señal de la ventana no emite nada.
// window <= 0 usa DefaultChangesWindow.
func DetectChanges(signals []*entity.Signal, window time.Duration, now time.Time) []ChangeEvent {
	if window <= 0 {
		window = DefaultChangesWindow
	}
	from := now.Add(-window)
	inRange := sortedIn(signals, func(t time.Time) bool {
		return !t.Before(from) && !t.After(now)
	})

	events := []ChangeEvent{}
	for i := 1; i < len(inRange); i++ {
		prev, cur := inRange[i-1].Sensors, inRange[i].Sensors
		if prev == cur {
			continue
		}
		var changes []SensorChange
		for c := range cur {
			if prev[c] != cur[c] {
				changes = append(changes, SensorChange{
					Sensor:   entity.SensorNames[c],
					OldValue: prev[c],
					NewValue: cur[c],
				})
			}
		}
		events = append(events, ChangeEvent{Timestamp: inRange[i].Timestamp, Changes: changes})
	}
	return events
}
