package telemetry

import "github.com/jhoicas/Telemetria-api/internal/domain/entity"

// ActivityWeight minutos equivalentes que aporta cada señal activa a su hora.
const ActivityWeight = 5

// Heatmap día (YYYY-MM-DD) -> 24 acumulados por hora.
type Heatmap map[string][24]int

// BuildHeatmap suma ActivityWeight en la hora de cada señal con algún sensor encendido.
// Las señales inactivas no aportan. Todos los días de la ventana están presentes.
func BuildHeatmap(signals []*entity.Signal, window Window) Heatmap {
	loc := window.Location()

	hm := make(Heatmap)
	for _, day := range window.Days() {
		hm[day] = [24]int{}
	}
	for _, s := range signals {
		if s == nil || !window.Contains(s.Timestamp) || !s.Sensors.Active() {
			continue
		}
		ts := s.Timestamp.In(loc)
		day := ts.Format(DayLayout)
		hours := hm[day]
		hours[ts.Hour()] += ActivityWeight
		hm[day] = hours
	}
	return hm
}
