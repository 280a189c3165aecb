// Package telemetry deriva información operativa a partir de las señales de un controlador:
// estado de conexión, intervalos de actividad, mapa de calor, correlación entre sensores y
// cambios de estado. Todas las funciones son puras; el reloj y los umbrales llegan como argumentos.
package telemetry

import (
	"sort"
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// DayLayout formato de las claves de día en los resultados (YYYY-MM-DD).
const DayLayout = "2006-01-02"

// Window rango de días calendario [primer día, último día] en una zona horaria.
type Window struct {
	start time.Time // medianoche del primer día
	end   time.Time // medianoche del día siguiente al último (exclusivo)
	loc   *time.Location
}

// NewWindow construye la ventana con los días de startDay y endDay interpretados en loc.
// Retorna domain.ErrInvalidTimeRange si endDay es anterior a startDay.
func NewWindow(startDay, endDay time.Time, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := midnight(startDay.In(loc))
	e := midnight(endDay.In(loc))
	if e.Before(s) {
		return Window{}, domain.ErrInvalidTimeRange
	}
	return Window{start: s, end: e.AddDate(0, 0, 1), loc: loc}, nil
}

// ParseWindow interpreta fechas YYYY-MM-DD en loc.
func ParseWindow(startDate, endDate string, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	s, err := time.ParseInLocation(DayLayout, startDate, loc)
	if err != nil {
		return Window{}, domain.ErrInvalidInput
	}
	e, err := time.ParseInLocation(DayLayout, endDate, loc)
	if err != nil {
		return Window{}, domain.ErrInvalidInput
	}
	return NewWindow(s, e, loc)
}

// Start inicio inclusivo de la ventana.
func (w Window) Start() time.Time { return w.start }

// End fin exclusivo (medianoche posterior al último día).
func (w Window) End() time.Time { return w.end }

// Location zona horaria en la que se calculan los días.
func (w Window) Location() *time.Location {
	if w.loc == nil {
		return time.UTC
	}
	return w.loc
}

// Contains informa si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

// Days devuelve las claves de todos los días de la ventana en orden.
func (w Window) Days() []string {
	var days []string
	for d := w.start; d.Before(w.end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DayLayout))
	}
	return days
}

// DayOf clave del día al que pertenece t en la zona de la ventana.
func (w Window) DayOf(t time.Time) string {
	return t.In(w.Location()).Format(DayLayout)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sortedIn copia las señales que cumplen keep ordenadas por timestamp ascendente.
func sortedIn(signals []*entity.Signal, keep func(time.Time) bool) []*entity.Signal {
	out := make([]*entity.Signal, 0, len(signals))
	for _, s := range signals {
		if s != nil && keep(s.Timestamp) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
