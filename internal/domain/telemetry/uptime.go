package telemetry

import (
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// DefaultGapThreshold hueco entre señales a partir del cual se registra downtime.
const DefaultGapThreshold = 5 * time.Minute

// IntervalKind uptime | downtime.
type IntervalKind string

const (
	Uptime   IntervalKind = "uptime"
	Downtime IntervalKind = "downtime"
)

// Interval tramo [Start, End) clasificado como actividad o silencio del controlador.
type Interval struct {
	Start time.Time
	End   time.Time
	Kind  IntervalKind
}

// DailyActivity día (YYYY-MM-DD) -> intervalos en orden de aparición.
type DailyActivity map[string][]Interval

// BuildUptimeIntervals recorre las señales en orden. Si el hueco con la anterior supera gap
// agrega downtime [anterior, actual); luego agrega uptime [actual, actual+gap).
// Cada intervalo va al día en que empieza y nunca se parte a medianoche. Un uptime que empieza
// antes de terminar el uptime previo del mismo día se fusiona con él.
func BuildUptimeIntervals(signals []*entity.Signal, window Window, gap time.Duration) DailyActivity {
	if gap <= 0 {
		gap = DefaultGapThreshold
	}
	loc := window.Location()

	activity := make(DailyActivity)
	for _, day := range window.Days() {
		activity[day] = []Interval{}
	}

	var last time.Time
	hasLast := false
	for _, s := range sortedIn(signals, window.Contains) {
		ts := s.Timestamp.In(loc)
		if hasLast && ts.Sub(last) > gap {
			day := window.DayOf(last)
			activity[day] = append(activity[day], Interval{Start: last, End: ts, Kind: Downtime})
		}
		activity.addUptime(window.DayOf(ts), Interval{Start: ts, End: ts.Add(gap), Kind: Uptime})
		last, hasLast = ts, true
	}
	return activity
}

func (a DailyActivity) addUptime(day string, iv Interval) {
	list := a[day]
	if n := len(list); n > 0 {
		prev := &list[n-1]
		if prev.Kind == Uptime && !iv.Start.After(prev.End) {
			if iv.End.After(prev.End) {
				prev.End = iv.End
			}
			return
		}
	}
	a[day] = append(list, iv)
}

// Totals suma la duración de uptime y downtime de todos los días.
func (a DailyActivity) Totals() (up, down time.Duration) {
	for _, list := range a {
		for _, iv := range list {
			switch iv.Kind {
			case Uptime:
				up += iv.End.Sub(iv.Start)
			case Downtime:
				down += iv.End.Sub(iv.Start)
			}
		}
	}
	return up, down
}
