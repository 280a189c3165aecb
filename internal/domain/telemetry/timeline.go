package telemetry

import (
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// TimelinePoint señal acompañada del estado de conexión que indica su antigüedad.
type TimelinePoint struct {
	Signal    *entity.Signal
	Connected bool
}

// BuildTimeline ordena las señales y marca cada una con EvaluateConnection(tstamp, now, threshold):
// conectada si now - tstamp <= threshold.
func BuildTimeline(signals []*entity.Signal, now time.Time, threshold time.Duration) []TimelinePoint {
	ordered := sortedIn(signals, func(time.Time) bool { return true })

	points := make([]TimelinePoint, len(ordered))
	for i, s := range ordered {
		ts := s.Timestamp
		points[i] = TimelinePoint{Signal: s, Connected: EvaluateConnection(&ts, now, threshold).IsOnline()}
	}
	return points
}
