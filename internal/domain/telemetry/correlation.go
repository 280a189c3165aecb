package telemetry

import (
	"math"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// CorrelationMatrix canal -> canal -> coeficiente de Pearson en [-1, 1].
type CorrelationMatrix map[string]map[string]float64

// ComputeCorrelation correlaciona los seis canales tomados como series 0/1 alineadas por posición.
//
// Con señales, la diagonal es 1.0 y un par con algún canal constante vale 0.0.
// Sin señales la matriz es toda 0.0, incluida la diagonal.
func ComputeCorrelation(signals []*entity.Signal) CorrelationMatrix {
	var series [entity.SensorCount][]float64
	for _, s := range signals {
		if s == nil {
			continue
		}
		for c, on := range s.Sensors {
			v := 0.0
			if on {
				v = 1
			}
			series[c] = append(series[c], v)
		}
	}
	n := len(series[0])

	m := make(CorrelationMatrix, entity.SensorCount)
	for a, nameA := range entity.SensorNames {
		row := make(map[string]float64, entity.SensorCount)
		for b, nameB := range entity.SensorNames {
			switch {
			case n == 0:
				row[nameB] = 0
			case a == b:
				row[nameB] = 1
			default:
				row[nameB] = pearson(series[a], series[b])
			}
		}
		m[nameA] = row
	}
	return m
}

// pearson devuelve 0 si alguna serie tiene varianza cero.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n < 2 {
		return 0
	}
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	r := sxy / math.Sqrt(sxx*syy)
	return math.Max(-1, math.Min(1, r))
}
