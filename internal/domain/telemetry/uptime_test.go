package telemetry_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/telemetry"
)

func assertInterval(t *testing.T, iv telemetry.Interval, kind telemetry.IntervalKind, start, end time.Time) {
	t.Helper()
	assert.Equal(t, kind, iv.Kind)
	assert.True(t, iv.Start.Equal(start), "start esperado %s, obtenido %s", start, iv.Start)
	assert.True(t, iv.End.Equal(end), "end esperado %s, obtenido %s", end, iv.End)
}

func dayWindow(t *testing.T, from, to string) telemetry.Window {
	t.Helper()
	w, err := telemetry.ParseWindow(from, to, time.UTC)
	require.NoError(t, err)
	return w
}

// ──────────────────────────────────────────────────────────────────────────────
// Dos señales separadas 10 minutos con umbral de 5: downtime entre ambas y un
// uptime tras cada una.
// ──────────────────────────────────────────────────────────────────────────────
func TestBuildUptimeIntervals_HuecoGeneraDowntime(t *testing.T) {
	w := dayWindow(t, "2024-03-10", "2024-03-10")

	got := telemetry.BuildUptimeIntervals([]*entity.Signal{sig(at(0)), sig(at(10))}, w, 5*time.Minute)

	day := got["2024-03-10"]
	require.Len(t, day, 3)
	assertInterval(t, day[0], telemetry.Uptime, at(0), at(5))
	assertInterval(t, day[1], telemetry.Downtime, at(0), at(10))
	assertInterval(t, day[2], telemetry.Uptime, at(10), at(15))
}

func TestBuildUptimeIntervals_SinSenalesTodosLosDiasVacios(t *testing.T) {
	w := dayWindow(t, "2024-03-10", "2024-03-12")

	got := telemetry.BuildUptimeIntervals(nil, w, 5*time.Minute)

	require.Len(t, got, 3)
	for _, day := range []string{"2024-03-10", "2024-03-11", "2024-03-12"} {
		list, ok := got[day]
		require.True(t, ok, day)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	}
}

func TestBuildUptimeIntervals_HuecoIgualAlUmbralNoEsDowntime(t *testing.T) {
	w := dayWindow(t, "2024-03-10", "2024-03-10")

	got := telemetry.BuildUptimeIntervals([]*entity.Signal{sig(at(0)), sig(at(5))}, w, 5*time.Minute)

	day := got["2024-03-10"]
	require.Len(t, day, 1, "ventanas contiguas se fusionan")
	assertInterval(t, day[0], telemetry.Uptime, at(0), at(10))
}

func TestBuildUptimeIntervals_SenalesFrecuentesSeFusionan(t *testing.T) {
	w := dayWindow(t, "2024-03-10", "2024-03-10")
	signals := []*entity.Signal{sig(at(0)), sig(at(1)), sig(at(2)), sig(at(3))}

	got := telemetry.BuildUptimeIntervals(signals, w, 5*time.Minute)

	day := got["2024-03-10"]
	require.Len(t, day, 1)
	assertInterval(t, day[0], telemetry.Uptime, at(0), at(8))
}

func TestBuildUptimeIntervals_IntervaloVaAlDiaDeInicio(t *testing.T) {
	w := dayWindow(t, "2024-03-10", "2024-03-11")
	late := time.Date(2024, 3, 10, 23, 58, 0, 0, time.UTC)
	early := time.Date(2024, 3, 11, 0, 10, 0, 0, time.UTC)

	got := telemetry.BuildUptimeIntervals([]*entity.Signal{sig(late), sig(early)}, w, 5*time.Minute)

	first := got["2024-03-10"]
	require.Len(t, first, 2)
	assertInterval(t, first[0], telemetry.Uptime, late, late.Add(5*time.Minute))
	assertInterval(t, first[1], telemetry.Downtime, late, early)

	second := got["2024-03-11"]
	require.Len(t, second, 1)
	assertInterval(t, second[0], telemetry.Uptime, early, early.Add(5*time.Minute))
}

func TestBuildUptimeIntervals_IgnoraSenalesFueraDeVentana(t *testing.T) {
	w := dayWindow(t, "2024-03-10", "2024-03-10")
	outside := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)

	got := telemetry.BuildUptimeIntervals([]*entity.Signal{sig(outside), sig(at(0))}, w, 5*time.Minute)

	require.Len(t, got, 1)
	day := got["2024-03-10"]
	require.Len(t, day, 1, "la señal del día anterior no genera downtime")
	assertInterval(t, day[0], telemetry.Uptime, at(0), at(5))
}

func TestBuildUptimeIntervals_OrdenaLaEntrada(t *testing.T) {
	w := dayWindow(t, "2024-03-10", "2024-03-10")

	got := telemetry.BuildUptimeIntervals([]*entity.Signal{sig(at(10)), sig(at(0))}, w, 5*time.Minute)

	day := got["2024-03-10"]
	require.Len(t, day, 3)
	assertInterval(t, day[1], telemetry.Downtime, at(0), at(10))
}

func TestBuildUptimeIntervals_UmbralCeroUsaDefault(t *testing.T) {
	w := dayWindow(t, "2024-03-10", "2024-03-10")

	got := telemetry.BuildUptimeIntervals([]*entity.Signal{sig(at(0))}, w, 0)

	require.Len(t, got["2024-03-10"], 1)
	assertInterval(t, got["2024-03-10"][0], telemetry.Uptime, at(0), at(5))
}

func TestBuildUptimeIntervals_SinSolapesDelMismoTipo(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	w := dayWindow(t, "2024-03-10", "2024-03-12")

	for round := 0; round < 50; round++ {
		var signals []*entity.Signal
		ts := w.Start()
		for i := 0; i < 200; i++ {
			ts = ts.Add(time.Duration(rng.Intn(20*60)) * time.Second)
			signals = append(signals, sig(ts))
		}

		got := telemetry.BuildUptimeIntervals(signals, w, 5*time.Minute)

		for day, list := range got {
			for i := range list {
				for j := i + 1; j < len(list); j++ {
					a, b := list[i], list[j]
					if a.Kind != b.Kind {
						continue
					}
					overlap := a.Start.Before(b.End) && b.Start.Before(a.End)
					assert.False(t, overlap, "día %s: %v solapa con %v", day, a, b)
				}
			}
		}
	}
}

func TestDailyActivity_Totals(t *testing.T) {
	w := dayWindow(t, "2024-03-10", "2024-03-10")

	up, down := telemetry.BuildUptimeIntervals([]*entity.Signal{sig(at(0)), sig(at(10))}, w, 5*time.Minute).Totals()

	assert.Equal(t, 10*time.Minute, up)
	assert.Equal(t, 10*time.Minute, down)
}
