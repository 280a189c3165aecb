package telemetry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/telemetry"
)

func TestDetectChanges_SenalesIdenticasNoEmiten(t *testing.T) {
	var signals []*entity.Signal
	for i := 0; i < 5; i++ {
		signals = append(signals, sig(at(i), true, false, true))
	}

	got := telemetry.DetectChanges(signals, 0, at(10))

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDetectChanges_UnEventoPorSenalConCanalesAgrupados(t *testing.T) {
	signals := []*entity.Signal{
		sig(at(0), true, false),
		sig(at(1), false, true),
		sig(at(2), false, true),
		sig(at(3), false, true, false, false, false, true),
	}

	got := telemetry.DetectChanges(signals, time.Hour, at(5))

	require.Len(t, got, 2)
	assert.True(t, got[0].Timestamp.Equal(at(1)))
	assert.Equal(t, []telemetry.SensorChange{
		{Sensor: "sensor1", OldValue: true, NewValue: false},
		{Sensor: "sensor2", OldValue: false, NewValue: true},
	}, got[0].Changes)
	assert.True(t, got[1].Timestamp.Equal(at(3)))
	assert.Equal(t, []telemetry.SensorChange{{Sensor: "sensor6", OldValue: false, NewValue: true}}, got[1].Changes)
}

func TestDetectChanges_EmiteSiiElCanalDifiere(t *testing.T) {
	for c := 0; c < entity.SensorCount; c++ {
		a := sig(at(0))
		b := sig(at(1))
		b.Sensors[c] = true

		got := telemetry.DetectChanges([]*entity.Signal{a, b}, time.Hour, at(2))

		require.Len(t, got, 1)
		require.Len(t, got[0].Changes, 1)
		assert.Equal(t, entity.SensorNames[c], got[0].Changes[0].Sensor)
	}
}

func TestDetectChanges_PrimeraSenalDeLaVentanaNoEmite(t *testing.T) {
	signals := []*entity.Signal{
		sig(at(0), true),
		sig(at(60), false),
		sig(at(61), true),
	}

	// La ventana empieza en at(30): at(60) no tiene antecesora dentro de ella.
	got := telemetry.DetectChanges(signals, 30*time.Minute, at(60))

	assert.Empty(t, got)
}

func TestDetectChanges_VentanaPorDefectoSieteDias(t *testing.T) {
	now := at(0)
	signals := []*entity.Signal{
		sig(now.Add(-8*24*time.Hour), true),
		sig(now.Add(-6*24*time.Hour), false),
		sig(now.Add(-5*24*time.Hour), true),
	}

	got := telemetry.DetectChanges(signals, 0, now)

	require.Len(t, got, 1)
	assert.True(t, got[0].Timestamp.Equal(now.Add(-5*24*time.Hour)))
}

func TestDetectChanges_EntradaDesordenada(t *testing.T) {
	signals := []*entity.Signal{sig(at(2), true), sig(at(0)), sig(at(1))}

	got := telemetry.DetectChanges(signals, time.Hour, at(3))

	require.Len(t, got, 1)
	assert.True(t, got[0].Timestamp.Equal(at(2)))
}
