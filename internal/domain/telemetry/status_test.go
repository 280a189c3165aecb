package telemetry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/telemetry"
)

func TestEvaluateConnection_SinSenalEsOffline(t *testing.T) {
	st := telemetry.EvaluateConnection(nil, t0, 5*time.Minute)
	assert.Equal(t, telemetry.Offline, st.State)
	assert.Nil(t, st.LastSeen)
}

func TestEvaluateConnection_BordeEsOnline(t *testing.T) {
	last := t0
	st := telemetry.EvaluateConnection(&last, t0.Add(5*time.Minute), 5*time.Minute)
	assert.Equal(t, telemetry.Online, st.State)
	require.NotNil(t, st.LastSeen)
	assert.True(t, st.LastSeen.Equal(last))
}

func TestEvaluateConnection_PasadoElUmbralEsOffline(t *testing.T) {
	last := t0
	st := telemetry.EvaluateConnection(&last, t0.Add(5*time.Minute+time.Nanosecond), 5*time.Minute)
	assert.Equal(t, telemetry.Offline, st.State)
	assert.False(t, st.IsOnline())
}

func TestEvaluateConnection_UmbralCeroSeRespeta(t *testing.T) {
	last := t0
	assert.True(t, telemetry.EvaluateConnection(&last, t0, 0).IsOnline(), "misma marca de tiempo")
	assert.False(t, telemetry.EvaluateConnection(&last, t0.Add(time.Second), 0).IsOnline())
}

func TestEvaluateConnection_OfflineSiiSuperaUmbral(t *testing.T) {
	threshold := 90 * time.Second
	last := t0
	for age := time.Duration(0); age <= 3*time.Minute; age += 15 * time.Second {
		st := telemetry.EvaluateConnection(&last, t0.Add(age), threshold)
		assert.Equal(t, age > threshold, st.State == telemetry.Offline, "age=%s", age)
	}
}

func TestEvaluateConnection_NoAliasaElPuntero(t *testing.T) {
	last := t0
	st := telemetry.EvaluateConnection(&last, t0, time.Minute)
	last = last.Add(time.Hour)
	assert.True(t, st.LastSeen.Equal(t0))
}

func TestLastSeen_SinOrden(t *testing.T) {
	got := telemetry.LastSeen([]*entity.Signal{sig(at(10)), sig(at(30)), sig(at(20))})
	require.NotNil(t, got)
	assert.True(t, got.Equal(at(30)))
	assert.Nil(t, telemetry.LastSeen(nil))
}
