package telemetry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/telemetry"
)

func TestParseWindow_DiasInclusivos(t *testing.T) {
	w, err := telemetry.ParseWindow("2024-02-28", "2024-03-01", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, w.Days())
	assert.True(t, w.Contains(time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 2, 27, 23, 59, 59, 0, time.UTC)))
}

func TestParseWindow_FinAnteriorAlInicio(t *testing.T) {
	_, err := telemetry.ParseWindow("2024-03-10", "2024-03-09", time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestParseWindow_FormatoInvalido(t *testing.T) {
	_, err := telemetry.ParseWindow("10/03/2024", "2024-03-09", time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewWindow_UnSoloDia(t *testing.T) {
	w, err := telemetry.NewWindow(t0, t0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-10"}, w.Days())
	assert.Equal(t, 24*time.Hour, w.End().Sub(w.Start()))
}

func TestWindow_DayOfUsaZonaDeLaVentana(t *testing.T) {
	cot := time.FixedZone("COT", -5*3600)
	w, err := telemetry.ParseWindow("2024-03-09", "2024-03-10", cot)
	require.NoError(t, err)

	// 03:00 UTC del 10 son las 22:00 del 9 en UTC-5.
	assert.Equal(t, "2024-03-09", w.DayOf(time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)))
}
