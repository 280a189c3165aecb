package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

func TestGenerateUptimeReport_DevuelvePDF(t *testing.T) {
	t0 := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	report := &dto.UptimeResponse{
		ControllerID: "ctl-1",
		StartDate:    "2024-03-10",
		EndDate:      "2024-03-10",
		DailyActivity: map[string][]dto.IntervalDTO{
			"2024-03-10": {
				{Start: t0, End: t0.Add(5 * time.Minute), Type: "uptime"},
				{Start: t0, End: t0.Add(10 * time.Minute), Type: "downtime"},
			},
		},
		UptimeMinutes:   decimal.NewFromInt(5),
		DowntimeMinutes: decimal.NewFromInt(10),
		UptimePercent:   decimal.RequireFromString("33.33"),
	}
	ctl := &entity.Controller{ID: "ctl-1", Name: "Bomba norte", Address: "3001234567"}

	out, err := NewUptimeReportGenerator().GenerateUptimeReport(ctl, report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateUptimeReport_SinIntervalos(t *testing.T) {
	report := &dto.UptimeResponse{DailyActivity: map[string][]dto.IntervalDTO{}}

	out, err := NewUptimeReportGenerator().GenerateUptimeReport(&entity.Controller{ID: "ctl-1", Name: "X"}, report)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMinutes(t *testing.T) {
	assert.Equal(t, "7.5", minutes(7*time.Minute+30*time.Second))
}
