package telemetry_test

import (
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

var t0 = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func sig(ts time.Time, sensors ...bool) *entity.Signal {
	var v entity.SensorValues
	copy(v[:], sensors)
	return &entity.Signal{ControllerID: "ctrl-1", Timestamp: ts, Sensors: v}
}

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}
