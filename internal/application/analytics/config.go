// Package analytics contiene los casos de uso de monitoreo de controladores:
// dashboard de empresa, estado de conexión y analítica por controlador.
package analytics

import (
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/telemetry"
)

// Clock fuente de la hora actual; se inyecta para que los resultados sean deterministas en tests.
type Clock func() time.Time

// Config parámetros de la analítica. Los ceros toman los valores por defecto.
type Config struct {
	OnlineThreshold  time.Duration
	GapThreshold     time.Duration
	DashboardSignals int
	ChangesWindow    time.Duration
	CorrelationHours int
	Location         *time.Location // zona para agrupar por día
	MaxParallel      int            // lecturas concurrentes por dashboard
}

const (
	defaultDashboardSignals = 10
	defaultCorrelationHours = 24
	defaultMaxParallel      = 8
	timelineWindow          = 7 * 24 * time.Hour
)

func (c Config) withDefaults() Config {
	if c.OnlineThreshold <= 0 {
		c.OnlineThreshold = telemetry.DefaultOnlineThreshold
	}
	if c.GapThreshold <= 0 {
		c.GapThreshold = telemetry.DefaultGapThreshold
	}
	if c.DashboardSignals <= 0 {
		c.DashboardSignals = defaultDashboardSignals
	}
	if c.ChangesWindow <= 0 {
		c.ChangesWindow = telemetry.DefaultChangesWindow
	}
	if c.CorrelationHours <= 0 {
		c.CorrelationHours = defaultCorrelationHours
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.MaxParallel <= 0 {
		c.MaxParallel = defaultMaxParallel
	}
	return c
}
