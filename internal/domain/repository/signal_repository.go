package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// SignalStore acceso a las señales de un controlador.
type SignalStore interface {
	// Latest devuelve hasta limit señales, de la más reciente a la más antigua.
	Latest(ctx context.Context, controllerID string, limit int) ([]*entity.Signal, error)
	// InRange devuelve las señales con start <= timestamp <= end, de la más antigua a la más reciente.
	InRange(ctx context.Context, controllerID string, start, end time.Time) ([]*entity.Signal, error)
	// SummaryByCompany resume las señales de cada controlador de la empresa.
	SummaryByCompany(ctx context.Context, companyID string) ([]SignalSummaryResult, error)
}

// SignalWriter puerto de escritura usado por la ingesta dentro de una transacción.
type SignalWriter interface {
	Append(ctx context.Context, signal *entity.Signal) error
}

// SignalSummaryResult resultado crudo del resumen; LastSignalTime y LatestValues son nil
// si el controlador no tiene señales.
type SignalSummaryResult struct {
	ControllerID   string
	Name           string
	LastSignalTime *time.Time
	SignalCount    int
	LatestValues   *entity.SensorValues
}
