package analytics

import (
	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// UptimeReportGenerator genera el PDF del reporte de disponibilidad.
type UptimeReportGenerator interface {
	GenerateUptimeReport(controller *entity.Controller, report *dto.UptimeResponse) ([]byte, error)
}

// TrackEncoder serializa el recorrido (coordenadas de las señales) de un controlador.
type TrackEncoder interface {
	EncodeTrack(controller *entity.Controller, signals []*entity.Signal) ([]byte, error)
}
