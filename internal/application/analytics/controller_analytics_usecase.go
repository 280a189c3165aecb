package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/permission"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
	"github.com/jhoicas/Telemetria-api/internal/domain/telemetry"
)

var viewSignals = permission.NewSet(permission.ViewSignals)

// ControllerAnalyticsUseCase analítica de un controlador sobre un rango de días o una
// ventana relativa al reloj. Todas las operaciones requieren view_signals.
type ControllerAnalyticsUseCase struct {
	controllers repository.ControllerDirectory
	signals     repository.SignalStore
	reports     UptimeReportGenerator
	tracks      TrackEncoder
	cfg         Config
	now         Clock
}

// NewControllerAnalyticsUseCase construye el caso de uso. reports y tracks pueden ser nil
// si no se exponen el PDF ni el KML.
func NewControllerAnalyticsUseCase(
	controllers repository.ControllerDirectory,
	signals repository.SignalStore,
	reports UptimeReportGenerator,
	tracks TrackEncoder,
	cfg Config,
	now Clock,
) *ControllerAnalyticsUseCase {
	if now == nil {
		now = time.Now
	}
	return &ControllerAnalyticsUseCase{
		controllers: controllers,
		signals:     signals,
		reports:     reports,
		tracks:      tracks,
		cfg:         cfg.withDefaults(),
		now:         now,
	}
}

// Signals devuelve las señales del rango [startDate, endDate] (YYYY-MM-DD), más antigua primero.
func (uc *ControllerAnalyticsUseCase) Signals(ctx context.Context, controllerID, startDate, endDate string, perms permission.Set) (*dto.SignalListResponse, error) {
	_, window, signals, err := uc.loadWindow(ctx, controllerID, startDate, endDate, perms)
	if err != nil {
		return nil, err
	}
	var inWindow []*entity.Signal
	for _, s := range signals {
		if window.Contains(s.Timestamp) {
			inWindow = append(inWindow, s)
		}
	}
	return &dto.SignalListResponse{
		ControllerID: controllerID,
		StartDate:    startDate,
		EndDate:      endDate,
		Items:        dto.NewSignalResponses(inWindow),
	}, nil
}

// UptimeDowntime intervalos de actividad por día y totales del rango.
func (uc *ControllerAnalyticsUseCase) UptimeDowntime(ctx context.Context, controllerID, startDate, endDate string, perms permission.Set) (*dto.UptimeResponse, error) {
	_, window, signals, err := uc.loadWindow(ctx, controllerID, startDate, endDate, perms)
	if err != nil {
		return nil, err
	}
	activity := telemetry.BuildUptimeIntervals(signals, window, uc.cfg.GapThreshold)
	return uptimeResponse(controllerID, startDate, endDate, activity), nil
}

// OperationalHours mapa de calor de actividad por día y hora.
func (uc *ControllerAnalyticsUseCase) OperationalHours(ctx context.Context, controllerID, startDate, endDate string, perms permission.Set) (*dto.HeatmapResponse, error) {
	_, window, signals, err := uc.loadWindow(ctx, controllerID, startDate, endDate, perms)
	if err != nil {
		return nil, err
	}
	return &dto.HeatmapResponse{
		ControllerID:   controllerID,
		StartDate:      startDate,
		EndDate:        endDate,
		HourlyActivity: telemetry.BuildHeatmap(signals, window),
	}, nil
}

// SensorCorrelation correlación entre sensores en las últimas hours horas (<= 0 usa la configurada).
func (uc *ControllerAnalyticsUseCase) SensorCorrelation(ctx context.Context, controllerID string, hours int, perms permission.Set) (*dto.CorrelationResponse, error) {
	if hours <= 0 {
		hours = uc.cfg.CorrelationHours
	}
	_, signals, err := uc.loadRecent(ctx, controllerID, time.Duration(hours)*time.Hour, perms)
	if err != nil {
		return nil, err
	}
	return &dto.CorrelationResponse{
		ControllerID: controllerID,
		Hours:        hours,
		SampleSize:   len(signals),
		Correlation:  telemetry.ComputeCorrelation(signals),
	}, nil
}

// Changes cambios de estado de los sensores dentro de la ventana configurada.
func (uc *ControllerAnalyticsUseCase) Changes(ctx context.Context, controllerID string, perms permission.Set) (*dto.ChangesResponse, error) {
	now := uc.now()
	_, signals, err := uc.loadRecentAt(ctx, controllerID, uc.cfg.ChangesWindow, now, perms)
	if err != nil {
		return nil, err
	}
	events := telemetry.DetectChanges(signals, uc.cfg.ChangesWindow, now)

	out := make([]dto.ChangeEventDTO, 0, len(events))
	for _, ev := range events {
		changes := make([]dto.SensorChangeDTO, 0, len(ev.Changes))
		for _, c := range ev.Changes {
			changes = append(changes, dto.SensorChangeDTO{Sensor: c.Sensor, OldValue: c.OldValue, NewValue: c.NewValue})
		}
		out = append(out, dto.ChangeEventDTO{Timestamp: ev.Timestamp, Changes: changes})
	}
	return &dto.ChangesResponse{ControllerID: controllerID, Changes: out}, nil
}

// Timeline señales de los últimos 7 días con su estado de conexión y la configuración del controlador.
func (uc *ControllerAnalyticsUseCase) Timeline(ctx context.Context, controllerID string, perms permission.Set) (*dto.TimelineResponse, error) {
	now := uc.now()
	controller, signals, err := uc.loadRecentAt(ctx, controllerID, timelineWindow, now, perms)
	if err != nil {
		return nil, err
	}

	points := telemetry.BuildTimeline(signals, now, uc.cfg.OnlineThreshold)
	timeline := make([]dto.TimelinePointDTO, 0, len(points))
	for _, p := range points {
		status := "disconnected"
		if p.Connected {
			status = "connected"
		}
		timeline = append(timeline, dto.TimelinePointDTO{SignalResponse: dto.NewSignalResponse(p.Signal), Status: status})
	}
	return &dto.TimelineResponse{
		ControllerID: controllerID,
		SensorConfig: controller.Config,
		Timeline:     timeline,
	}, nil
}

// UptimeReport PDF con los intervalos y totales del rango.
func (uc *ControllerAnalyticsUseCase) UptimeReport(ctx context.Context, controllerID, startDate, endDate string, perms permission.Set) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("analytics: generador de reportes no configurado")
	}
	controller, window, signals, err := uc.loadWindow(ctx, controllerID, startDate, endDate, perms)
	if err != nil {
		return nil, err
	}
	activity := telemetry.BuildUptimeIntervals(signals, window, uc.cfg.GapThreshold)
	pdf, err := uc.reports.GenerateUptimeReport(controller, uptimeResponse(controllerID, startDate, endDate, activity))
	if err != nil {
		return nil, fmt.Errorf("analytics: reporte de disponibilidad: %w", err)
	}
	return pdf, nil
}

// Track recorrido del controlador en el rango: solo señales con coordenadas.
func (uc *ControllerAnalyticsUseCase) Track(ctx context.Context, controllerID, startDate, endDate string, perms permission.Set) ([]byte, error) {
	if uc.tracks == nil {
		return nil, fmt.Errorf("analytics: exportador de recorridos no configurado")
	}
	controller, window, signals, err := uc.loadWindow(ctx, controllerID, startDate, endDate, perms)
	if err != nil {
		return nil, err
	}
	var located []*entity.Signal
	for _, s := range signals {
		if window.Contains(s.Timestamp) && s.HasLocation() {
			located = append(located, s)
		}
	}
	out, err := uc.tracks.EncodeTrack(controller, located)
	if err != nil {
		return nil, fmt.Errorf("analytics: recorrido: %w", err)
	}
	return out, nil
}

// loadWindow autoriza, valida el rango, resuelve el controlador y lee sus señales.
// El rango se valida antes de tocar el almacenamiento.
func (uc *ControllerAnalyticsUseCase) loadWindow(ctx context.Context, controllerID, startDate, endDate string, perms permission.Set) (*entity.Controller, telemetry.Window, []*entity.Signal, error) {
	if err := permission.Authorize(viewSignals, perms); err != nil {
		return nil, telemetry.Window{}, nil, err
	}
	window, err := telemetry.ParseWindow(startDate, endDate, uc.cfg.Location)
	if err != nil {
		return nil, telemetry.Window{}, nil, err
	}
	controller, err := uc.controller(ctx, controllerID)
	if err != nil {
		return nil, telemetry.Window{}, nil, err
	}
	signals, err := uc.signals.InRange(ctx, controllerID, window.Start(), window.End())
	if err != nil {
		return nil, telemetry.Window{}, nil, fmt.Errorf("analytics: señales en rango: %w", err)
	}
	return controller, window, signals, nil
}

func (uc *ControllerAnalyticsUseCase) loadRecent(ctx context.Context, controllerID string, span time.Duration, perms permission.Set) (*entity.Controller, []*entity.Signal, error) {
	return uc.loadRecentAt(ctx, controllerID, span, uc.now(), perms)
}

// loadRecentAt lee las señales de [now-span, now].
func (uc *ControllerAnalyticsUseCase) loadRecentAt(ctx context.Context, controllerID string, span time.Duration, now time.Time, perms permission.Set) (*entity.Controller, []*entity.Signal, error) {
	if err := permission.Authorize(viewSignals, perms); err != nil {
		return nil, nil, err
	}
	controller, err := uc.controller(ctx, controllerID)
	if err != nil {
		return nil, nil, err
	}
	signals, err := uc.signals.InRange(ctx, controllerID, now.Add(-span), now)
	if err != nil {
		return nil, nil, fmt.Errorf("analytics: señales recientes: %w", err)
	}
	return controller, signals, nil
}

func (uc *ControllerAnalyticsUseCase) controller(ctx context.Context, controllerID string) (*entity.Controller, error) {
	controller, err := uc.controllers.Get(ctx, controllerID)
	if err != nil {
		return nil, fmt.Errorf("analytics: controlador: %w", err)
	}
	if controller == nil {
		return nil, domain.ErrControllerNotFound
	}
	return controller, nil
}

var hundred = decimal.NewFromInt(100)

func uptimeResponse(controllerID, startDate, endDate string, activity telemetry.DailyActivity) *dto.UptimeResponse {
	daily := make(map[string][]dto.IntervalDTO, len(activity))
	for day, list := range activity {
		items := make([]dto.IntervalDTO, 0, len(list))
		for _, iv := range list {
			items = append(items, dto.IntervalDTO{Start: iv.Start, End: iv.End, Type: string(iv.Kind)})
		}
		daily[day] = items
	}

	up, down := activity.Totals()
	upMin := decimal.NewFromFloat(up.Minutes())
	downMin := decimal.NewFromFloat(down.Minutes())
	percent := decimal.Zero
	if total := upMin.Add(downMin); total.IsPositive() {
		percent = upMin.Mul(hundred).Div(total)
	}
	return &dto.UptimeResponse{
		ControllerID:    controllerID,
		StartDate:       startDate,
		EndDate:         endDate,
		DailyActivity:   daily,
		UptimeMinutes:   upMin.Round(2),
		DowntimeMinutes: downMin.Round(2),
		UptimePercent:   percent.Round(2),
	}
}
