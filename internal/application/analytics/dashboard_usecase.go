package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/permission"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
	"github.com/jhoicas/Telemetria-api/internal/domain/telemetry"
)

// companyLookup lo único que el dashboard necesita de las empresas.
type companyLookup interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}

// DashboardUseCase arma las vistas de empresa y el estado de un controlador.
//
// Las lecturas por controlador se hacen en paralelo (acotado por Config.MaxParallel);
// la derivación corre después, sobre lo ya leído.
type DashboardUseCase struct {
	companies   companyLookup
	controllers repository.ControllerDirectory
	signals     repository.SignalStore
	cfg         Config
	now         Clock
}

// NewDashboardUseCase construye el caso de uso. now nil usa time.Now.
func NewDashboardUseCase(
	companies companyLookup,
	controllers repository.ControllerDirectory,
	signals repository.SignalStore,
	cfg Config,
	now Clock,
) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{
		companies:   companies,
		controllers: controllers,
		signals:     signals,
		cfg:         cfg.withDefaults(),
		now:         now,
	}
}

// BuildCompanyDashboard devuelve, por controlador de la empresa, sus últimas señales
// (más reciente primero), su configuración y su estado de conexión.
func (uc *DashboardUseCase) BuildCompanyDashboard(ctx context.Context, companyID string, perms permission.Set) ([]dto.DashboardEntry, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewDashboard), perms); err != nil {
		return nil, err
	}
	controllers, err := uc.companyControllers(ctx, companyID)
	if err != nil {
		return nil, err
	}

	latest, err := uc.latestPerController(ctx, controllers, uc.cfg.DashboardSignals)
	if err != nil {
		return nil, fmt.Errorf("dashboard: últimas señales: %w", err)
	}

	now := uc.now()
	entries := make([]dto.DashboardEntry, len(controllers))
	for i, c := range controllers {
		status := telemetry.EvaluateConnection(telemetry.LastSeen(latest[i]), now, uc.cfg.OnlineThreshold)
		entries[i] = dto.DashboardEntry{
			ControllerID:   c.ID,
			ControllerName: c.Name,
			Address:        c.Address,
			Config:         c.Config,
			Status:         string(status.State),
			LastSeen:       status.LastSeen,
			LatestSignals:  dto.NewSignalResponses(latest[i]),
		}
	}
	return entries, nil
}

// BuildConnectedStats clasifica cada controlador de la empresa por su última señal.
func (uc *DashboardUseCase) BuildConnectedStats(ctx context.Context, companyID string, perms permission.Set) (*dto.ConnectedStats, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewDashboard), perms); err != nil {
		return nil, err
	}
	controllers, err := uc.companyControllers(ctx, companyID)
	if err != nil {
		return nil, err
	}

	latest, err := uc.latestPerController(ctx, controllers, 1)
	if err != nil {
		return nil, fmt.Errorf("dashboard: estado de conexión: %w", err)
	}

	now := uc.now()
	stats := &dto.ConnectedStats{}
	for i := range controllers {
		if telemetry.EvaluateConnection(telemetry.LastSeen(latest[i]), now, uc.cfg.OnlineThreshold).IsOnline() {
			stats.Connected++
		} else {
			stats.Disconnected++
		}
	}
	return stats, nil
}

// BuildControllerStatus estado de conexión de un controlador.
func (uc *DashboardUseCase) BuildControllerStatus(ctx context.Context, controllerID string, perms permission.Set) (*dto.ControllerStatus, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewSignals), perms); err != nil {
		return nil, err
	}
	controller, err := uc.controllers.Get(ctx, controllerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: controlador: %w", err)
	}
	if controller == nil {
		return nil, domain.ErrControllerNotFound
	}

	latest, err := uc.signals.Latest(ctx, controllerID, 1)
	if err != nil {
		return nil, fmt.Errorf("dashboard: última señal: %w", err)
	}

	status := telemetry.EvaluateConnection(telemetry.LastSeen(latest), uc.now(), uc.cfg.OnlineThreshold)
	return &dto.ControllerStatus{
		ControllerID:   controller.ID,
		ControllerName: controller.Name,
		Status:         string(status.State),
		LastSeen:       status.LastSeen,
	}, nil
}

// SignalSummary resume las señales de cada controlador de la empresa.
func (uc *DashboardUseCase) SignalSummary(ctx context.Context, companyID string, perms permission.Set) ([]dto.SignalSummaryDTO, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewDashboard), perms); err != nil {
		return nil, err
	}
	if err := uc.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}

	rows, err := uc.signals.SummaryByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen de señales: %w", err)
	}
	out := make([]dto.SignalSummaryDTO, 0, len(rows))
	for _, r := range rows {
		item := dto.SignalSummaryDTO{
			ControllerID:   r.ControllerID,
			Name:           r.Name,
			LastSignalTime: r.LastSignalTime,
			SignalCount:    r.SignalCount,
		}
		if r.LatestValues != nil {
			item.LatestValues = r.LatestValues.Map()
		}
		out = append(out, item)
	}
	return out, nil
}

func (uc *DashboardUseCase) ensureCompany(ctx context.Context, companyID string) error {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("dashboard: empresa: %w", err)
	}
	if company == nil {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (uc *DashboardUseCase) companyControllers(ctx context.Context, companyID string) ([]*entity.Controller, error) {
	if err := uc.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	controllers, err := uc.controllers.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: controladores: %w", err)
	}
	return controllers, nil
}

// latestPerController lee en paralelo las últimas limit señales de cada controlador.
// El resultado conserva el orden de controllers.
func (uc *DashboardUseCase) latestPerController(ctx context.Context, controllers []*entity.Controller, limit int) ([][]*entity.Signal, error) {
	out := make([][]*entity.Signal, len(controllers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.MaxParallel)
	for i, c := range controllers {
		i, c := i, c
		g.Go(func() error {
			signals, err := uc.signals.Latest(gctx, c.ID, limit)
			if err != nil {
				return fmt.Errorf("controlador %s: %w", c.ID, err)
			}
			out[i] = signals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
