package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/permission"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

// ControllerUseCase alta, consulta y configuración de controladores.
type ControllerUseCase struct {
	controllers repository.ControllerRepository
	companies   repository.CompanyRepository
	now         func() time.Time
}

// NewControllerUseCase construye el caso de uso.
func NewControllerUseCase(controllers repository.ControllerRepository, companies repository.CompanyRepository) *ControllerUseCase {
	return &ControllerUseCase{controllers: controllers, companies: companies, now: time.Now}
}

// Create registra un controlador en una empresa. El número no puede repetirse dentro de la
// empresa ni en el sistema. Requiere manage_controller.
func (uc *ControllerUseCase) Create(ctx context.Context, in dto.CreateControllerRequest, perms permission.Set) (*dto.ControllerResponse, error) {
	if err := permission.Authorize(permission.NewSet(permission.ManageController), perms); err != nil {
		return nil, err
	}
	address := strings.TrimSpace(in.Address)
	if strings.TrimSpace(in.Name) == "" || address == "" {
		return nil, domain.ErrInvalidInput
	}

	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("controller: empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrTenantNotFound
	}

	taken, err := uc.controllers.AddressExistsInCompany(ctx, company.ID, address)
	if err != nil {
		return nil, fmt.Errorf("controller: unicidad en empresa: %w", err)
	}
	if taken {
		return nil, domain.ErrAddressAlreadyTaken
	}
	existing, err := uc.controllers.GetByAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("controller: unicidad global: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAddressAlreadyTaken
	}

	config := in.Config
	if config == nil {
		config = map[string]any{}
	}
	now := uc.now()
	controller := &entity.Controller{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Name:      strings.TrimSpace(in.Name),
		Address:   address,
		Config:    config,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.controllers.Create(ctx, controller); err != nil {
		return nil, err
	}
	return entityToControllerResponse(controller), nil
}

// Get obtiene un controlador. Requiere view_signals.
func (uc *ControllerUseCase) Get(ctx context.Context, id string, perms permission.Set) (*dto.ControllerResponse, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewSignals), perms); err != nil {
		return nil, err
	}
	controller, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToControllerResponse(controller), nil
}

// ListByCompany controladores de una empresa. Requiere view_signals.
func (uc *ControllerUseCase) ListByCompany(ctx context.Context, companyID string, perms permission.Set) ([]dto.ControllerResponse, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewSignals), perms); err != nil {
		return nil, err
	}
	list, err := uc.controllers.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ControllerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *entityToControllerResponse(c))
	}
	return out, nil
}

// GetConfig devuelve la configuración del controlador. Requiere view_signals.
func (uc *ControllerUseCase) GetConfig(ctx context.Context, id string, perms permission.Set) (map[string]any, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewSignals), perms); err != nil {
		return nil, err
	}
	controller, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if controller.Config == nil {
		return map[string]any{}, nil
	}
	return controller.Config, nil
}

// UpdateConfig reemplaza la configuración. Debe traer sensor_types, thresholds y sampling_rate.
// Requiere manage_controller.
func (uc *ControllerUseCase) UpdateConfig(ctx context.Context, id string, config map[string]any, perms permission.Set) (map[string]any, error) {
	if err := permission.Authorize(permission.NewSet(permission.ManageController), perms); err != nil {
		return nil, err
	}
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.controllers.UpdateConfig(ctx, id, config, uc.now()); err != nil {
		return nil, err
	}
	return config, nil
}

// Delete elimina un controlador y sus señales. Requiere manage_controller.
func (uc *ControllerUseCase) Delete(ctx context.Context, id string, perms permission.Set) error {
	if err := permission.Authorize(permission.NewSet(permission.ManageController), perms); err != nil {
		return err
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.controllers.Delete(ctx, id)
}

// ValidateConfig comprueba las claves obligatorias y que sampling_rate sea un número positivo.
func ValidateConfig(config map[string]any) error {
	var missing []string
	for _, key := range []string{entity.ConfigSensorTypes, entity.ConfigThresholds, entity.ConfigSamplingRate} {
		if _, ok := config[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: faltan %s", domain.ErrInvalidConfig, strings.Join(missing, ", "))
	}
	switch rate := config[entity.ConfigSamplingRate].(type) {
	case float64:
		if rate <= 0 {
			return fmt.Errorf("%w: sampling_rate debe ser positivo", domain.ErrInvalidConfig)
		}
	case int:
		if rate <= 0 {
			return fmt.Errorf("%w: sampling_rate debe ser positivo", domain.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: sampling_rate debe ser numérico", domain.ErrInvalidConfig)
	}
	return nil
}

func (uc *ControllerUseCase) find(ctx context.Context, id string) (*entity.Controller, error) {
	controller, err := uc.controllers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if controller == nil {
		return nil, domain.ErrControllerNotFound
	}
	return controller, nil
}

func entityToControllerResponse(c *entity.Controller) *dto.ControllerResponse {
	return &dto.ControllerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Address:   c.Address,
		Config:    c.Config,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

