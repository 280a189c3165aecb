package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// ControllerDirectory resuelve controladores: identidad, configuración y empresa dueña.
// Get y GetByAddress devuelven nil, nil cuando el controlador no existe.
type ControllerDirectory interface {
	Get(ctx context.Context, id string) (*entity.Controller, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Controller, error)
	GetByAddress(ctx context.Context, address string) (*entity.Controller, error)
}

// ControllerRepository agrega al directorio las operaciones de escritura.
type ControllerRepository interface {
	ControllerDirectory
	Create(ctx context.Context, controller *entity.Controller) error
	UpdateConfig(ctx context.Context, id string, config map[string]any, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// AddressExistsInCompany verifica la unicidad del número dentro de la empresa.
	AddressExistsInCompany(ctx context.Context, companyID, address string) (bool, error)
}
