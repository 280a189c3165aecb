package repository

import (
	"context"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. GetByID devuelve nil, nil si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	Delete(ctx context.Context, id string) error
	// Stats cuenta usuarios y controladores de cada empresa.
	Stats(ctx context.Context) ([]CompanyStatsResult, error)
}

// CompanyStatsResult conteos por empresa.
type CompanyStatsResult struct {
	CompanyID   string
	Name        string
	Users       int
	Controllers int
}
