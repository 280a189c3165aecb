package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/permission"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, now: time.Now}
}

// Create crea una nueva empresa. Requiere manage_empresa.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest, perms permission.Set) (*dto.CompanyResponse, error) {
	if err := permission.Authorize(permission.NewSet(permission.ManageEmpresa), perms); err != nil {
		return nil, err
	}
	now := uc.now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID. Devuelve domain.ErrTenantNotFound si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string, perms permission.Set) (*dto.CompanyResponse, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewEmpresas), perms); err != nil {
		return nil, err
	}
	company, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int, perms permission.Set) (*dto.CompanyListResponse, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewEmpresas), perms); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica los campos presentes. Requiere manage_empresa.
func (uc *CompanyUseCase) Update(ctx context.Context, id string, in dto.UpdateCompanyRequest, perms permission.Set) (*dto.CompanyResponse, error) {
	if err := permission.Authorize(permission.NewSet(permission.ManageEmpresa), perms); err != nil {
		return nil, err
	}
	company, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if err := company.Validate(); err != nil {
		return nil, err
	}
	company.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Delete elimina la empresa. Requiere manage_empresa.
func (uc *CompanyUseCase) Delete(ctx context.Context, id string, perms permission.Set) error {
	if err := permission.Authorize(permission.NewSet(permission.ManageEmpresa), perms); err != nil {
		return err
	}
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Stats devuelve los conteos de una empresa (companyID) o de todas (companyID vacío).
func (uc *CompanyUseCase) Stats(ctx context.Context, companyID string, perms permission.Set) ([]dto.CompanyStatsDTO, error) {
	if err := permission.Authorize(permission.NewSet(permission.ViewEmpresas), perms); err != nil {
		return nil, err
	}
	rows, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("company: stats: %w", err)
	}
	out := make([]dto.CompanyStatsDTO, 0, len(rows))
	for _, r := range rows {
		if companyID != "" && r.CompanyID != companyID {
			continue
		}
		out = append(out, dto.CompanyStatsDTO{
			CompanyID:   r.CompanyID,
			Name:        r.Name,
			Users:       r.Users,
			Controllers: r.Controllers,
		})
	}
	if companyID != "" && len(out) == 0 {
		return nil, domain.ErrTenantNotFound
	}
	return out, nil
}

func (uc *CompanyUseCase) find(ctx context.Context, id string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrTenantNotFound
	}
	return company, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
