package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

var _ repository.ControllerRepository = (*ControllerRepo)(nil)

// ControllerRepo implementación de ControllerRepository sobre PostgreSQL. La configuración va en JSONB.
type ControllerRepo struct {
	q Querier
}

// NewControllerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewControllerRepository(q Querier) *ControllerRepo {
	return &ControllerRepo{q: q}
}

const controllerColumns = `id, company_id, name, address, config, created_at, updated_at`

// Create persiste un controlador. El número es único en todo el sistema.
func (r *ControllerRepo) Create(ctx context.Context, c *entity.Controller) error {
	config := c.Config
	if config == nil {
		config = map[string]any{}
	}
	query := `
		INSERT INTO controllers (` + controllerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.Name, c.Address, config, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAddressAlreadyTaken
		}
		if isForeignKeyViolation(err) {
			return domain.ErrTenantNotFound
		}
		return fmt.Errorf("insert controller: %w", err)
	}
	return nil
}

// Get obtiene un controlador por ID; nil, nil si no existe.
func (r *ControllerRepo) Get(ctx context.Context, id string) (*entity.Controller, error) {
	c, err := scanController(r.q.QueryRow(ctx, `SELECT `+controllerColumns+` FROM controllers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get controller: %w", err)
	}
	return c, nil
}

// GetByAddress resuelve el controlador por su número telefónico.
func (r *ControllerRepo) GetByAddress(ctx context.Context, address string) (*entity.Controller, error) {
	c, err := scanController(r.q.QueryRow(ctx, `SELECT `+controllerColumns+` FROM controllers WHERE address = $1`, address))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get controller by address: %w", err)
	}
	return c, nil
}

// ListByCompany lista los controladores de una empresa ordenados por nombre.
func (r *ControllerRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Controller, error) {
	query := `SELECT ` + controllerColumns + ` FROM controllers WHERE company_id = $1 ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list controllers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Controller
	for rows.Next() {
		c, err := scanController(rows)
		if err != nil {
			return nil, fmt.Errorf("scan controller: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateConfig reemplaza la configuración completa del controlador.
func (r *ControllerRepo) UpdateConfig(ctx context.Context, id string, config map[string]any, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE controllers SET config = $2, updated_at = $3 WHERE id = $1`, id, config, updatedAt)
	if err != nil {
		return fmt.Errorf("update controller config: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrControllerNotFound
	}
	return nil
}

// Delete elimina el controlador; sus señales se borran en cascada.
func (r *ControllerRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM controllers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete controller: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrControllerNotFound
	}
	return nil
}

// AddressExistsInCompany informa si la empresa ya tiene un controlador con ese número.
func (r *ControllerRepo) AddressExistsInCompany(ctx context.Context, companyID, address string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM controllers WHERE company_id = $1 AND address = $2)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, companyID, address).Scan(&exists); err != nil {
		return false, fmt.Errorf("check controller address: %w", err)
	}
	return exists, nil
}

func scanController(row pgxScanner) (*entity.Controller, error) {
	var c entity.Controller
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Address, &c.Config, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
