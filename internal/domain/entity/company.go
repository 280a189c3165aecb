package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain"
)

// Company representa una empresa (tenant): dueña de controladores y usuarios, unidad de aislamiento de datos.
type Company struct {
	ID        string
	Name      string
	Phone     string // obligatorio
	Email     string // opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate comprueba nombre y teléfono no vacíos y un email con formato mínimo.
func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(c.Phone) == "" {
		return domain.ErrInvalidInput
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return domain.ErrInvalidInput
	}
	return nil
}
