package dto

import "time"

// CreateControllerRequest entrada para registrar un controlador en una empresa.
type CreateControllerRequest struct {
	CompanyID string         `json:"empresa_id" validate:"required"`
	Name      string         `json:"name" validate:"required"`
	Address   string         `json:"phone_number" validate:"required"`
	Config    map[string]any `json:"config"`
}

// UpdateControllerConfigRequest reemplaza la configuración completa.
type UpdateControllerConfigRequest struct {
	Config map[string]any `json:"config" validate:"required"`
}

// ControllerResponse salida de un controlador.
type ControllerResponse struct {
	ID        string         `json:"id"`
	CompanyID string         `json:"empresa_id"`
	Name      string         `json:"name"`
	Address   string         `json:"phone_number"`
	Config    map[string]any `json:"config"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
