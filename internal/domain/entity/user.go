package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleEmpresaUser = "empresa_user"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // admin, empresa_user
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole informa si el rol es uno de los soportados.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmpresaUser
}
