package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Analítica de controladores.
	ErrPermissionDenied    = errors.New("permisos insuficientes")
	ErrControllerNotFound  = errors.New("controlador no encontrado")
	ErrTenantNotFound      = errors.New("empresa no encontrada")
	ErrInvalidTimeRange    = errors.New("rango de fechas inválido: la fecha final es anterior a la inicial")
	ErrAddressAlreadyTaken = errors.New("el número del controlador ya está registrado en la empresa")
	ErrInvalidSignal       = errors.New("señal inválida")
	ErrInvalidConfig       = errors.New("configuración de controlador inválida")
	ErrDuplicateSignal     = errors.New("señal duplicada")
)
