// Package permission concentra la autorización por capacidades: cada operación de analítica
// declara los tokens que necesita y se valida contra el conjunto que trae el llamador.
package permission

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

// Token capacidad opaca que habilita una categoría de datos o una mutación.
type Token string

const (
	ManageUsers      Token = "manage_users"
	ManageEmpresa    Token = "manage_empresa"
	ViewEmpresas     Token = "view_empresas"
	ManageController Token = "manage_controller"
	ViewSignals      Token = "view_signals"
	CreateSignals    Token = "create_signals"
	ViewDashboard    Token = "view_dashboard"
)

// Set conjunto no ordenado de tokens. El valor cero (nil) es el conjunto vacío.
type Set map[Token]struct{}

// NewSet construye un conjunto con los tokens dados.
func NewSet(tokens ...Token) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// FromStrings convierte la lista de permisos de un token JWT en un Set.
func FromStrings(raw []string) Set {
	s := make(Set, len(raw))
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			s[Token(r)] = struct{}{}
		}
	}
	return s
}

// Has informa si el conjunto contiene el token.
func (s Set) Has(t Token) bool {
	_, ok := s[t]
	return ok
}

// Missing devuelve, ordenados, los tokens de required que no están en s.
func (s Set) Missing(required Set) []Token {
	var out []Token
	for t := range required {
		if !s.Has(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings devuelve los tokens ordenados, para serializar en el JWT o en respuestas.
func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}

// Authorize retorna nil si required ⊆ held. Si falta algún token retorna un error que envuelve
// domain.ErrPermissionDenied con los tokens faltantes; una intersección parcial también falla.
func Authorize(required, held Set) error {
	missing := held.Missing(required)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, t := range missing {
		names[i] = string(t)
	}
	return fmt.Errorf("%w: falta %s", domain.ErrPermissionDenied, strings.Join(names, ", "))
}

// ForRole devuelve los permisos asignados a un rol. Un rol desconocido no tiene permisos.
func ForRole(role string) Set {
	switch role {
	case entity.RoleAdmin:
		return NewSet(ManageUsers, ManageEmpresa, ViewEmpresas, ManageController, ViewSignals, CreateSignals, ViewDashboard)
	case entity.RoleEmpresaUser:
		return NewSet(ViewEmpresas, ViewSignals, CreateSignals, ViewDashboard)
	default:
		return Set{}
	}
}
