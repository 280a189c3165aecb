package permission_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/permission"
)

func TestAuthorize_SubconjuntoPermite(t *testing.T) {
	held := permission.NewSet(permission.ViewSignals, permission.ViewDashboard, permission.ViewEmpresas)

	assert.NoError(t, permission.Authorize(permission.NewSet(permission.ViewSignals), held))
	assert.NoError(t, permission.Authorize(permission.NewSet(permission.ViewSignals, permission.ViewDashboard), held))
}

func TestAuthorize_RequeridoVacioSiemprePermite(t *testing.T) {
	assert.NoError(t, permission.Authorize(permission.NewSet(), nil))
	assert.NoError(t, permission.Authorize(nil, permission.NewSet(permission.ViewSignals)))
}

func TestAuthorize_InterseccionParcialFalla(t *testing.T) {
	held := permission.NewSet(permission.ViewSignals)
	required := permission.NewSet(permission.ViewSignals, permission.ViewDashboard)

	err := permission.Authorize(required, held)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
	assert.Contains(t, err.Error(), "view_dashboard")
	assert.NotContains(t, err.Error(), "view_signals")
}

func TestAuthorize_SinPermisosFalla(t *testing.T) {
	err := permission.Authorize(permission.NewSet(permission.ViewDashboard), nil)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestSet_MissingOrdenado(t *testing.T) {
	held := permission.NewSet(permission.ViewSignals)
	required := permission.NewSet(permission.ViewSignals, permission.ViewDashboard, permission.ManageController)

	assert.Equal(t, []permission.Token{permission.ManageController, permission.ViewDashboard}, held.Missing(required))
}

func TestFromStrings_IgnoraVacios(t *testing.T) {
	s := permission.FromStrings([]string{"view_signals", " ", "view_dashboard "})
	assert.Equal(t, []string{"view_dashboard", "view_signals"}, s.Strings())
}

func TestForRole(t *testing.T) {
	admin := permission.ForRole(entity.RoleAdmin)
	assert.Len(t, admin, 7)
	assert.True(t, admin.Has(permission.ManageController))
	assert.True(t, admin.Has(permission.ManageUsers))

	user := permission.ForRole(entity.RoleEmpresaUser)
	assert.Equal(t, []string{"create_signals", "view_dashboard", "view_empresas", "view_signals"}, user.Strings())
	assert.False(t, user.Has(permission.ManageEmpresa))

	assert.Empty(t, permission.ForRole("vendedor"))
}
