package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/application/usecase"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

func controllerFixture() (*usecase.ControllerUseCase, *memControllers) {
	companies := newMemCompanies(
		&entity.Company{ID: "emp-1", Name: "Agro", Phone: "300"},
		&entity.Company{ID: "emp-2", Name: "Riego", Phone: "301"},
	)
	controllers := newMemControllers(&entity.Controller{ID: "c-1", CompanyID: "emp-1", Name: "Bomba 1", Address: "3001"})
	return usecase.NewControllerUseCase(controllers, companies), controllers
}

func TestControllerCreate(t *testing.T) {
	uc, repo := controllerFixture()

	out, err := uc.Create(context.Background(), dto.CreateControllerRequest{CompanyID: "emp-1", Name: "Bomba 2", Address: " 3002 "}, adminPerms)
	require.NoError(t, err)
	assert.Equal(t, "3002", out.Address)
	assert.NotNil(t, out.Config)
	assert.Len(t, repo.items, 2)
}

func TestControllerCreate_NumeroRepetidoEnEmpresa(t *testing.T) {
	uc, _ := controllerFixture()

	_, err := uc.Create(context.Background(), dto.CreateControllerRequest{CompanyID: "emp-1", Name: "Otra", Address: "3001"}, adminPerms)
	assert.ErrorIs(t, err, domain.ErrAddressAlreadyTaken)
}

func TestControllerCreate_NumeroRepetidoEnOtraEmpresa(t *testing.T) {
	uc, _ := controllerFixture()

	_, err := uc.Create(context.Background(), dto.CreateControllerRequest{CompanyID: "emp-2", Name: "Otra", Address: "3001"}, adminPerms)
	assert.ErrorIs(t, err, domain.ErrAddressAlreadyTaken)
}

func TestControllerCreate_EmpresaInexistente(t *testing.T) {
	uc, _ := controllerFixture()

	_, err := uc.Create(context.Background(), dto.CreateControllerRequest{CompanyID: "nope", Name: "X", Address: "1"}, adminPerms)
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestControllerCreate_RequiereManageController(t *testing.T) {
	uc, repo := controllerFixture()

	_, err := uc.Create(context.Background(), dto.CreateControllerRequest{CompanyID: "emp-1", Name: "X", Address: "1"}, userPerms)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Len(t, repo.items, 1)
}

func TestControllerUpdateConfig(t *testing.T) {
	uc, repo := controllerFixture()
	config := map[string]any{"sensor_types": []any{"flujo"}, "thresholds": map[string]any{}, "sampling_rate": 60.0}

	_, err := uc.UpdateConfig(context.Background(), "c-1", config, adminPerms)
	require.NoError(t, err)
	assert.Equal(t, config, repo.items["c-1"].Config)

	got, err := uc.GetConfig(context.Background(), "c-1", userPerms)
	require.NoError(t, err)
	assert.Equal(t, 60.0, got["sampling_rate"])
}

func TestControllerUpdateConfig_ClavesObligatorias(t *testing.T) {
	uc, _ := controllerFixture()

	_, err := uc.UpdateConfig(context.Background(), "c-1", map[string]any{"sampling_rate": 60.0}, adminPerms)
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "sensor_types")
	assert.Contains(t, err.Error(), "thresholds")
}

func TestValidateConfig_SamplingRate(t *testing.T) {
	base := func(rate any) map[string]any {
		return map[string]any{"sensor_types": []any{}, "thresholds": map[string]any{}, "sampling_rate": rate}
	}
	assert.NoError(t, usecase.ValidateConfig(base(30)))
	assert.ErrorIs(t, usecase.ValidateConfig(base(0.0)), domain.ErrInvalidConfig)
	assert.ErrorIs(t, usecase.ValidateConfig(base("60")), domain.ErrInvalidConfig)
}

func TestControllerGetConfig_NoExiste(t *testing.T) {
	uc, _ := controllerFixture()

	_, err := uc.GetConfig(context.Background(), "nope", userPerms)
	assert.ErrorIs(t, err, domain.ErrControllerNotFound)
}

func TestControllerDelete(t *testing.T) {
	uc, repo := controllerFixture()

	assert.ErrorIs(t, uc.Delete(context.Background(), "c-1", userPerms), domain.ErrPermissionDenied)
	require.NoError(t, uc.Delete(context.Background(), "c-1", adminPerms))
	assert.Empty(t, repo.items)
}
