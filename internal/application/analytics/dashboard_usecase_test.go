package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/application/analytics"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/permission"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

type dashboardFixture struct {
	uc      *analytics.DashboardUseCase
	ctrls   *fakeControllers
	signals *fakeSignals
}

func newDashboardFixture() dashboardFixture {
	companies := &fakeCompanies{items: map[string]*entity.Company{
		"emp-1": {ID: "emp-1", Name: "Agro Norte"},
		"emp-2": {ID: "emp-2", Name: "Sin controladores"},
	}}
	ctrls := &fakeControllers{items: []*entity.Controller{
		{ID: "c-online", CompanyID: "emp-1", Name: "Bomba 1", Address: "3001", Config: map[string]any{"sampling_rate": 60}},
		{ID: "c-offline", CompanyID: "emp-1", Name: "Bomba 2", Address: "3002"},
		{ID: "c-silent", CompanyID: "emp-1", Name: "Bomba 3", Address: "3003"},
		{ID: "c-other", CompanyID: "emp-9", Name: "Ajeno", Address: "9999"},
	}}
	byCtrl := map[string][]*entity.Signal{
		"c-offline": {signalAt("c-offline", now.Add(-time.Hour), true)},
	}
	for i := 0; i < 15; i++ {
		byCtrl["c-online"] = append(byCtrl["c-online"], signalAt("c-online", now.Add(-time.Duration(14-i)*time.Minute), i%2 == 0))
	}
	signals := &fakeSignals{byCtrl: byCtrl}

	uc := analytics.NewDashboardUseCase(companies, ctrls, signals, analytics.Config{}, fixedClock)
	return dashboardFixture{uc: uc, ctrls: ctrls, signals: signals}
}

var dashboardPerms = permission.NewSet(permission.ViewDashboard, permission.ViewSignals)

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard de empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildCompanyDashboard_UltimasDiezMasRecientePrimero(t *testing.T) {
	f := newDashboardFixture()

	entries, err := f.uc.BuildCompanyDashboard(context.Background(), "emp-1", dashboardPerms)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	online := entries[0]
	assert.Equal(t, "c-online", online.ControllerID)
	assert.Equal(t, "Bomba 1", online.ControllerName)
	assert.Equal(t, 60, online.Config["sampling_rate"])
	assert.Equal(t, "online", online.Status)
	require.Len(t, online.LatestSignals, 10)
	assert.True(t, online.LatestSignals[0].Timestamp.Equal(now))
	for i := 1; i < len(online.LatestSignals); i++ {
		assert.True(t, online.LatestSignals[i-1].Timestamp.After(online.LatestSignals[i].Timestamp))
	}

	assert.Equal(t, "offline", entries[1].Status)
	require.NotNil(t, entries[1].LastSeen)

	assert.Equal(t, "offline", entries[2].Status)
	assert.Nil(t, entries[2].LastSeen)
	assert.NotNil(t, entries[2].LatestSignals)
	assert.Empty(t, entries[2].LatestSignals)
}

func TestBuildCompanyDashboard_EmpresaSinControladores(t *testing.T) {
	f := newDashboardFixture()

	entries, err := f.uc.BuildCompanyDashboard(context.Background(), "emp-2", dashboardPerms)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildCompanyDashboard_EmpresaInexistente(t *testing.T) {
	f := newDashboardFixture()

	_, err := f.uc.BuildCompanyDashboard(context.Background(), "nope", dashboardPerms)
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestBuildCompanyDashboard_SinPermisoNoConsulta(t *testing.T) {
	f := newDashboardFixture()

	_, err := f.uc.BuildCompanyDashboard(context.Background(), "emp-1", permission.NewSet(permission.ViewSignals))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Zero(t, f.ctrls.calls)
	assert.Zero(t, f.signals.calls)
}

func TestBuildCompanyDashboard_ErrorDelStorePropaga(t *testing.T) {
	f := newDashboardFixture()
	f.signals.failFor = "c-offline"

	_, err := f.uc.BuildCompanyDashboard(context.Background(), "emp-1", dashboardPerms)
	assert.ErrorIs(t, err, errStore)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conectados / desconectados
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildConnectedStats(t *testing.T) {
	f := newDashboardFixture()

	stats, err := f.uc.BuildConnectedStats(context.Background(), "emp-1", dashboardPerms)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Connected)
	assert.Equal(t, 2, stats.Disconnected)
}

func TestBuildConnectedStats_RequiereViewDashboard(t *testing.T) {
	f := newDashboardFixture()

	_, err := f.uc.BuildConnectedStats(context.Background(), "emp-1", permission.NewSet(permission.ViewSignals))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Zero(t, f.signals.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado de un controlador
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildControllerStatus(t *testing.T) {
	f := newDashboardFixture()

	st, err := f.uc.BuildControllerStatus(context.Background(), "c-offline", permission.NewSet(permission.ViewSignals))
	require.NoError(t, err)
	assert.Equal(t, "offline", st.Status)
	assert.Equal(t, "Bomba 2", st.ControllerName)
	require.NotNil(t, st.LastSeen)
	assert.True(t, st.LastSeen.Equal(now.Add(-time.Hour)))
}

func TestBuildControllerStatus_NoExiste(t *testing.T) {
	f := newDashboardFixture()

	_, err := f.uc.BuildControllerStatus(context.Background(), "nope", permission.NewSet(permission.ViewSignals))
	assert.ErrorIs(t, err, domain.ErrControllerNotFound)
}

func TestBuildControllerStatus_RequiereViewSignals(t *testing.T) {
	f := newDashboardFixture()

	_, err := f.uc.BuildControllerStatus(context.Background(), "c-online", permission.NewSet(permission.ViewDashboard))
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Zero(t, f.ctrls.calls)
}

func TestBuildControllerStatus_UmbralConfigurable(t *testing.T) {
	f := newDashboardFixture()
	uc := analytics.NewDashboardUseCase(&fakeCompanies{}, f.ctrls, f.signals,
		analytics.Config{OnlineThreshold: 2 * time.Hour}, fixedClock)

	st, err := uc.BuildControllerStatus(context.Background(), "c-offline", permission.NewSet(permission.ViewSignals))
	require.NoError(t, err)
	assert.Equal(t, "online", st.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen de señales
// ──────────────────────────────────────────────────────────────────────────────

func TestSignalSummary(t *testing.T) {
	f := newDashboardFixture()
	last := now.Add(-time.Minute)
	values := entity.SensorValues{true}
	f.signals.summary = []repository.SignalSummaryResult{
		{ControllerID: "c-online", Name: "Bomba 1", LastSignalTime: &last, SignalCount: 15, LatestValues: &values},
		{ControllerID: "c-silent", Name: "Bomba 3"},
	}

	out, err := f.uc.SignalSummary(context.Background(), "emp-1", dashboardPerms)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 15, out[0].SignalCount)
	assert.True(t, out[0].LatestValues["sensor1"])
	assert.Nil(t, out[1].LastSignalTime)
	assert.Nil(t, out[1].LatestValues)
}

func TestSignalSummary_EmpresaInexistente(t *testing.T) {
	f := newDashboardFixture()

	_, err := f.uc.SignalSummary(context.Background(), "nope", dashboardPerms)
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}
