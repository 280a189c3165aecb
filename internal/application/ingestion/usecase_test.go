package ingestion_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

var received = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type directory struct{ byAddress map[string]*entity.Controller }

func (d directory) Get(_ context.Context, id string) (*entity.Controller, error) {
	for _, c := range d.byAddress {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (d directory) ListByCompany(context.Context, string) ([]*entity.Controller, error) {
	return nil, nil
}

func (d directory) GetByAddress(_ context.Context, address string) (*entity.Controller, error) {
	return d.byAddress[address], nil
}

type memTx struct {
	mu      sync.Mutex
	locks   []string
	signals []*entity.Signal
	err     error
}

func (m *memTx) RunForController(_ context.Context, controllerID string, fn func(repository.SignalWriter) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.locks = append(m.locks, controllerID)
	return fn(m)
}

func (m *memTx) Append(_ context.Context, s *entity.Signal) error {
	m.signals = append(m.signals, s)
	return nil
}

type memDedup struct {
	seen map[string]bool
	err  error
}

func (d *memDedup) Seen(_ context.Context, key string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen[key] {
		return true, nil
	}
	d.seen[key] = true
	return false, nil
}

func (d *memDedup) Release(_ context.Context, key string) error {
	delete(d.seen, key)
	return nil
}

type memPublisher struct {
	published []*entity.Signal
	err       error
}

func (p *memPublisher) PublishSignal(_ context.Context, _ *entity.Controller, s *entity.Signal) error {
	p.published = append(p.published, s)
	return p.err
}

type counter struct {
	accepted map[string]int
	rejected map[string]int
}

func (c *counter) SignalAccepted(source string) { c.accepted[source]++ }
func (c *counter) SignalRejected(_, reason string) {
	c.rejected[reason]++
}

type fixture struct {
	uc   *ingestion.IngestUseCase
	tx   *memTx
	dd   *memDedup
	pub  *memPublisher
	recs *counter
}

func newFixture() *fixture {
	dir := directory{byAddress: map[string]*entity.Controller{
		"3001234567": {ID: "ctl-1", CompanyID: "emp-1", Name: "Bomba norte", Address: "3001234567"},
	}}
	f := &fixture{
		tx:   &memTx{},
		dd:   &memDedup{seen: map[string]bool{}},
		pub:  &memPublisher{},
		recs: &counter{accepted: map[string]int{}, rejected: map[string]int{}},
	}
	f.uc = ingestion.NewIngestUseCase(dir, f.tx, f.dd, f.pub, f.recs, zerolog.Nop(), func() time.Time { return received })
	return f
}

func input(states string) dto.SignalInput {
	return dto.SignalInput{ControllerAddress: "3001234567", SensorStates: json.RawMessage(states)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingest
// ──────────────────────────────────────────────────────────────────────────────

func TestIngest_GuardaConHoraDeRecepcion(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Ingest(context.Background(), ingestion.SourceHTTP, input(`[1,0,0,0,0,1]`))
	require.NoError(t, err)

	require.Len(t, f.tx.signals, 1)
	saved := f.tx.signals[0]
	assert.Equal(t, "ctl-1", saved.ControllerID)
	assert.Equal(t, received, saved.Timestamp)
	assert.Equal(t, entity.SensorValues{true, false, false, false, false, true}, saved.Sensors)
	assert.Equal(t, []string{"ctl-1"}, f.tx.locks)

	assert.Equal(t, saved.ID, resp.ID)
	assert.True(t, resp.Active)
	assert.Len(t, f.pub.published, 1)
	assert.Equal(t, 1, f.recs.accepted[ingestion.SourceHTTP])
}

func TestIngest_RespetaTstampDelEquipo(t *testing.T) {
	f := newFixture()
	ts := received.Add(-time.Hour)
	in := input(`5`)
	in.Timestamp = &ts

	_, err := f.uc.Ingest(context.Background(), ingestion.SourceMQTT, in)
	require.NoError(t, err)
	assert.Equal(t, ts, f.tx.signals[0].Timestamp)
}

func TestIngest_ControladorDesconocido(t *testing.T) {
	f := newFixture()
	in := input(`0`)
	in.ControllerAddress = "999"

	_, err := f.uc.Ingest(context.Background(), ingestion.SourceHTTP, in)
	assert.ErrorIs(t, err, domain.ErrControllerNotFound)
	assert.Empty(t, f.tx.signals)
	assert.Equal(t, 1, f.recs.rejected["unknown_controller"])
}

func TestIngest_SensoresInvalidos(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Ingest(context.Background(), ingestion.SourceHTTP, input(`[1,1]`))
	assert.ErrorIs(t, err, domain.ErrInvalidSignal)
	assert.Equal(t, 1, f.recs.rejected["invalid"])
}

func TestIngest_CoordenadasIncompletasOFueraDeRango(t *testing.T) {
	f := newFixture()
	lat := decimal.RequireFromString("4.6097")
	lon := decimal.RequireFromString("-200")

	in := input(`1`)
	in.Latitude = &lat
	_, err := f.uc.Ingest(context.Background(), ingestion.SourceHTTP, in)
	assert.ErrorIs(t, err, domain.ErrInvalidSignal)

	in.Longitude = &lon
	_, err = f.uc.Ingest(context.Background(), ingestion.SourceHTTP, in)
	assert.ErrorIs(t, err, domain.ErrInvalidSignal)
}

func TestIngest_ReenvioEsDuplicado(t *testing.T) {
	f := newFixture()
	in := input(`1`)
	in.MessageID = "m-1"

	_, err := f.uc.Ingest(context.Background(), ingestion.SourceMQTT, in)
	require.NoError(t, err)
	_, err = f.uc.Ingest(context.Background(), ingestion.SourceMQTT, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateSignal)
	assert.Len(t, f.tx.signals, 1)
	assert.Equal(t, 1, f.recs.rejected["duplicate"])
}

func TestIngest_SinClaveNoDeduplica(t *testing.T) {
	f := newFixture()

	for i := 0; i < 2; i++ {
		_, err := f.uc.Ingest(context.Background(), ingestion.SourceHTTP, input(`1`))
		require.NoError(t, err)
	}
	assert.Len(t, f.tx.signals, 2)
	assert.Empty(t, f.dd.seen)
}

func TestIngest_FallaDeDedupNoBloquea(t *testing.T) {
	f := newFixture()
	f.dd.err = errors.New("redis caído")
	in := input(`1`)
	in.MessageID = "m-1"

	_, err := f.uc.Ingest(context.Background(), ingestion.SourceMQTT, in)
	require.NoError(t, err)
	assert.Len(t, f.tx.signals, 1)
}

func TestIngest_FallaDePublicacionNoBloquea(t *testing.T) {
	f := newFixture()
	f.pub.err = errors.New("kafka caído")

	resp, err := f.uc.Ingest(context.Background(), ingestion.SourceHTTP, input(`1`))
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestIngest_ErrorDeAlmacenamiento(t *testing.T) {
	f := newFixture()
	f.tx.err = errors.New("conexión perdida")

	_, err := f.uc.Ingest(context.Background(), ingestion.SourceHTTP, input(`1`))
	require.Error(t, err)
	assert.Equal(t, 1, f.recs.rejected["error"])
}

func TestIngest_PuertosOpcionalesEnNil(t *testing.T) {
	tx := &memTx{}
	dir := directory{byAddress: map[string]*entity.Controller{"1": {ID: "ctl-1", Address: "1"}}}
	uc := ingestion.NewIngestUseCase(dir, tx, nil, nil, nil, zerolog.Nop(), nil)
	in := dto.SignalInput{ControllerAddress: "1", SensorStates: json.RawMessage(`[0,0,0,0,0,0]`), MessageID: "x"}

	resp, err := uc.Ingest(context.Background(), ingestion.SourceHTTP, in)
	require.NoError(t, err)
	assert.False(t, resp.Active)
	assert.Len(t, tx.signals, 1)
}

func TestIngest_FallaAlGuardarLiberaLaClaveParaElReintento(t *testing.T) {
	f := newFixture()
	f.tx.err = errors.New("db down")
	in := input(`1`)
	in.MessageID = "m-7"

	_, err := f.uc.Ingest(context.Background(), ingestion.SourceMQTT, in)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateSignal)
	assert.Empty(t, f.dd.seen)

	f.tx.err = nil
	_, err = f.uc.Ingest(context.Background(), ingestion.SourceMQTT, in)
	require.NoError(t, err)
	assert.Len(t, f.tx.signals, 1)

	_, err = f.uc.Ingest(context.Background(), ingestion.SourceMQTT, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateSignal)
}
