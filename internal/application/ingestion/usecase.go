package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

// Orígenes de las señales (etiqueta de métricas y logs).
const (
	SourceHTTP   = "http"
	SourceMQTT   = "mqtt"
	SourceImport = "import"
)

// Clock fuente de la hora de recepción.
type Clock func() time.Time

// TxRunner ejecuta fn en una transacción serializada por controlador.
type TxRunner interface {
	RunForController(ctx context.Context, controllerID string, fn func(w repository.SignalWriter) error) error
}

// Deduplicator marca claves de entrega; Seen devuelve true si la clave ya había sido vista.
// Release libera una clave marcada cuya señal no llegó a guardarse, para que el reintento entre.
type Deduplicator interface {
	Seen(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Publisher republica las señales aceptadas hacia otros consumidores.
type Publisher interface {
	PublishSignal(ctx context.Context, controller *entity.Controller, signal *entity.Signal) error
}

// Recorder contabiliza el resultado de cada ingesta.
type Recorder interface {
	SignalAccepted(source string)
	SignalRejected(source, reason string)
}

// IngestUseCase recibe señales de los controladores y las persiste.
// dedup, publisher y recorder son opcionales (nil = deshabilitado).
type IngestUseCase struct {
	controllers repository.ControllerDirectory
	tx          TxRunner
	dedup       Deduplicator
	publisher   Publisher
	recorder    Recorder
	log         zerolog.Logger
	now         Clock
}

// NewIngestUseCase construye el caso de uso de ingesta.
func NewIngestUseCase(
	controllers repository.ControllerDirectory,
	tx TxRunner,
	dedup Deduplicator,
	publisher Publisher,
	recorder Recorder,
	log zerolog.Logger,
	now Clock,
) *IngestUseCase {
	if now == nil {
		now = time.Now
	}
	return &IngestUseCase{
		controllers: controllers,
		tx:          tx,
		dedup:       dedup,
		publisher:   publisher,
		recorder:    recorder,
		log:         log,
		now:         now,
	}
}

// Ingest valida la señal, resuelve el controlador por su número y la guarda.
// Sin tstamp se usa la hora de recepción. Un reenvío ya visto devuelve ErrDuplicateSignal.
func (uc *IngestUseCase) Ingest(ctx context.Context, source string, in dto.SignalInput) (*dto.SignalResponse, error) {
	resp, err := uc.ingest(ctx, source, in)
	if err != nil {
		uc.rejected(source, err)
		return nil, err
	}
	if uc.recorder != nil {
		uc.recorder.SignalAccepted(source)
	}
	return resp, nil
}

func (uc *IngestUseCase) ingest(ctx context.Context, source string, in dto.SignalInput) (*dto.SignalResponse, error) {
	if in.ControllerAddress == "" {
		return nil, fmt.Errorf("%w: controlador_id es obligatorio", domain.ErrInvalidSignal)
	}
	sensors, err := DecodeSensorStates(in.SensorStates)
	if err != nil {
		return nil, err
	}
	if err := validateLocation(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	controller, err := uc.controllers.GetByAddress(ctx, in.ControllerAddress)
	if err != nil {
		return nil, fmt.Errorf("ingesta: buscar controlador: %w", err)
	}
	if controller == nil {
		return nil, domain.ErrControllerNotFound
	}

	marked := ""
	if key := dedupKey(in); key != "" && uc.dedup != nil {
		seen, err := uc.dedup.Seen(ctx, key)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Str("key", key).Msg("deduplicación no disponible, se procesa la señal")
		case seen:
			return nil, domain.ErrDuplicateSignal
		default:
			marked = key
		}
	}

	received := uc.now()
	ts := received
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	signal := &entity.Signal{
		ID:           uuid.New().String(),
		ControllerID: controller.ID,
		Timestamp:    ts.UTC(),
		Sensors:      sensors,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Metadata:     in.Metadata,
		CreatedAt:    received.UTC(),
	}

	err = uc.tx.RunForController(ctx, controller.ID, func(w repository.SignalWriter) error {
		return w.Append(ctx, signal)
	})
	if err != nil {
		uc.release(ctx, marked)
		return nil, fmt.Errorf("ingesta: guardar señal: %w", err)
	}

	uc.log.Debug().
		Str("source", source).
		Str("controller_id", controller.ID).
		Int("mask", sensors.Mask()).
		Time("tstamp", signal.Timestamp).
		Msg("señal registrada")

	if uc.publisher != nil {
		if err := uc.publisher.PublishSignal(ctx, controller, signal); err != nil {
			uc.log.Error().Err(err).Str("signal_id", signal.ID).Msg("no se pudo publicar la señal")
		}
	}

	resp := dto.NewSignalResponse(signal)
	return &resp, nil
}

// release desmarca la clave de una entrega que no se guardó. Usa un contexto propio porque
// el de la petición puede estar cancelado justo por la falla.
func (uc *IngestUseCase) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := uc.dedup.Release(rctx, key); err != nil {
		uc.log.Error().Err(err).Str("key", key).Msg("no se pudo liberar la clave de deduplicación")
	}
}

func (uc *IngestUseCase) rejected(source string, err error) {
	if uc.recorder == nil {
		return
	}
	uc.recorder.SignalRejected(source, RejectReason(err))
}

// RejectReason clasifica un error de ingesta en una etiqueta corta.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidSignal):
		return "invalid"
	case errors.Is(err, domain.ErrControllerNotFound):
		return "unknown_controller"
	case errors.Is(err, domain.ErrDuplicateSignal):
		return "duplicate"
	default:
		return "error"
	}
}

// dedupKey identifica una entrega: message_id si viene, si no el tstamp del equipo.
// Sin ninguno de los dos no se deduplica.
func dedupKey(in dto.SignalInput) string {
	switch {
	case in.MessageID != "":
		return in.ControllerAddress + ":" + in.MessageID
	case in.Timestamp != nil:
		return in.ControllerAddress + ":" + in.Timestamp.UTC().Format(time.RFC3339Nano)
	default:
		return ""
	}
}

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

func validateLocation(lat, lon *decimal.Decimal) error {
	if lat == nil && lon == nil {
		return nil
	}
	if lat == nil || lon == nil {
		return fmt.Errorf("%w: latitude y longitude van juntas", domain.ErrInvalidSignal)
	}
	if lat.Abs().GreaterThan(maxLatitude) || lon.Abs().GreaterThan(maxLongitude) {
		return fmt.Errorf("%w: coordenadas fuera de rango", domain.ErrInvalidSignal)
	}
	return nil
}
