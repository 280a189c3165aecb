// import_signals carga señales históricas desde un CSV exportado por los equipos de campo.
//
// Uso: go run ./cmd/import_signals [-latin1] ruta/senales.csv
//
// Columnas: controlador_id,tstamp,sensor_states[,latitude,longitude]
// sensor_states es la máscara de 6 bits (0..63) o seis valores 0/1 separados por ';'.
// Cada fila pasa por la misma ingesta que el endpoint HTTP, así que las filas repetidas
// se descartan si hay Redis configurado.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Telemetria-api/internal/application/dto"
	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Telemetria-api/internal/infrastructure/redis"
	"github.com/jhoicas/Telemetria-api/pkg/config"
	"github.com/jhoicas/Telemetria-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_signals [-latin1] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var dedup ingestion.Deduplicator
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		dedup = infraredis.NewDedup(client, cfg.Redis.DedupTTL)
	}

	uc := ingestion.NewIngestUseCase(
		postgres.NewControllerRepository(pool), postgres.NewTxRunner(pool),
		dedup, nil, nil, log.Component("import"), time.Now,
	)

	res, err := importCSV(ctx, r, uc)
	if err != nil {
		log.Fatal().Err(err).Int("line", res.Lines).Msg("importación interrumpida")
	}
	fmt.Printf("Importadas %d señales (%d duplicadas, %d rechazadas) de %d filas\n",
		res.Imported, res.Duplicates, res.Rejected, res.Lines)
}

type ingester interface {
	Ingest(ctx context.Context, source string, in dto.SignalInput) (*dto.SignalResponse, error)
}

type importResult struct {
	Lines      int
	Imported   int
	Duplicates int
	Rejected   int
}

// importCSV ingiere fila por fila. Las filas inválidas se cuentan y se reportan por stderr;
// un error de infraestructura detiene la importación.
func importCSV(ctx context.Context, r io.Reader, uc ingester) (importResult, error) {
	var res importResult
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		res.Lines++
		if err != nil {
			return res, fmt.Errorf("leer fila: %w", err)
		}
		if res.Lines == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "controlador_id") {
			continue
		}
		in, err := parseRecord(rec)
		if err != nil {
			res.Rejected++
			fmt.Fprintf(os.Stderr, "fila %d: %v\n", res.Lines, err)
			continue
		}
		_, err = uc.Ingest(ctx, ingestion.SourceImport, in)
		switch {
		case err == nil:
			res.Imported++
		case errors.Is(err, domain.ErrDuplicateSignal):
			res.Duplicates++
		case errors.Is(err, domain.ErrInvalidSignal), errors.Is(err, domain.ErrControllerNotFound):
			res.Rejected++
			fmt.Fprintf(os.Stderr, "fila %d: %v\n", res.Lines, err)
		default:
			return res, err
		}
	}
}

func parseRecord(rec []string) (dto.SignalInput, error) {
	if len(rec) != 3 && len(rec) != 5 {
		return dto.SignalInput{}, fmt.Errorf("se esperaban 3 o 5 columnas, hay %d", len(rec))
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(rec[1]))
	if err != nil {
		return dto.SignalInput{}, fmt.Errorf("tstamp: %w", err)
	}
	states, err := sensorStates(strings.TrimSpace(rec[2]))
	if err != nil {
		return dto.SignalInput{}, err
	}
	in := dto.SignalInput{
		ControllerAddress: strings.TrimSpace(rec[0]),
		SensorStates:      states,
		Timestamp:         &ts,
	}
	if len(rec) == 5 && (strings.TrimSpace(rec[3]) != "" || strings.TrimSpace(rec[4]) != "") {
		lat, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
		if err != nil {
			return dto.SignalInput{}, fmt.Errorf("latitude: %w", err)
		}
		lon, err := decimal.NewFromString(strings.TrimSpace(rec[4]))
		if err != nil {
			return dto.SignalInput{}, fmt.Errorf("longitude: %w", err)
		}
		in.Latitude, in.Longitude = &lat, &lon
	}
	return in, nil
}

// sensorStates convierte "33" o "1;0;0;0;0;1" al JSON que acepta la ingesta.
func sensorStates(s string) (json.RawMessage, error) {
	if !strings.Contains(s, ";") {
		return json.RawMessage(s), nil
	}
	parts := strings.Split(s, ";")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		switch strings.TrimSpace(p) {
		case "0":
			values = append(values, 0)
		case "1":
			values = append(values, 1)
		default:
			return nil, fmt.Errorf("sensor_states: valor %q no es 0/1", p)
		}
	}
	return json.Marshal(values)
}
