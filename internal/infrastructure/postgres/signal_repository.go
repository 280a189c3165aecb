package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

var (
	_ repository.SignalStore  = (*SignalRepo)(nil)
	_ repository.SignalWriter = (*SignalRepo)(nil)
)

// SignalRepo lectura y escritura de señales. Cada canal es una columna booleana;
// latitud y longitud son NUMERIC (shopspring/decimal vía pgx-shopspring-decimal).
type SignalRepo struct {
	q Querier
}

// NewSignalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSignalRepository(q Querier) *SignalRepo {
	return &SignalRepo{q: q}
}

const signalColumns = `id, controller_id, tstamp, sensor1, sensor2, sensor3, sensor4, sensor5, sensor6,
	latitude, longitude, metadata, created_at`

// Append inserta una señal. Se usa dentro de la transacción de TxRunner.RunForController.
func (r *SignalRepo) Append(ctx context.Context, s *entity.Signal) error {
	query := `
		INSERT INTO signals (` + signalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	v := s.Sensors
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ControllerID, s.Timestamp,
		v.Sensor1(), v.Sensor2(), v.Sensor3(), v.Sensor4(), v.Sensor5(), v.Sensor6(),
		s.Latitude, s.Longitude, s.Metadata, s.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrControllerNotFound
		}
		return fmt.Errorf("insert signal: %w", err)
	}
	return nil
}

// Latest devuelve hasta limit señales, de la más reciente a la más antigua.
func (r *SignalRepo) Latest(ctx context.Context, controllerID string, limit int) ([]*entity.Signal, error) {
	if limit <= 0 {
		return []*entity.Signal{}, nil
	}
	query := `
		SELECT ` + signalColumns + `
		FROM signals WHERE controller_id = $1
		ORDER BY tstamp DESC, id DESC LIMIT $2`
	return r.list(ctx, "latest signals", query, controllerID, limit)
}

// InRange devuelve las señales con start <= tstamp <= end, de la más antigua a la más reciente.
func (r *SignalRepo) InRange(ctx context.Context, controllerID string, start, end time.Time) ([]*entity.Signal, error) {
	query := `
		SELECT ` + signalColumns + `
		FROM signals WHERE controller_id = $1 AND tstamp BETWEEN $2 AND $3
		ORDER BY tstamp ASC, id ASC`
	return r.list(ctx, "signals in range", query, controllerID, start, end)
}

// SummaryByCompany resume por controlador: total de señales y la última lectura.
func (r *SignalRepo) SummaryByCompany(ctx context.Context, companyID string) ([]repository.SignalSummaryResult, error) {
	const query = `
		SELECT k.id, k.name,
		       (SELECT COUNT(*) FROM signals s WHERE s.controller_id = k.id),
		       l.tstamp, l.sensor1, l.sensor2, l.sensor3, l.sensor4, l.sensor5, l.sensor6
		  FROM controllers k
		  LEFT JOIN LATERAL (
		        SELECT tstamp, sensor1, sensor2, sensor3, sensor4, sensor5, sensor6
		          FROM signals s
		         WHERE s.controller_id = k.id
		         ORDER BY tstamp DESC
		         LIMIT 1
		       ) l ON true
		 WHERE k.company_id = $1
		 ORDER BY k.name, k.id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("signal summary: %w", err)
	}
	defer rows.Close()

	out := []repository.SignalSummaryResult{}
	for rows.Next() {
		var (
			res     repository.SignalSummaryResult
			last    *time.Time
			sensors [entity.SensorCount]*bool
		)
		err := rows.Scan(&res.ControllerID, &res.Name, &res.SignalCount, &last,
			&sensors[0], &sensors[1], &sensors[2], &sensors[3], &sensors[4], &sensors[5])
		if err != nil {
			return nil, fmt.Errorf("scan signal summary: %w", err)
		}
		if last != nil {
			var values entity.SensorValues
			for i, on := range sensors {
				values[i] = on != nil && *on
			}
			res.LastSignalTime = last
			res.LatestValues = &values
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *SignalRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Signal, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []*entity.Signal{}
	for rows.Next() {
		s, err := scanSignal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSignal(row pgxScanner) (*entity.Signal, error) {
	var s entity.Signal
	v := &s.Sensors
	err := row.Scan(
		&s.ID, &s.ControllerID, &s.Timestamp,
		&v[0], &v[1], &v[2], &v[3], &v[4], &v[5],
		&s.Latitude, &s.Longitude, &s.Metadata, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
