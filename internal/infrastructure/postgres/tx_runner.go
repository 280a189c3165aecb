package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

// Ensure TxRunner implements ingestion.TxRunner.
var _ ingestion.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunForController abre una transacción, toma el advisory lock del controlador y ejecuta fn
// con un escritor de señales atado a la tx. Las ingestas de un mismo controlador quedan en serie;
// las de controladores distintos no se bloquean entre sí.
func (r *TxRunner) RunForController(ctx context.Context, controllerID string, fn func(w repository.SignalWriter) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, controllerID); err != nil {
		return fmt.Errorf("lock controller %s: %w", controllerID, err)
	}

	if err := fn(NewSignalRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
