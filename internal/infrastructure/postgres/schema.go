package postgres

import (
	"context"
	"fmt"
)

// schema crea las tablas si no existen. Las señales se borran en cascada con su controlador
// y los controladores con su empresa.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	phone       TEXT NOT NULL,
	email       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id             TEXT PRIMARY KEY,
	company_id     TEXT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	email          TEXT NOT NULL UNIQUE,
	password_hash  TEXT NOT NULL,
	first_name     TEXT NOT NULL DEFAULT '',
	last_name      TEXT NOT NULL DEFAULT '',
	role           TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'active',
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS controllers (
	id          TEXT PRIMARY KEY,
	company_id  TEXT NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	address     TEXT NOT NULL UNIQUE,
	config      JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_controllers_company ON controllers(company_id);

CREATE TABLE IF NOT EXISTS signals (
	id             TEXT PRIMARY KEY,
	controller_id  TEXT NOT NULL REFERENCES controllers(id) ON DELETE CASCADE,
	tstamp         TIMESTAMPTZ NOT NULL,
	sensor1        BOOLEAN NOT NULL,
	sensor2        BOOLEAN NOT NULL,
	sensor3        BOOLEAN NOT NULL,
	sensor4        BOOLEAN NOT NULL,
	sensor5        BOOLEAN NOT NULL,
	sensor6        BOOLEAN NOT NULL,
	latitude       NUMERIC(10, 7),
	longitude      NUMERIC(10, 7),
	metadata       JSONB,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_signals_controller_tstamp ON signals(controller_id, tstamp DESC);
`

// EnsureSchema aplica el esquema de forma idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
