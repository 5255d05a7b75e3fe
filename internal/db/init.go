package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS registrations (
    orden_registro SERIAL PRIMARY KEY,
    fecha_registro TEXT,
    hora_registro TEXT,
    nombre TEXT,
    apellidos TEXT,
    abonado BOOLEAN NOT NULL DEFAULT FALSE,
    prioritario BOOLEAN NOT NULL DEFAULT FALSE,
    vip BOOLEAN NOT NULL DEFAULT FALSE,
    solicitud TEXT,
    email TEXT,
    cp TEXT,
    dni TEXT UNIQUE NOT NULL,
    direccion TEXT,
    fecha_nac TEXT,
    localidad TEXT,
    telefono TEXT,
    observaciones TEXT,
    aceptacion_com BOOLEAN NOT NULL DEFAULT FALSE,
    aceptacion_term BOOLEAN NOT NULL DEFAULT FALSE,
    status TEXT NOT NULL DEFAULT 'Pendiente'
);
`

// InitPostgres opens the remote store connection and ensures the schema
// exists. When the store is unreachable the handle is still returned along
// with the error: per-call failures then degrade to the local fallback
// instead of keeping the portal from starting.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return db, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return db, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
