// Package repository provides persistence implementations for the
// registration portal using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// registrationColumns is the canonical column list, matching the
// registrations table and the scan order of scanRegistration.
const registrationColumns = `orden_registro, fecha_registro, hora_registro, nombre, apellidos,
	abonado, prioritario, vip, solicitud, email, cp, dni, direccion, fecha_nac,
	localidad, telefono, observaciones, aceptacion_com, aceptacion_term, status`

// PostgresRegistrationRepository implements registration operations against
// a PostgreSQL database. Every operation is a single round-trip with no
// internal retry: transport errors are returned to the caller, which decides
// whether to fall back to the local copy.
type PostgresRegistrationRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRegistrationRepository creates a repository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresRegistrationRepository(db *sql.DB) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{DB: db}
}

// scanner abstracts *sql.Row and *sql.Rows for scanRegistration.
type scanner interface {
	Scan(dest ...any) error
}

// scanRegistration maps one wire row into the domain record. Missing scalar
// columns default to the empty string or false; date columns are normalized
// to the portal's dd/mm/yyyy representation.
func scanRegistration(s scanner) (models.Registration, error) {
	var (
		orden                                            sql.NullInt64
		fechaReg, horaReg, nombre, apellidos             sql.NullString
		abonado, prioritario, vip                        sql.NullBool
		solicitud, email, cp, dni, direccion             sql.NullString
		fechaNac, localidad, telefono, observaciones     sql.NullString
		aceptacionCom, aceptacionTerm                    sql.NullBool
		status                                           sql.NullString
	)
	err := s.Scan(
		&orden, &fechaReg, &horaReg, &nombre, &apellidos,
		&abonado, &prioritario, &vip, &solicitud, &email, &cp, &dni, &direccion,
		&fechaNac, &localidad, &telefono, &observaciones,
		&aceptacionCom, &aceptacionTerm, &status,
	)
	if err != nil {
		return models.Registration{}, err
	}
	return models.Registration{
		OrdenRegistro:  int(orden.Int64),
		FechaRegistro:  formatDate(fechaReg.String),
		HoraRegistro:   horaReg.String,
		Nombre:         nombre.String,
		Apellidos:      apellidos.String,
		Abonado:        abonado.Bool,
		Prioritario:    prioritario.Bool,
		VIP:            vip.Bool,
		Solicitud:      solicitud.String,
		Email:          email.String,
		CP:             cp.String,
		DNI:            dni.String,
		Direccion:      direccion.String,
		FechaNac:       formatDate(fechaNac.String),
		Localidad:      localidad.String,
		Telefono:       telefono.String,
		Observaciones:  observaciones.String,
		AceptacionCom:  aceptacionCom.Bool,
		AceptacionTerm: aceptacionTerm.Bool,
		Status:         models.Status(status.String),
	}, nil
}

// dateLayouts are the accepted wire representations of a date column.
var dateLayouts = []string{"02/01/2006", "2006-01-02", time.RFC3339}

// formatDate normalizes a wire date value to dd/mm/yyyy. Malformed values
// render as the empty string.
func formatDate(v string) string {
	if v == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return ""
}

// ListAll fetches every registration ordered by ascending order number.
//
//	ctx: context for cancellation and deadlines
//
// Returns a slice of models.Registration or an error if the query or
// scanning fails.
func (r *PostgresRegistrationRepository) ListAll(ctx context.Context) ([]models.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+registrationColumns+` FROM registrations ORDER BY orden_registro ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAll rows: %w", err)
	}
	return regs, nil
}

// FindByEmailOrDNI retrieves the single registration matching the given
// identifiers. The query runs by email when email is non-empty, otherwise
// by DNI. When neither is provided the operation short-circuits to
// models.ErrNotFound without touching the database.
func (r *PostgresRegistrationRepository) FindByEmailOrDNI(ctx context.Context, email, dni string) (*models.Registration, error) {
	var column, value string
	switch {
	case email != "":
		column, value = "email", email
	case dni != "":
		column, value = "dni", dni
	default:
		return nil, models.ErrNotFound
	}

	row := r.DB.QueryRowContext(ctx, `
		SELECT `+registrationColumns+` FROM registrations WHERE `+column+` = $1
	`, value)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("FindByEmailOrDNI: %w", err)
	}
	return &reg, nil
}

// UpdateByDNI applies a partial update to the row matching the given DNI.
// The order number and registration date/time are never part of the patch.
// An empty patch is a no-op. Callers re-fetch the list to observe the effect.
func (r *PostgresRegistrationRepository) UpdateByDNI(ctx context.Context, dni string, patch models.RegistrationPatch) error {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil
	}

	// Deterministic column order keeps the statement stable.
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	set := ""
	args := make([]any, 0, len(cols)+1)
	for i, name := range names {
		if i > 0 {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", name, i+1)
		args = append(args, cols[name])
	}
	args = append(args, dni)

	query := fmt.Sprintf("UPDATE registrations SET %s WHERE dni = $%d", set, len(args))
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("UpdateByDNI: %w", err)
	}
	return nil
}

// DeleteByDNI removes the row matching the given DNI. Deleting a DNI that
// does not exist is a no-op.
func (r *PostgresRegistrationRepository) DeleteByDNI(ctx context.Context, dni string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM registrations WHERE dni = $1`, dni); err != nil {
		return fmt.Errorf("DeleteByDNI: %w", err)
	}
	return nil
}

// Create inserts a new registration. The order number is omitted so the
// store assigns it; the registration date and time default to now when not
// provided. Returns the newly created, fully populated record.
func (r *PostgresRegistrationRepository) Create(ctx context.Context, reg models.Registration) (*models.Registration, error) {
	now := time.Now()
	if reg.FechaRegistro == "" {
		reg.FechaRegistro = now.Format("02/01/2006")
	}
	if reg.HoraRegistro == "" {
		reg.HoraRegistro = now.Format("15:04:05")
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO registrations (fecha_registro, hora_registro, nombre, apellidos,
			abonado, prioritario, vip, solicitud, email, cp, dni, direccion, fecha_nac,
			localidad, telefono, observaciones, aceptacion_com, aceptacion_term, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING `+registrationColumns+`
	`,
		reg.FechaRegistro, reg.HoraRegistro, reg.Nombre, reg.Apellidos,
		reg.Abonado, reg.Prioritario, reg.VIP, reg.Solicitud, reg.Email, reg.CP,
		reg.DNI, reg.Direccion, reg.FechaNac, reg.Localidad, reg.Telefono,
		reg.Observaciones, reg.AceptacionCom, reg.AceptacionTerm, string(reg.Status),
	)
	created, err := scanRegistration(row)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return &created, nil
}
