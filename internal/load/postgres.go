package load

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/healthtech/etl/internal/transform"
)

const ddlDoctors = `
CREATE TABLE IF NOT EXISTS %s.doctors (
    doctor_id INTEGER PRIMARY KEY,
    doctor_name TEXT NOT NULL,
    specialty TEXT
)`

const ddlAppointments = `
CREATE TABLE IF NOT EXISTS %s.appointments (
    appointment_id INTEGER PRIMARY KEY,
    patient_id INTEGER NOT NULL,
    doctor_id INTEGER NOT NULL REFERENCES %s.doctors(doctor_id),
    appointment_datetime TIMESTAMP NOT NULL,
    status TEXT CHECK (status IN ('confirmed','cancelled','pending'))
)`

// PostgresLoader loads into a server-based PostgreSQL schema. All writes run
// on one connection inside one transaction: schema creation, truncation, and
// both bulk inserts commit atomically or roll back together.
type PostgresLoader struct {
	pool   *pgxpool.Pool
	schema string
	log    zerolog.Logger
}

// NewPostgres creates a PostgresLoader targeting the given schema.
func NewPostgres(pool *pgxpool.Pool, schema string, log zerolog.Logger) *PostgresLoader {
	return &PostgresLoader{pool: pool, schema: schema, log: log}
}

// Load provisions the schema, truncates both tables with identity reset, and
// bulk-inserts doctors then appointments via COPY.
func (l *PostgresLoader) Load(ctx context.Context, doctors []transform.Doctor, appts []transform.Appointment) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	schema := pgx.Identifier{l.schema}.Sanitize()
	if _, err := tx.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+schema); err != nil {
		return fmt.Errorf("create schema %s: %w", l.schema, err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf(ddlDoctors, schema)); err != nil {
		return fmt.Errorf("create doctors table: %w", err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf(ddlAppointments, schema, schema)); err != nil {
		return fmt.Errorf("create appointments table: %w", err)
	}

	// Idempotent load: clear both tables and restart identities each run.
	if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s.appointments, %s.doctors RESTART IDENTITY", schema, schema)); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	l.log.Info().Str("schema", l.schema).Msg("schema and tables ready; truncated for idempotent load")

	// FK-safe order: doctors before appointments.
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{l.schema, "doctors"},
		transform.DoctorColumns,
		pgx.CopyFromSlice(len(doctors), func(i int) ([]interface{}, error) {
			d := doctors[i]
			return []interface{}{d.DoctorID, d.DoctorName, d.Specialty}, nil
		}),
	); err != nil {
		return fmt.Errorf("copy doctors: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{l.schema, "appointments"},
		transform.AppointmentColumns,
		pgx.CopyFromSlice(len(appts), func(i int) ([]interface{}, error) {
			a := appts[i]
			return []interface{}{a.AppointmentID, a.PatientID, a.DoctorID, a.DateTime, a.Status}, nil
		}),
	); err != nil {
		return fmt.Errorf("copy appointments: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	l.log.Info().Int("doctors", len(doctors)).Int("appointments", len(appts)).Msg("load committed")
	return nil
}
