package load

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rs/zerolog"

	"github.com/healthtech/etl/internal/transform"
)

// DuckDBLoader loads into an embedded DuckDB database file. The backend
// enforces no FK or CHECK constraints; the cleaners guarantee referential
// integrity and the closed status set upstream. Idempotence comes from
// replacing both tables with the fresh data inside one transaction.
type DuckDBLoader struct {
	path   string
	schema string
	log    zerolog.Logger
}

// NewDuckDB creates a DuckDBLoader writing to the database file at path. The
// schema name mirrors the server backend's so downstream queries are portable.
func NewDuckDB(path, schema string, log zerolog.Logger) *DuckDBLoader {
	return &DuckDBLoader{path: path, schema: schema, log: log}
}

// Load replaces both tables with the run's cleaned datasets.
func (l *DuckDBLoader) Load(ctx context.Context, doctors []transform.Doctor, appts []transform.Appointment) error {
	l.log.Info().Str("path", l.path).Msg("connecting DuckDB")

	db, err := sql.Open("duckdb", l.path)
	if err != nil {
		return fmt.Errorf("open duckdb at %s: %w", l.path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", l.schema)); err != nil {
		return fmt.Errorf("create schema %s: %w", l.schema, err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE OR REPLACE TABLE %s.doctors (
    doctor_id INTEGER,
    doctor_name TEXT,
    specialty TEXT
)`, l.schema)); err != nil {
		return fmt.Errorf("replace doctors table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE OR REPLACE TABLE %s.appointments (
    appointment_id INTEGER,
    patient_id INTEGER,
    doctor_id INTEGER,
    appointment_datetime TIMESTAMP,
    status TEXT
)`, l.schema)); err != nil {
		return fmt.Errorf("replace appointments table: %w", err)
	}

	insertDoctors, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s.doctors VALUES (?, ?, ?)", l.schema))
	if err != nil {
		return fmt.Errorf("prepare doctors insert: %w", err)
	}
	defer insertDoctors.Close()
	for _, d := range doctors {
		if _, err := insertDoctors.ExecContext(ctx, d.DoctorID, d.DoctorName, d.Specialty); err != nil {
			return fmt.Errorf("insert doctor %d: %w", d.DoctorID, err)
		}
	}

	insertAppts, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s.appointments VALUES (?, ?, ?, ?, ?)", l.schema))
	if err != nil {
		return fmt.Errorf("prepare appointments insert: %w", err)
	}
	defer insertAppts.Close()
	for _, a := range appts {
		if _, err := insertAppts.ExecContext(ctx, a.AppointmentID, a.PatientID, a.DoctorID, a.DateTime, a.Status); err != nil {
			return fmt.Errorf("insert appointment %d: %w", a.AppointmentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	l.log.Info().Int("doctors", len(doctors)).Int("appointments", len(appts)).Msg("DuckDB load completed (tables replaced)")
	return nil
}
