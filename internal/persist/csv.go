// Package persist writes the cleaned datasets as delimited text files with a
// header row in canonical column order. The files are the contract surface
// for downstream non-database consumers.
package persist

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/healthtech/etl/internal/transform"
)

// Timestamp layout used in the flat-file outputs.
const timestampLayout = "2006-01-02 15:04:05"

// Output file names under the processed directory.
const (
	DoctorsFile      = "doctors_clean.csv"
	AppointmentsFile = "appointments_clean.csv"
)

// Writer persists cleaned datasets under a single output directory, creating
// it on demand.
type Writer struct {
	dir string
	log zerolog.Logger
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string, log zerolog.Logger) *Writer {
	return &Writer{dir: dir, log: log}
}

// WriteAll writes both cleaned datasets and returns their file paths.
func (w *Writer) WriteAll(doctors []transform.Doctor, appts []transform.Appointment) (string, string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output directory %s: %w", w.dir, err)
	}

	doctorsPath := filepath.Join(w.dir, DoctorsFile)
	if err := writeCSV(doctorsPath, transform.DoctorColumns, doctorRecords(doctors)); err != nil {
		return "", "", err
	}

	apptsPath := filepath.Join(w.dir, AppointmentsFile)
	if err := writeCSV(apptsPath, transform.AppointmentColumns, appointmentRecords(appts)); err != nil {
		return "", "", err
	}

	w.log.Info().Str("doctors", doctorsPath).Str("appointments", apptsPath).Msg("wrote processed datasets")
	return doctorsPath, apptsPath, nil
}

func doctorRecords(doctors []transform.Doctor) [][]string {
	records := make([][]string, len(doctors))
	for i, d := range doctors {
		records[i] = []string{strconv.Itoa(d.DoctorID), d.DoctorName, d.Specialty}
	}
	return records
}

func appointmentRecords(appts []transform.Appointment) [][]string {
	records := make([][]string, len(appts))
	for i, a := range appts {
		records[i] = []string{
			strconv.Itoa(a.AppointmentID),
			strconv.Itoa(a.PatientID),
			strconv.Itoa(a.DoctorID),
			a.DateTime.Format(timestampLayout),
			a.Status,
		}
	}
	return records
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
