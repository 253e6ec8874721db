// Package extract reads the raw doctor and appointment datasets from their
// spreadsheet sources and validates that the required columns are present
// before any cleaning begins.
package extract

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/healthtech/etl/internal/transform"
)

// Required columns in the source sheets, matched case and whitespace
// insensitively. These are the pre-rename names.
var (
	requiredDoctorColumns      = []string{"doctor_id", "name", "specialty"}
	requiredAppointmentColumns = []string{"booking_id", "patient_id", "doctor_id", "booking_date", "status"}
)

// MissingColumnsError reports required columns absent from a source sheet.
// Extraction fails fast on it; the cleaners never see a short schema.
type MissingColumnsError struct {
	Source  string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s sheet missing columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// Source identifies one spreadsheet sheet to read.
type Source struct {
	Path  string
	Sheet string
}

// Reader extracts the two raw row collections from their Excel sources.
type Reader struct {
	doctors Source
	appts   Source
	log     zerolog.Logger
}

// NewReader creates a Reader over the doctors and appointments sources.
func NewReader(doctors, appts Source, log zerolog.Logger) *Reader {
	return &Reader{doctors: doctors, appts: appts, log: log}
}

// ReadSources reads both sheets and validates their required columns. Any
// error here is fatal to the run.
func (r *Reader) ReadSources() ([]transform.Row, []transform.Row, error) {
	doctors, doctorHeader, err := r.readSheet(r.doctors)
	if err != nil {
		return nil, nil, err
	}
	if err := validateColumns("doctors", doctorHeader, requiredDoctorColumns); err != nil {
		return nil, nil, err
	}

	appts, apptHeader, err := r.readSheet(r.appts)
	if err != nil {
		return nil, nil, err
	}
	if err := validateColumns("appointments", apptHeader, requiredAppointmentColumns); err != nil {
		return nil, nil, err
	}

	r.log.Info().Int("doctors", len(doctors)).Int("appointments", len(appts)).Msg("extraction complete")
	return doctors, appts, nil
}

// readSheet reads one sheet into rows keyed by the header labels. Short data
// rows are padded with empty cells so every row carries the full column set.
func (r *Reader) readSheet(src Source) ([]transform.Row, []string, error) {
	r.log.Info().Str("path", src.Path).Str("sheet", src.Sheet).Msg("reading spreadsheet")

	f, err := excelize.OpenFile(src.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", src.Path, err)
	}
	defer f.Close()

	cells, err := f.GetRows(src.Sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s from %s: %w", src.Sheet, src.Path, err)
	}
	if len(cells) == 0 {
		return nil, nil, fmt.Errorf("sheet %s in %s has no header row", src.Sheet, src.Path)
	}

	header := cells[0]
	rows := make([]transform.Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(transform.Row, len(header))
		for i, label := range header {
			if i < len(line) {
				row[label] = line[i]
			} else {
				row[label] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

// validateColumns checks the header against a required column list and
// returns a MissingColumnsError naming every absent column.
func validateColumns(source string, header, required []string) error {
	present := make(map[string]bool, len(header))
	for _, label := range header {
		present[transform.NormalizeLabel(label)] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Source: source, Missing: missing}
	}
	return nil
}
