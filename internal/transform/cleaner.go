package transform

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Cleaner applies the clean-and-reconcile rules to raw rows. Bad rows are
// dropped or defaulted, never surfaced as errors; only summary row counts are
// logged. Running a Cleaner twice over identical input yields identical
// output.
type Cleaner struct {
	log   zerolog.Logger
	title cases.Caser
}

// NewCleaner creates a Cleaner that logs row-count summaries to log.
func NewCleaner(log zerolog.Logger) *Cleaner {
	return &Cleaner{log: log, title: cases.Title(language.English)}
}

// parseID coerces a raw id cell to an integer. Spreadsheet sources sometimes
// format integer cells as floats ("7.0"), so integral floats are accepted.
func parseID(value string) (int, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// titleCase trims and title-cases free text. Absent values become the literal
// "Nan" to stay compatible with the previous pipeline's output files.
func (c *Cleaner) titleCase(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return "Nan"
	}
	return c.title.String(strings.ToLower(s))
}

// CleanDoctors produces the canonical, deduplicated doctors table. Rows
// missing a coercible doctor_id or a non-empty name are dropped. When the
// same doctor_id appears more than once, the last occurrence after sorting
// ascending by id wins.
func (c *Cleaner) CleanDoctors(rows []Row) []Doctor {
	c.log.Info().Msg("cleaning doctors")

	cleaned := make([]Doctor, 0, len(rows))
	for _, raw := range rows {
		r := normalizeColumns(raw, doctorRenames)

		id, ok := parseID(r["doctor_id"])
		if !ok {
			continue
		}
		name := strings.TrimSpace(r["doctor_name"])
		if name == "" {
			continue
		}

		cleaned = append(cleaned, Doctor{
			DoctorID:   id,
			DoctorName: c.title.String(strings.ToLower(name)),
			Specialty:  c.titleCase(r["specialty"]),
		})
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].DoctorID < cleaned[j].DoctorID
	})

	// De-dup on doctor_id, keeping the last surviving row in sorted order.
	deduped := make([]Doctor, 0, len(cleaned))
	for i, d := range cleaned {
		if i+1 < len(cleaned) && cleaned[i+1].DoctorID == d.DoctorID {
			continue
		}
		deduped = append(deduped, d)
	}

	c.log.Info().Int("before", len(rows)).Int("after", len(deduped)).Msg("doctors cleaned")
	return deduped
}

// CleanAppointments produces the canonical appointments table. Rows missing
// any coercible id or with a date no layout can parse are dropped, exact
// full-row duplicates are removed (first kept), and rows referencing a doctor
// absent from doctors are filtered out. doctors must be the cleaned set from
// the same run; the referential filter stands in for a database foreign key
// at transform time.
func (c *Cleaner) CleanAppointments(rows []Row, doctors []Doctor) []Appointment {
	c.log.Info().Msg("cleaning appointments")

	validIDs := make(map[int]struct{}, len(doctors))
	for _, d := range doctors {
		validIDs[d.DoctorID] = struct{}{}
	}

	seen := make(map[Appointment]struct{}, len(rows))
	cleaned := make([]Appointment, 0, len(rows))
	for _, raw := range rows {
		r := normalizeColumns(raw, appointmentRenames)

		apptID, ok := parseID(r["appointment_id"])
		if !ok {
			continue
		}
		patientID, ok := parseID(r["patient_id"])
		if !ok {
			continue
		}
		doctorID, ok := parseID(r["doctor_id"])
		if !ok {
			continue
		}
		when, ok := ParseTimestamp(r["appointment_datetime"])
		if !ok {
			continue
		}

		// Status is never a drop reason: normalization always resolves.
		a := Appointment{
			AppointmentID: apptID,
			PatientID:     patientID,
			DoctorID:      doctorID,
			DateTime:      when,
			Status:        NormalizeStatus(r["status"]),
		}

		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}

		if _, ok := validIDs[a.DoctorID]; !ok {
			continue
		}
		cleaned = append(cleaned, a)
	}

	c.log.Info().Int("before", len(rows)).Int("after", len(cleaned)).Msg("appointments cleaned")
	return cleaned
}
