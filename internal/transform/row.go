package transform

import "strings"

// Row is a single extracted record addressed by column label. Values hold the
// raw cell text exactly as read from the source sheet.
type Row map[string]string

// Source-to-canonical renames, applied after labels are normalized.
var (
	doctorRenames = map[string]string{
		"name": "doctor_name",
	}
	appointmentRenames = map[string]string{
		"booking_id":   "appointment_id",
		"booking_date": "appointment_datetime",
	}
)

// NormalizeLabel strips surrounding whitespace from a column label and
// lowercases it.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// normalizeColumns rewrites a row so every value is addressable by its
// canonical lowercase label, applying the given rename table. Unresolved
// columns stay absent; required-field checks catch them later.
func normalizeColumns(r Row, renames map[string]string) Row {
	out := make(Row, len(r))
	for label, value := range r {
		key := NormalizeLabel(label)
		if canonical, ok := renames[key]; ok {
			key = canonical
		}
		out[key] = value
	}
	return out
}
