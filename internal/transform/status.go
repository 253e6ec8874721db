package transform

import "strings"

// Canonical appointment statuses. Every raw status value resolves to exactly
// one of these.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusPending   = "pending"
)

// statusSynonyms maps spelling variants and abbreviations onto the canonical
// set. The canonical values map to themselves so recognized input passes
// through unchanged.
var statusSynonyms = map[string]string{
	"confirmed": StatusConfirmed,
	"confirm":   StatusConfirmed,
	"cnf":       StatusConfirmed,
	"cancelled": StatusCancelled,
	"canceled":  StatusCancelled,
	"cnl":       StatusCancelled,
	"pending":   StatusPending,
	"pnd":       StatusPending,
	"scheduled": StatusPending,
}

// NormalizeStatus maps a free-text status onto the closed
// confirmed/cancelled/pending set. Unrecognized values default to pending
// rather than dropping the row.
//
// TODO: defaulting unknowns to pending conflates "administratively pending"
// with "data-quality unknown"; a distinct unknown status would let downstream
// reports tell them apart.
func NormalizeStatus(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	if canonical, ok := statusSynonyms[s]; ok {
		return canonical
	}
	return StatusPending
}
