package transform

import "testing"

func TestNormalizeColumns_LabelsAndRenames(t *testing.T) {
	in := Row{
		"  Booking_ID ": "1",
		"PATIENT_id":    "5",
		"doctor_id":     "10",
		"Booking_Date":  "10/20/2025",
		"Status ":       "cnf",
	}
	out := normalizeColumns(in, appointmentRenames)

	want := map[string]string{
		"appointment_id":       "1",
		"patient_id":           "5",
		"doctor_id":            "10",
		"appointment_datetime": "10/20/2025",
		"status":               "cnf",
	}
	for key, value := range want {
		if out[key] != value {
			t.Errorf("expected %s=%q, got %q", key, value, out[key])
		}
	}
	if len(out) != len(want) {
		t.Errorf("expected %d columns, got %d", len(want), len(out))
	}
}

func TestNormalizeColumns_Pure(t *testing.T) {
	in := Row{"Name": "dr. x"}
	_ = normalizeColumns(in, doctorRenames)
	if _, ok := in["doctor_name"]; ok {
		t.Error("input row was mutated")
	}
	if in["Name"] != "dr. x" {
		t.Error("input value was mutated")
	}
}

func TestNormalizeColumns_UnresolvedStaysAbsent(t *testing.T) {
	out := normalizeColumns(Row{"doctor_id": "1"}, doctorRenames)
	if _, ok := out["doctor_name"]; ok {
		t.Error("expected doctor_name to be absent")
	}
}
