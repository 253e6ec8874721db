package transform

import (
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestCleaner() *Cleaner {
	return NewCleaner(zerolog.Nop())
}

func doctorRow(id, name, specialty string) Row {
	return Row{"doctor_id": id, "name": name, "specialty": specialty}
}

func appointmentRow(id, patient, doctor, date, status string) Row {
	return Row{
		"booking_id":   id,
		"patient_id":   patient,
		"doctor_id":    doctor,
		"booking_date": date,
		"status":       status,
	}
}

func TestCleanDoctors_TitleCaseAndProjection(t *testing.T) {
	c := newTestCleaner()
	got := c.CleanDoctors([]Row{doctorRow("10", "  dr. x ", "cardio")})

	want := []Doctor{{DoctorID: 10, DoctorName: "Dr. X", Specialty: "Cardio"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestCleanDoctors_DedupKeepsLastAfterSort(t *testing.T) {
	c := newTestCleaner()
	got := c.CleanDoctors([]Row{
		doctorRow("1", "A", "X"),
		doctorRow("1", "B", "Y"),
	})

	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].DoctorID != 1 || got[0].DoctorName != "B" || got[0].Specialty != "Y" {
		t.Errorf("expected last occurrence to win, got %+v", got[0])
	}
}

func TestCleanDoctors_SortedAscending(t *testing.T) {
	c := newTestCleaner()
	got := c.CleanDoctors([]Row{
		doctorRow("30", "c", "x"),
		doctorRow("10", "a", "y"),
		doctorRow("20", "b", "z"),
	})

	ids := []int{got[0].DoctorID, got[1].DoctorID, got[2].DoctorID}
	if !reflect.DeepEqual(ids, []int{10, 20, 30}) {
		t.Errorf("expected ascending doctor_id order, got %v", ids)
	}
}

func TestCleanDoctors_DropsBadRows(t *testing.T) {
	c := newTestCleaner()
	got := c.CleanDoctors([]Row{
		doctorRow("abc", "Dr. Bad Id", "cardio"), // non-coercible id
		doctorRow("", "Dr. No Id", "cardio"),     // missing id
		doctorRow("7", "   ", "cardio"),          // missing name
		doctorRow("8", "dr. ok", "cardio"),
	})

	if len(got) != 1 {
		t.Fatalf("expected 1 surviving row, got %d", len(got))
	}
	if got[0].DoctorID != 8 {
		t.Errorf("expected doctor 8 to survive, got %+v", got[0])
	}
}

func TestCleanDoctors_MissingSpecialtyBecomesNan(t *testing.T) {
	c := newTestCleaner()
	got := c.CleanDoctors([]Row{doctorRow("5", "dr. y", "")})

	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Specialty != "Nan" {
		t.Errorf("expected absent specialty to become \"Nan\", got %q", got[0].Specialty)
	}
}

func TestCleanDoctors_FloatFormattedID(t *testing.T) {
	c := newTestCleaner()
	got := c.CleanDoctors([]Row{doctorRow("12.0", "dr. z", "derm")})

	if len(got) != 1 || got[0].DoctorID != 12 {
		t.Fatalf("expected float-formatted id to coerce to 12, got %+v", got)
	}
}

func TestCleanDoctors_Idempotent(t *testing.T) {
	c := newTestCleaner()
	rows := []Row{
		doctorRow("2", "b", "y"),
		doctorRow("1", "a", "x"),
		doctorRow("2", "bb", "yy"),
	}
	first := c.CleanDoctors(rows)
	second := c.CleanDoctors(rows)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output across runs: %+v vs %+v", first, second)
	}
}

func TestCleanAppointments_FullRow(t *testing.T) {
	c := newTestCleaner()
	doctors := c.CleanDoctors([]Row{doctorRow("10", "dr. x", "cardio")})
	got := c.CleanAppointments([]Row{
		appointmentRow("1", "5", "10", "10/20/2025", "cnf"),
	}, doctors)

	want := []Appointment{{
		AppointmentID: 1,
		PatientID:     5,
		DoctorID:      10,
		DateTime:      time.Date(2025, 10, 20, 0, 0, 0, 0, time.Local),
		Status:        StatusConfirmed,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestCleanAppointments_ReferentialFilter(t *testing.T) {
	c := newTestCleaner()
	doctors := c.CleanDoctors([]Row{doctorRow("10", "dr. x", "cardio")})
	got := c.CleanAppointments([]Row{
		appointmentRow("1", "5", "10", "10/20/2025", "cnf"),
		appointmentRow("2", "5", "999", "10/20/2025", "cnf"),
	}, doctors)

	if len(got) != 1 {
		t.Fatalf("expected dangling doctor reference to be dropped, got %d rows", len(got))
	}
	if got[0].AppointmentID != 1 {
		t.Errorf("expected appointment 1 to survive, got %+v", got[0])
	}
}

func TestCleanAppointments_DropsUnparseable(t *testing.T) {
	c := newTestCleaner()
	doctors := c.CleanDoctors([]Row{doctorRow("10", "dr. x", "cardio")})
	got := c.CleanAppointments([]Row{
		appointmentRow("x", "5", "10", "10/20/2025", "cnf"),      // bad appointment id
		appointmentRow("2", "", "10", "10/20/2025", "cnf"),       // missing patient id
		appointmentRow("3", "5", "ten", "10/20/2025", "cnf"),     // bad doctor id
		appointmentRow("4", "5", "10", "not-a-date", "cnf"),      // unparseable date
		appointmentRow("5", "5", "10", "2025-10-20 14:30", "ok"), // survives, status defaults
	}, doctors)

	if len(got) != 1 {
		t.Fatalf("expected 1 surviving row, got %d", len(got))
	}
	if got[0].AppointmentID != 5 || got[0].Status != StatusPending {
		t.Errorf("unexpected surviving row %+v", got[0])
	}
}

func TestCleanAppointments_ExactDuplicatesRemoved(t *testing.T) {
	c := newTestCleaner()
	doctors := c.CleanDoctors([]Row{doctorRow("10", "dr. x", "cardio")})
	got := c.CleanAppointments([]Row{
		appointmentRow("1", "5", "10", "10/20/2025", "cnf"),
		appointmentRow("1", "5", "10", "10/20/2025", "confirmed"), // same row after normalization
		appointmentRow("1", "6", "10", "10/20/2025", "cnf"),       // differs in patient_id, retained
	}, doctors)

	if len(got) != 2 {
		t.Fatalf("expected exact duplicate removed and near-duplicate kept, got %d rows", len(got))
	}
}

func TestCleanAppointments_Idempotent(t *testing.T) {
	c := newTestCleaner()
	doctors := c.CleanDoctors([]Row{doctorRow("10", "dr. x", "cardio")})
	rows := []Row{
		appointmentRow("1", "5", "10", "10/20/2025", "cnf"),
		appointmentRow("2", "6", "10", "2025-10-21", "cnl"),
		appointmentRow("2", "6", "10", "2025-10-21", "cnl"),
	}
	first := c.CleanAppointments(rows, doctors)
	second := c.CleanAppointments(rows, doctors)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical output across runs: %+v vs %+v", first, second)
	}
}
