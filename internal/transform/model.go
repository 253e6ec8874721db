package transform

import "time"

// Doctor is a cleaned doctors row.
type Doctor struct {
	DoctorID   int
	DoctorName string
	Specialty  string
}

// Appointment is a cleaned appointments row. DoctorID always references a
// Doctor produced in the same run.
type Appointment struct {
	AppointmentID int
	PatientID     int
	DoctorID      int
	DateTime      time.Time
	Status        string
}

// Canonical column order for the flat-file outputs and the bulk loads.
var (
	DoctorColumns      = []string{"doctor_id", "doctor_name", "specialty"}
	AppointmentColumns = []string{"appointment_id", "patient_id", "doctor_id", "appointment_datetime", "status"}
)
