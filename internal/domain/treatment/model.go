package treatment

import "github.com/medcare/frontdesk/internal/domain/scheduling"

// Treatment is the doctor's record of one appointment. There is at most
// one per (patient, appointment) pair.
type Treatment struct {
	PatientID     string `db:"patient_id" json:"patient_id"`
	AppointmentID int    `db:"appointment_id" json:"appointment_id"`
	Notes
}

// Notes are the free-text fields a doctor fills in.
type Notes struct {
	TestDone     string `db:"test_done" json:"test_done"`
	Diagnosis    string `db:"diagnosis" json:"diagnosis"`
	Prescription string `db:"prescription" json:"prescription"`
	Medicines    string `db:"medicines" json:"medicines"`
}

// HistoryEntry pairs a treatment with the appointment it belongs to.
type HistoryEntry struct {
	Treatment   *Treatment              `json:"treatment"`
	Appointment *scheduling.Appointment `json:"appointment"`
}

// Origin names the page a history request came from. All origins show the
// same rows; only the surrounding view differs.
type Origin string

const (
	OriginHistory        Origin = "history"
	OriginPastHistory    Origin = "past_history"
	OriginPatientHistory Origin = "patient_history"
)
