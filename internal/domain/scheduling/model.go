package scheduling

import (
	"encoding/json"
	"time"
)

// DateLayout is the form and display format of appointment dates.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusBooked    Status = "Booked"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// Appointment maps to the appointment table. PatientID and DoctorName are
// plain values, not references: they survive the deletion of the patient
// or doctor.
type Appointment struct {
	ID         int       `db:"appointment_id" json:"appointment_id"`
	PatientID  string    `db:"patient_id" json:"patient_id"`
	DoctorName string    `db:"doctor_name" json:"doctor_name"`
	Date       time.Time `db:"appointment_date" json:"date"`
	Time       string    `db:"appointment_time" json:"time"`
	Status     Status    `db:"status" json:"status"`
}

// DateString formats the appointment day as YYYY-MM-DD.
func (a *Appointment) DateString() string {
	return a.Date.Format(DateLayout)
}

func (a Appointment) MarshalJSON() ([]byte, error) {
	type plain Appointment
	return json.Marshal(struct {
		plain
		Date string `json:"date"`
	}{plain: plain(a), Date: a.DateString()})
}

func (a *Appointment) UnmarshalJSON(b []byte) error {
	type plain Appointment
	var aux struct {
		*plain
		Date string `json:"date"`
	}
	aux.plain = (*plain)(a)
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.Date == "" {
		a.Date = time.Time{}
		return nil
	}
	day, err := time.Parse(DateLayout, aux.Date)
	if err != nil {
		return err
	}
	a.Date = day
	return nil
}
