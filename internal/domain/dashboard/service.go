// Package dashboard assembles the read-only landing pages of the three
// roles from the roster and the appointment book.
package dashboard

import (
	"context"

	"github.com/samber/lo"

	"github.com/medcare/frontdesk/internal/domain/roster"
	"github.com/medcare/frontdesk/internal/domain/scheduling"
	"github.com/medcare/frontdesk/internal/platform/session"
)

type Roster interface {
	ListDoctors(ctx context.Context) ([]*roster.Doctor, error)
	ListPatients(ctx context.Context) ([]*roster.Patient, error)
	ListDepartments(ctx context.Context) ([]*roster.Department, error)
}

type Appointments interface {
	List(ctx context.Context) ([]*scheduling.Appointment, error)
	ListForDoctor(ctx context.Context, doctorName string) ([]*scheduling.Appointment, error)
}

// AppointmentRow is an appointment with the patient it was booked for.
// Patient is nil on the admin page when the patient has been deleted.
type AppointmentRow struct {
	Appointment *scheduling.Appointment `json:"appointment"`
	Patient     *roster.Patient         `json:"patient"`
}

type AdminView struct {
	Doctors           []*roster.Doctor  `json:"doctors"`
	Patients          []*roster.Patient `json:"patients"`
	Appointments      []AppointmentRow  `json:"appointments"`
	TotalDoctors      int               `json:"total_doctors"`
	TotalPatients     int               `json:"total_patients"`
	TotalAppointments int               `json:"total_appointments"`
}

type DoctorView struct {
	DoctorName        string            `json:"doctor_name"`
	Appointments      []AppointmentRow  `json:"appointments"`
	CompletedPatients []*roster.Patient `json:"completed_patients"`
}

type PatientView struct {
	PatientID   string               `json:"patient_id"`
	PatientName string               `json:"patient_name"`
	Departments []*roster.Department `json:"departments"`
}

type Service struct {
	roster       Roster
	appointments Appointments
}

func NewService(r Roster, a Appointments) *Service {
	return &Service{roster: r, appointments: a}
}

func (s *Service) patientsByID(ctx context.Context) ([]*roster.Patient, map[string]*roster.Patient, error) {
	patients, err := s.roster.ListPatients(ctx)
	if err != nil {
		return nil, nil, err
	}
	return patients, lo.KeyBy(patients, func(p *roster.Patient) string { return p.ID }), nil
}

// Admin lists everything on file. Every appointment is shown, with a nil
// patient when it no longer resolves.
func (s *Service) Admin(ctx context.Context) (*AdminView, error) {
	doctors, err := s.roster.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	patients, byID, err := s.patientsByID(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := lo.Map(appointments, func(a *scheduling.Appointment, _ int) AppointmentRow {
		return AppointmentRow{Appointment: a, Patient: byID[a.PatientID]}
	})
	return &AdminView{
		Doctors:           nonNil(doctors),
		Patients:          nonNil(patients),
		Appointments:      rows,
		TotalDoctors:      len(doctors),
		TotalPatients:     len(patients),
		TotalAppointments: len(appointments),
	}, nil
}

// Doctor lists the signed-in doctor's appointments whose patient still
// exists, and the distinct patients of the completed ones in first-seen
// order.
func (s *Service) Doctor(ctx context.Context, sess *session.Session) (*DoctorView, error) {
	if err := session.Require(sess, session.RoleDoctor); err != nil {
		return nil, err
	}
	doctor, _ := sess.Doctor()

	appointments, err := s.appointments.ListForDoctor(ctx, doctor.Name)
	if err != nil {
		return nil, err
	}
	_, byID, err := s.patientsByID(ctx)
	if err != nil {
		return nil, err
	}

	rows := lo.FilterMap(appointments, func(a *scheduling.Appointment, _ int) (AppointmentRow, bool) {
		p, ok := byID[a.PatientID]
		return AppointmentRow{Appointment: a, Patient: p}, ok
	})
	completed := lo.Filter(rows, func(r AppointmentRow, _ int) bool {
		return r.Appointment.Status == scheduling.StatusCompleted
	})
	completed = lo.UniqBy(completed, func(r AppointmentRow) string { return r.Patient.ID })
	patients := lo.Map(completed, func(r AppointmentRow, _ int) *roster.Patient { return r.Patient })

	return &DoctorView{
		DoctorName:        doctor.Name,
		Appointments:      nonNil(rows),
		CompletedPatients: patients,
	}, nil
}

// Patient shows the departments a signed-in patient can browse.
func (s *Service) Patient(ctx context.Context, sess *session.Session) (*PatientView, error) {
	if err := session.Require(sess, session.RolePatient); err != nil {
		return nil, err
	}
	patient, _ := sess.Patient()

	depts, err := s.roster.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	return &PatientView{
		PatientID:   patient.ID,
		PatientName: patient.Name,
		Departments: nonNil(depts),
	}, nil
}

// nonNil keeps empty lists as [] in JSON views.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
