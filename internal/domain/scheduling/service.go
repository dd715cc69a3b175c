package scheduling

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/medcare/frontdesk/internal/platform/apperr"
	"github.com/medcare/frontdesk/internal/platform/events"
	"github.com/medcare/frontdesk/internal/platform/idgen"
	"github.com/medcare/frontdesk/internal/platform/session"
)

type Service struct {
	repo   Repository
	events events.Publisher
	seq    idgen.Sequence
	now    func() time.Time
}

func NewService(repo Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		repo:   repo,
		events: publisher,
		seq:    idgen.Appointment,
		now:    time.Now,
	}
}

// SetIDAttempts bounds how often id allocation retries after a collision.
func (s *Service) SetIDAttempts(n int) {
	s.seq = s.seq.WithAttempts(n)
}

// Today is the default date offered on the booking page.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

func actorOf(sess *session.Session) string {
	switch id := sess.Identity().(type) {
	case session.Patient:
		return id.ID
	case session.Doctor:
		return id.ID
	case session.Admin:
		return "admin"
	}
	return ""
}

func (s *Service) publish(ctx context.Context, typ, actor string, a *Appointment) {
	_ = s.events.Publish(ctx, events.Event{
		Type:          typ,
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		DoctorName:    a.DoctorName,
		Status:        string(a.Status),
		Actor:         actor,
		OccurredAt:    s.now().UTC(),
	})
}

// Book creates a Booked appointment for the signed-in patient. The doctor
// is not checked against the roster and no slot conflicts are detected.
func (s *Service) Book(ctx context.Context, sess *session.Session, doctorName, date, timeOfDay string) (*Appointment, error) {
	if err := session.Require(sess, session.RolePatient); err != nil {
		return nil, err
	}
	patient, _ := sess.Patient()

	day, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, fmt.Errorf("appointment date %q: %w", date, apperr.ErrInvalidInput)
	}

	a := &Appointment{
		PatientID:  patient.ID,
		DoctorName: doctorName,
		Date:       day,
		Time:       timeOfDay,
		Status:     StatusBooked,
	}
	_, err = idgen.Allocate(ctx, s.seq, s.repo.MaxID, func(ctx context.Context, id string) error {
		n, err := strconv.Atoi(id)
		if err != nil {
			return err
		}
		a.ID = n
		return s.repo.Create(ctx, a)
	})
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	s.publish(ctx, events.AppointmentBooked, patient.ID, a)
	return a, nil
}

func (s *Service) transition(ctx context.Context, id int, status Status, typ, actor string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	a.Status = status
	s.publish(ctx, typ, actor, a)
	return a, nil
}

// Cancel is the patient's cancellation. Any appointment id is accepted,
// whoever booked it and whatever its current status.
func (s *Service) Cancel(ctx context.Context, sess *session.Session, id int) (*Appointment, error) {
	return s.transition(ctx, id, StatusCancelled, events.AppointmentCancelled, actorOf(sess))
}

// CancelByDoctor is the cancellation offered on the doctor dashboard. The
// caller's role is not checked.
func (s *Service) CancelByDoctor(ctx context.Context, sess *session.Session, id int) (*Appointment, error) {
	return s.transition(ctx, id, StatusCancelled, events.AppointmentCancelled, actorOf(sess))
}

// Complete marks an appointment Completed. Only a signed-in doctor may do
// so; an unknown id leaves the store untouched.
func (s *Service) Complete(ctx context.Context, sess *session.Session, id int) (*Appointment, error) {
	if err := session.Require(sess, session.RoleDoctor); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, StatusCompleted, events.AppointmentCompleted, actorOf(sess))
}

func (s *Service) Get(ctx context.Context, id int) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForPatient(ctx context.Context, patientID string) ([]*Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListForDoctor(ctx context.Context, doctorName string) ([]*Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorName)
}

func (s *Service) List(ctx context.Context) ([]*Appointment, error) {
	return s.repo.List(ctx)
}
