package treatment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medcare/frontdesk/internal/domain/roster"
	"github.com/medcare/frontdesk/internal/domain/scheduling"
	"github.com/medcare/frontdesk/internal/platform/apperr"
	"github.com/medcare/frontdesk/internal/platform/events"
	"github.com/medcare/frontdesk/internal/platform/session"
)

// AppointmentReader resolves the appointment a treatment is recorded for.
type AppointmentReader interface {
	Get(ctx context.Context, id int) (*scheduling.Appointment, error)
}

// PatientReader resolves patients for the treatment and history pages.
type PatientReader interface {
	GetPatient(ctx context.Context, id string) (*roster.Patient, error)
}

type Service struct {
	repo         Repository
	appointments AppointmentReader
	patients     PatientReader
	events       events.Publisher
	now          func() time.Time
}

func NewService(repo Repository, appointments AppointmentReader, patients PatientReader, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		repo:         repo,
		appointments: appointments,
		patients:     patients,
		events:       publisher,
		now:          time.Now,
	}
}

// Form is what the treatment page shows: the appointment, its patient (nil
// once the patient has been deleted) and the notes recorded so far (nil
// before the first save).
type Form struct {
	Appointment *scheduling.Appointment `json:"appointment"`
	Patient     *roster.Patient         `json:"patient"`
	Treatment   *Treatment              `json:"treatment"`
}

func (s *Service) Form(ctx context.Context, appointmentID int) (*Form, error) {
	a, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	f := &Form{Appointment: a}

	p, err := s.patients.GetPatient(ctx, a.PatientID)
	switch {
	case err == nil:
		f.Patient = p
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	t, err := s.repo.Get(ctx, a.PatientID, a.ID)
	switch {
	case err == nil:
		f.Treatment = t
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}
	return f, nil
}

// Record stores the notes for an appointment, overwriting any earlier
// notes for the same patient and appointment. The caller's role is not
// checked.
func (s *Service) Record(ctx context.Context, sess *session.Session, appointmentID int, notes Notes) (*Treatment, error) {
	a, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.Get(ctx, a.PatientID, a.ID)
	switch {
	case err == nil:
		t.Notes = notes
		err = s.repo.Update(ctx, t)
	case errors.Is(err, apperr.ErrNotFound):
		t = &Treatment{PatientID: a.PatientID, AppointmentID: a.ID, Notes: notes}
		err = s.repo.Create(ctx, t)
		if errors.Is(err, apperr.ErrDuplicateID) {
			// Another save for this appointment landed first.
			err = s.repo.Update(ctx, t)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("record treatment for appointment %d: %w", appointmentID, err)
	}

	actor := ""
	if d, ok := sess.Doctor(); ok {
		actor = d.ID
	}
	_ = s.events.Publish(ctx, events.Event{
		Type:          events.TreatmentRecorded,
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		DoctorName:    a.DoctorName,
		Status:        string(a.Status),
		Actor:         actor,
		OccurredAt:    s.now().UTC(),
	})
	return t, nil
}

// History returns the patient and their treatments with the matching
// appointments.
func (s *Service) History(ctx context.Context, patientID string) (*roster.Patient, []*HistoryEntry, error) {
	p, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.repo.History(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	return p, entries, nil
}
