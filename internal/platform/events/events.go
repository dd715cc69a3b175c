// Package events announces appointment and treatment changes to other
// systems. Delivery is best effort: a request never fails because an
// event could not be sent.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	AppointmentBooked    = "appointment.booked"
	AppointmentCancelled = "appointment.cancelled"
	AppointmentCompleted = "appointment.completed"
	TreatmentRecorded    = "treatment.recorded"
)

type Event struct {
	Type          string    `json:"type"`
	AppointmentID int       `json:"appointment_id"`
	PatientID     string    `json:"patient_id,omitempty"`
	DoctorName    string    `json:"doctor_name,omitempty"`
	Status        string    `json:"status,omitempty"`
	Actor         string    `json:"actor,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Key groups every event of one appointment on the same partition.
func (e Event) Key() []byte {
	return []byte(strconv.Itoa(e.AppointmentID))
}

func (e Event) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With().Str("component", "events").Logger()}
}

func (p *LogPublisher) Publish(_ context.Context, e Event) error {
	p.logger.Info().
		Str("event", e.Type).
		Int("appointment_id", e.AppointmentID).
		Str("patient_id", e.PatientID).
		Str("doctor_name", e.DoctorName).
		Str("status", e.Status).
		Time("occurred_at", e.OccurredAt).
		Msg("event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// bestEffort logs publishing failures instead of returning them.
type bestEffort struct {
	next   Publisher
	logger zerolog.Logger
}

// BestEffort wraps p so that Publish always succeeds; failures are logged.
func BestEffort(p Publisher, logger zerolog.Logger) Publisher {
	return &bestEffort{next: p, logger: logger}
}

func (b *bestEffort) Publish(ctx context.Context, e Event) error {
	if err := b.next.Publish(ctx, e); err != nil {
		b.logger.Warn().Err(err).
			Str("event", e.Type).
			Int("appointment_id", e.AppointmentID).
			Msg("failed to publish event")
	}
	return nil
}

func (b *bestEffort) Close() error { return b.next.Close() }

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
