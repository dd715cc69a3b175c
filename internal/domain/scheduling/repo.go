package scheduling

import "context"

// Repository defines the persistence interface for appointments. A
// missing row is reported as apperr.ErrNotFound and a taken id on Create
// as apperr.ErrDuplicateID.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int) (*Appointment, error)
	MaxID(ctx context.Context) (string, error)
	UpdateStatus(ctx context.Context, id int, status Status) error
	ListByPatient(ctx context.Context, patientID string) ([]*Appointment, error)
	ListByDoctor(ctx context.Context, doctorName string) ([]*Appointment, error)
	List(ctx context.Context) ([]*Appointment, error)
}
