package treatment

import "context"

type Repository interface {
	Get(ctx context.Context, patientID string, appointmentID int) (*Treatment, error)
	Create(ctx context.Context, t *Treatment) error
	Update(ctx context.Context, t *Treatment) error
	// History returns the patient's treatments joined to their appointments,
	// oldest appointment first.
	History(ctx context.Context, patientID string) ([]*HistoryEntry, error)
}
