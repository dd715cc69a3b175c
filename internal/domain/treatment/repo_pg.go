package treatment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcare/frontdesk/internal/domain/scheduling"
	"github.com/medcare/frontdesk/internal/platform/apperr"
	"github.com/medcare/frontdesk/internal/platform/db"
)

type queryable interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type treatmentRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &treatmentRepoPG{pool: pool}
}

func (r *treatmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// The note columns are nullable; they read back as empty strings.
const treatmentCols = `t.patient_id, t.appointment_id,
	COALESCE(t.test_done, ''), COALESCE(t.diagnosis, ''),
	COALESCE(t.prescription, ''), COALESCE(t.medicines, '')`

func (r *treatmentRepoPG) Get(ctx context.Context, patientID string, appointmentID int) (*Treatment, error) {
	var t Treatment
	err := r.conn(ctx).QueryRow(ctx, `SELECT `+treatmentCols+` FROM treatment t
		WHERE t.patient_id = $1 AND t.appointment_id = $2`, patientID, appointmentID).
		Scan(&t.PatientID, &t.AppointmentID, &t.TestDone, &t.Diagnosis, &t.Prescription, &t.Medicines)
	if err != nil {
		return nil, fmt.Errorf("treatment %s/%d: %w", patientID, appointmentID, db.MapError(err))
	}
	return &t, nil
}

func (r *treatmentRepoPG) Create(ctx context.Context, t *Treatment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO treatment (patient_id, appointment_id, test_done, diagnosis, prescription, medicines)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.PatientID, t.AppointmentID, t.TestDone, t.Diagnosis, t.Prescription, t.Medicines,
	)
	return db.MapError(err)
}

func (r *treatmentRepoPG) Update(ctx context.Context, t *Treatment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE treatment SET test_done = $3, diagnosis = $4, prescription = $5, medicines = $6
		WHERE patient_id = $1 AND appointment_id = $2`,
		t.PatientID, t.AppointmentID, t.TestDone, t.Diagnosis, t.Prescription, t.Medicines,
	)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("treatment %s/%d: %w", t.PatientID, t.AppointmentID, apperr.ErrNotFound)
	}
	return nil
}

func (r *treatmentRepoPG) History(ctx context.Context, patientID string) ([]*HistoryEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+treatmentCols+`,
			a.appointment_id, a.patient_id, a.doctor_name, a.appointment_date, a.appointment_time, a.status
		FROM treatment t
		JOIN appointment a ON a.appointment_id = t.appointment_id
		WHERE t.patient_id = $1
		ORDER BY a.appointment_date, a.appointment_id`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*HistoryEntry
	for rows.Next() {
		var t Treatment
		var a scheduling.Appointment
		var status string
		if err := rows.Scan(
			&t.PatientID, &t.AppointmentID, &t.TestDone, &t.Diagnosis, &t.Prescription, &t.Medicines,
			&a.ID, &a.PatientID, &a.DoctorName, &a.Date, &a.Time, &status,
		); err != nil {
			return nil, err
		}
		a.Status = scheduling.Status(status)
		out = append(out, &HistoryEntry{Treatment: &t, Appointment: &a})
	}
	return out, rows.Err()
}
