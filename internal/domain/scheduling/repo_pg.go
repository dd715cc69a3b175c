package scheduling

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcare/frontdesk/internal/platform/apperr"
	"github.com/medcare/frontdesk/internal/platform/db"
)

type queryable interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type appointmentRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const appointmentCols = `appointment_id, patient_id, doctor_name, appointment_date, appointment_time, status`

// ScanAppointment reads one row selected with the appointment columns in
// table order.
func ScanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var status string
	if err := row.Scan(&a.ID, &a.PatientID, &a.DoctorName, &a.Date, &a.Time, &status); err != nil {
		return nil, db.MapError(err)
	}
	a.Status = Status(status)
	return &a, nil
}

func (r *appointmentRepoPG) list(ctx context.Context, sql string, args ...interface{}) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := ScanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (`+appointmentCols+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.PatientID, a.DoctorName, a.Date, a.Time, string(a.Status),
	)
	return db.MapError(err)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int) (*Appointment, error) {
	a, err := ScanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointment WHERE appointment_id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("appointment %d: %w", id, err)
	}
	return a, nil
}

// MaxID returns the highest appointment id in decimal, or "" when there
// are no appointments.
func (r *appointmentRepoPG) MaxID(ctx context.Context) (string, error) {
	var id string
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT appointment_id::text FROM appointment ORDER BY appointment_id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id int, status Status) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointment SET status = $2 WHERE appointment_id = $1`, id, string(status))
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID string) ([]*Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentCols+` FROM appointment
		WHERE patient_id = $1 ORDER BY appointment_id`, patientID)
}

func (r *appointmentRepoPG) ListByDoctor(ctx context.Context, doctorName string) ([]*Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentCols+` FROM appointment
		WHERE doctor_name = $1 ORDER BY appointment_id`, doctorName)
}

func (r *appointmentRepoPG) List(ctx context.Context) ([]*Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentCols+` FROM appointment ORDER BY appointment_id`)
}
