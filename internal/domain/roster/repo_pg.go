package roster

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

// queryable abstracts pgxpool.Pool and pgx.Tx.
type queryable interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func connFor(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

// maxText returns the first value of a single-column descending query, or
// "" when the table is empty.
func maxText(ctx context.Context, q queryable, sql string) (string, error) {
	var id string
	err := q.QueryRow(ctx, sql).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return id, err
}

// -- Patient Repository --

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewPatientRepo(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	return connFor(ctx, r.pool)
}

const patientCols = `patient_id, patient_name, password, email, contact_no`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(&p.ID, &p.Name, &p.Password, &p.Email, &p.ContactNo); err != nil {
		return nil, db.MapError(err)
	}
	return &p, nil
}

func collectPatients(rows pgx.Rows) ([]*Patient, error) {
	defer rows.Close()
	var out []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (`+patientCols+`)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Password, p.Email, p.ContactNo,
	)
	return db.MapError(err)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id string) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE patient_id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("patient %s: %w", id, err)
	}
	return p, nil
}

// ListByName returns every patient registered under name, oldest id first.
func (r *patientRepoPG) ListByName(ctx context.Context, name string) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient WHERE patient_name = $1 ORDER BY patient_id`, name)
	if err != nil {
		return nil, err
	}
	return collectPatients(rows)
}

// MaxID sorts ids as text, so "P1000" ranks below "P999".
func (r *patientRepoPG) MaxID(ctx context.Context) (string, error) {
	return maxText(ctx, r.conn(ctx), `SELECT patient_id FROM patient ORDER BY patient_id DESC LIMIT 1`)
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			patient_name = $2, password = $3, email = $4, contact_no = $5
		WHERE patient_id = $1`,
		p.ID, p.Name, p.Password, p.Email, p.ContactNo,
	)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patient %s: %w", p.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *patientRepoPG) Delete(ctx context.Context, id string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE patient_id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patient %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY patient_id`)
	if err != nil {
		return nil, err
	}
	return collectPatients(rows)
}

// -- Doctor Repository --

type doctorRepoPG struct {
	pool *pgxpool.Pool
}

func NewDoctorRepo(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) conn(ctx context.Context) queryable {
	return connFor(ctx, r.pool)
}

const doctorCols = `doctor_id, doctor_name, department_id, COALESCE(specialization, '')`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(&d.ID, &d.Name, &d.DepartmentID, &d.Specialization); err != nil {
		return nil, db.MapError(err)
	}
	return &d, nil
}

func collectDoctors(rows pgx.Rows) ([]*Doctor, error) {
	defer rows.Close()
	var out []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor (doctor_id, doctor_name, department_id, specialization)
		VALUES ($1, $2, $3, $4)`,
		d.ID, d.Name, d.DepartmentID, d.Specialization,
	)
	return db.MapError(err)
}

// CreateIfAbsent inserts d unless its id or name is already taken and
// reports whether a row was written.
func (r *doctorRepoPG) CreateIfAbsent(ctx context.Context, d *Doctor) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctor (doctor_id, doctor_name, department_id, specialization)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`,
		d.ID, d.Name, d.DepartmentID, d.Specialization,
	)
	if err != nil {
		return false, db.MapError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id string) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE doctor_id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("doctor %s: %w", id, err)
	}
	return d, nil
}

func (r *doctorRepoPG) GetByName(ctx context.Context, name string) (*Doctor, error) {
	d, err := scanDoctor(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE doctor_name = $1`, name))
	if err != nil {
		return nil, fmt.Errorf("doctor %q: %w", name, err)
	}
	return d, nil
}

func (r *doctorRepoPG) MaxID(ctx context.Context) (string, error) {
	return maxText(ctx, r.conn(ctx), `SELECT doctor_id FROM doctor ORDER BY doctor_id DESC LIMIT 1`)
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctor SET
			doctor_name = $2, department_id = $3, specialization = $4
		WHERE doctor_id = $1`,
		d.ID, d.Name, d.DepartmentID, d.Specialization,
	)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("doctor %s: %w", d.ID, apperr.ErrNotFound)
	}
	return nil
}

func (r *doctorRepoPG) Delete(ctx context.Context, id string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctor WHERE doctor_id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("doctor %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *doctorRepoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY doctor_id`)
	if err != nil {
		return nil, err
	}
	return collectDoctors(rows)
}

func (r *doctorRepoPG) ListByDepartment(ctx context.Context, departmentID int) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE department_id = $1 ORDER BY doctor_id`, departmentID)
	if err != nil {
		return nil, err
	}
	return collectDoctors(rows)
}

// -- Department Repository --

type departmentRepoPG struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepo(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepoPG{pool: pool}
}

func (r *departmentRepoPG) conn(ctx context.Context) queryable {
	return connFor(ctx, r.pool)
}

const departmentCols = `department_id, department_name, COALESCE(department_description, ''), doctors_registered`

func scanDepartment(row pgx.Row) (*Department, error) {
	var d Department
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.DoctorsRegistered); err != nil {
		return nil, db.MapError(err)
	}
	return &d, nil
}

func (r *departmentRepoPG) CreateIfAbsent(ctx context.Context, d *Department) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO department (department_id, department_name, department_description, doctors_registered)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (department_id) DO NOTHING`,
		d.ID, d.Name, d.Description, d.DoctorsRegistered,
	)
	if err != nil {
		return false, db.MapError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *departmentRepoPG) GetByID(ctx context.Context, id int) (*Department, error) {
	d, err := scanDepartment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+departmentCols+` FROM department WHERE department_id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("department %d: %w", id, err)
	}
	return d, nil
}

func (r *departmentRepoPG) List(ctx context.Context) ([]*Department, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+departmentCols+` FROM department ORDER BY department_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *departmentRepoPG) IncrementDoctors(ctx context.Context, id int) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE department SET doctors_registered = doctors_registered + 1 WHERE department_id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("department %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
