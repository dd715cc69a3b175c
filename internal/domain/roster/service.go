package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/medcare/frontdesk/internal/platform/apperr"
	"github.com/medcare/frontdesk/internal/platform/auth"
	"github.com/medcare/frontdesk/internal/platform/db"
	"github.com/medcare/frontdesk/internal/platform/idgen"
)

// MaxPasswordLen is the longest patient password accepted, in characters.
const MaxPasswordLen = 8

// ErrUnknownDepartment is returned when a doctor is placed in a department
// that does not exist. It is a kind of apperr.ErrNotFound.
var ErrUnknownDepartment = fmt.Errorf("department %w", apperr.ErrNotFound)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
	depts    DepartmentRepository
	tx       db.Transactor
	creds    auth.CredentialChecker

	patientSeq idgen.Sequence
	doctorSeq  idgen.Sequence
}

func NewService(patients PatientRepository, doctors DoctorRepository, depts DepartmentRepository, tx db.Transactor, creds auth.CredentialChecker) *Service {
	return &Service{
		patients:   patients,
		doctors:    doctors,
		depts:      depts,
		tx:         tx,
		creds:      creds,
		patientSeq: idgen.Patient,
		doctorSeq:  idgen.Doctor,
	}
}

// SetIDAttempts bounds how often id allocation retries after a collision.
func (s *Service) SetIDAttempts(n int) {
	s.patientSeq = s.patientSeq.WithAttempts(n)
	s.doctorSeq = s.doctorSeq.WithAttempts(n)
}

func validatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n == 0 || n > MaxPasswordLen {
		return fmt.Errorf("password must be 1 to %d characters: %w", MaxPasswordLen, apperr.ErrInvalidInput)
	}
	return nil
}

// -- Patients --

// RegisterPatient creates a patient account under the next free P-number.
// A name that is already registered is rejected and nothing is written.
func (s *Service) RegisterPatient(ctx context.Context, name, password string) (*Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("username is required: %w", apperr.ErrInvalidInput)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.patients.ListByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("look up patient name: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("patient %q: %w", name, apperr.ErrDuplicateUsername)
	}

	stored, err := s.creds.StorePassword(password)
	if err != nil {
		return nil, err
	}

	p := &Patient{Name: name, Password: stored}
	_, err = idgen.Allocate(ctx, s.patientSeq, s.patients.MaxID, func(ctx context.Context, id string) error {
		p.ID = id
		return s.patients.Create(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("register patient: %w", err)
	}
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// PatientsNamed returns every patient registered under name.
func (s *Service) PatientsNamed(ctx context.Context, name string) ([]*Patient, error) {
	return s.patients.ListByName(ctx, name)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

// EditPatient is the administrator's edit of a patient's name and password.
func (s *Service) EditPatient(ctx context.Context, id, name, password string) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	stored, err := s.creds.StorePassword(password)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.Password = stored
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update patient %s: %w", id, err)
	}
	return p, nil
}

// EditProfile is the patient's own edit of their details.
func (s *Service) EditProfile(ctx context.Context, id string, upd ProfileUpdate) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(upd.Password); err != nil {
		return nil, err
	}
	stored, err := s.creds.StorePassword(upd.Password)
	if err != nil {
		return nil, err
	}
	email, contact := upd.Email, upd.ContactNo
	p.Name = upd.Name
	p.Email = &email
	p.ContactNo = &contact
	p.Password = stored
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile %s: %w", id, err)
	}
	return p, nil
}

// DeletePatient removes the patient row. Their appointments and
// treatments are kept.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	if _, err := s.patients.GetByID(ctx, id); err != nil {
		return err
	}
	return s.patients.Delete(ctx, id)
}

// -- Doctors --

// AddDoctor registers a doctor under the next free D-number and bumps the
// department's doctor count, both in one transaction.
func (s *Service) AddDoctor(ctx context.Context, name string, departmentID int, specialization string) (*Doctor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("doctor name is required: %w", apperr.ErrInvalidInput)
	}

	d := &Doctor{Name: name, DepartmentID: departmentID, Specialization: specialization}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.depts.GetByID(ctx, departmentID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return fmt.Errorf("%w: %d", ErrUnknownDepartment, departmentID)
			}
			return err
		}

		_, err := idgen.Allocate(ctx, s.doctorSeq, s.doctors.MaxID, func(ctx context.Context, id string) error {
			d.ID = id
			// Each attempt gets its own savepoint so a collision does not
			// poison the surrounding transaction.
			return s.tx.WithTx(ctx, func(ctx context.Context) error {
				return s.doctors.Create(ctx, d)
			})
		})
		if err != nil {
			return fmt.Errorf("allocate doctor id: %w", err)
		}

		return s.depts.IncrementDoctors(ctx, departmentID)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) DoctorByName(ctx context.Context, name string) (*Doctor, error) {
	return s.doctors.GetByName(ctx, name)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.List(ctx)
}

// DoctorsInDepartment returns the department, nil when it does not exist,
// and the doctors filed under its id.
func (s *Service) DoctorsInDepartment(ctx context.Context, departmentID int) (*Department, []*Doctor, error) {
	dept, err := s.depts.GetByID(ctx, departmentID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, nil, err
	}
	doctors, err := s.doctors.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, nil, err
	}
	return dept, doctors, nil
}

// EditDoctor overwrites a doctor's name, specialization and department.
// Department counters are not adjusted.
func (s *Service) EditDoctor(ctx context.Context, id, name, specialization string, departmentID int) (*Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.depts.GetByID(ctx, departmentID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownDepartment, departmentID)
		}
		return nil, err
	}
	d.Name = name
	d.Specialization = specialization
	d.DepartmentID = departmentID
	if err := s.doctors.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update doctor %s: %w", id, err)
	}
	return d, nil
}

// DeleteDoctor removes the doctor row. Appointments naming the doctor and
// the department counter are left unchanged.
func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	if _, err := s.doctors.GetByID(ctx, id); err != nil {
		return err
	}
	return s.doctors.Delete(ctx, id)
}

// -- Departments --

func (s *Service) ListDepartments(ctx context.Context) ([]*Department, error) {
	return s.depts.List(ctx)
}
