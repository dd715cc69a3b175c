package roster

import "context"

// PatientRepository defines the persistence interface for patients.
// Lookups of a missing row return apperr.ErrNotFound; Create reports a
// taken id as apperr.ErrDuplicateID.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	ListByName(ctx context.Context, name string) ([]*Patient, error)
	MaxID(ctx context.Context) (string, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Patient, error)
}

// DoctorRepository defines the persistence interface for doctors.
type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	CreateIfAbsent(ctx context.Context, d *Doctor) (bool, error)
	GetByID(ctx context.Context, id string) (*Doctor, error)
	GetByName(ctx context.Context, name string) (*Doctor, error)
	MaxID(ctx context.Context) (string, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Doctor, error)
	ListByDepartment(ctx context.Context, departmentID int) ([]*Doctor, error)
}

// DepartmentRepository defines the persistence interface for departments.
type DepartmentRepository interface {
	CreateIfAbsent(ctx context.Context, d *Department) (bool, error)
	GetByID(ctx context.Context, id int) (*Department, error)
	List(ctx context.Context) ([]*Department, error)
	IncrementDoctors(ctx context.Context, id int) error
}
