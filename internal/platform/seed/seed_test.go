package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medcare/frontdesk/internal/domain/roster"
)

type memDepts struct {
	rows map[int]*roster.Department
}

func (m *memDepts) CreateIfAbsent(_ context.Context, d *roster.Department) (bool, error) {
	if _, ok := m.rows[d.ID]; ok {
		return false, nil
	}
	cp := *d
	m.rows[d.ID] = &cp
	return true, nil
}

func (m *memDepts) GetByID(context.Context, int) (*roster.Department, error) { return nil, nil }
func (m *memDepts) List(context.Context) ([]*roster.Department, error)       { return nil, nil }
func (m *memDepts) IncrementDoctors(context.Context, int) error              { return nil }

type memDoctors struct {
	roster.DoctorRepository
	rows    map[string]*roster.Doctor
	failing string
}

func (m *memDoctors) CreateIfAbsent(_ context.Context, d *roster.Doctor) (bool, error) {
	if d.ID == m.failing {
		return false, errors.New("insert failed")
	}
	if _, ok := m.rows[d.ID]; ok {
		return false, nil
	}
	cp := *d
	m.rows[d.ID] = &cp
	return true, nil
}

type inlineTx struct{}

func (inlineTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestLoader() (*Loader, *memDepts, *memDoctors) {
	depts := &memDepts{rows: make(map[int]*roster.Department)}
	doctors := &memDoctors{rows: make(map[string]*roster.Doctor)}
	return NewLoader(depts, doctors, inlineTx{}, zerolog.Nop()), depts, doctors
}

func TestLoad_FromEmpty(t *testing.T) {
	l, depts, doctors := newTestLoader()
	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Departments != 10 || res.Doctors != 30 {
		t.Errorf("expected 10 departments and 30 doctors, got %+v", res)
	}
	if d := depts.rows[1001]; d == nil || d.Name != "Eyes" || d.DoctorsRegistered != 2 {
		t.Errorf("unexpected department 1001: %+v", d)
	}
	if d := doctors.rows["D001"]; d == nil || d.Name != "Dr. Ashok K. Patel" || d.DepartmentID != 1001 {
		t.Errorf("unexpected doctor D001: %+v", d)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	l, depts, _ := newTestLoader()
	if _, err := l.Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	depts.rows[1001].DoctorsRegistered = 7

	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if res.Departments != 0 || res.Doctors != 0 {
		t.Errorf("expected nothing inserted, got %+v", res)
	}
	if depts.rows[1001].DoctorsRegistered != 7 {
		t.Error("existing rows must not be overwritten")
	}
}

func TestLoad_FillsGaps(t *testing.T) {
	l, _, doctors := newTestLoader()
	doctors.rows["D005"] = &roster.Doctor{ID: "D005", Name: "someone else", DepartmentID: 1003}

	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Doctors != 29 {
		t.Errorf("expected 29 doctors added, got %d", res.Doctors)
	}
	if doctors.rows["D005"].Name != "someone else" {
		t.Error("existing doctor must be kept")
	}
}

func TestLoad_Error(t *testing.T) {
	l, _, doctors := newTestLoader()
	doctors.failing = "D017"
	_, err := l.Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "D017") {
		t.Fatalf("expected error naming D017, got %v", err)
	}
}

func TestReferenceData(t *testing.T) {
	known := make(map[int]bool)
	for _, d := range Departments() {
		known[d.ID] = true
	}
	seen := make(map[string]bool)
	for _, d := range Doctors() {
		if !known[d.DepartmentID] {
			t.Errorf("%s: unknown department %d", d.ID, d.DepartmentID)
		}
		if seen[d.Name] {
			t.Errorf("%s: duplicate doctor name %q", d.ID, d.Name)
		}
		seen[d.Name] = true
	}
	if Doctors()[0] == Doctors()[0] {
		t.Error("expected a fresh copy on every call")
	}
}
