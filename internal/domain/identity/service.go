// Package identity signs visitors in and out and registers new patients.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/medcare/frontdesk/internal/domain/roster"
	"github.com/medcare/frontdesk/internal/platform/apperr"
	"github.com/medcare/frontdesk/internal/platform/auth"
	"github.com/medcare/frontdesk/internal/platform/session"
)

// Directory is the part of the roster that identity needs.
type Directory interface {
	PatientsNamed(ctx context.Context, name string) ([]*roster.Patient, error)
	DoctorByName(ctx context.Context, name string) (*roster.Doctor, error)
	RegisterPatient(ctx context.Context, name, password string) (*roster.Patient, error)
}

type Service struct {
	dir   Directory
	creds auth.CredentialChecker
}

func NewService(dir Directory, creds auth.CredentialChecker) *Service {
	return &Service{dir: dir, creds: creds}
}

// Authenticate resolves a username and password to an identity. The admin
// account is tried first, then patients by name and password, then
// doctors by name with the shared doctor password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (session.Identity, error) {
	if s.creds.Admin(username, password) {
		return session.Admin{}, nil
	}

	patients, err := s.dir.PatientsNamed(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("look up patient: %w", err)
	}
	for _, p := range patients {
		if s.creds.Patient(p.Password, password) {
			return session.Patient{ID: p.ID, Name: p.Name}, nil
		}
	}

	d, err := s.dir.DoctorByName(ctx, username)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return nil, apperr.ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("look up doctor: %w", err)
	}
	if !s.creds.Doctor(password) {
		return nil, apperr.ErrInvalidCredentials
	}
	return session.Doctor{ID: d.ID, Name: d.Name}, nil
}

// Login authenticates and, on success, replaces the session identity.
func (s *Service) Login(ctx context.Context, sess *session.Session, username, password string) (session.Identity, error) {
	id, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	sess.SignIn(id)
	return id, nil
}

func (s *Service) Register(ctx context.Context, username, password string) (*roster.Patient, error) {
	return s.dir.RegisterPatient(ctx, username, password)
}

// Logout forgets the identity and any pending notices.
func (s *Service) Logout(sess *session.Session) {
	sess.Clear()
}

// HomeFor is the dashboard a freshly signed-in identity is sent to.
func HomeFor(id session.Identity) string {
	switch id.(type) {
	case session.Admin:
		return "/admin"
	case session.Patient:
		return "/patient"
	case session.Doctor:
		return "/doctor"
	}
	return "/login"
}
