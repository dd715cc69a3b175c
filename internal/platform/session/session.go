// Package session holds the per-visitor state of the front desk: who is
// signed in and which notices are waiting to be shown.
package session

import (
	"context"
	"fmt"

	"github.com/medcare/frontdesk/internal/platform/apperr"
)

type Role string

const (
	RoleNone    Role = ""
	RoleAdmin   Role = "admin"
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Identity is the signed-in principal. Exactly one of Admin, Patient or
// Doctor; a nil Identity means nobody is signed in.
type Identity interface {
	Role() Role
	isIdentity()
}

type Admin struct{}

func (Admin) Role() Role  { return RoleAdmin }
func (Admin) isIdentity() {}

type Patient struct {
	ID   string
	Name string
}

func (Patient) Role() Role  { return RolePatient }
func (Patient) isIdentity() {}

type Doctor struct {
	ID   string
	Name string
}

func (Doctor) Role() Role  { return RoleDoctor }
func (Doctor) isIdentity() {}

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Session struct {
	identity Identity
	flashes  []Flash
	dirty    bool
}

func New() *Session { return &Session{} }

func (s *Session) Identity() Identity { return s.identity }

func (s *Session) Role() Role {
	if s == nil || s.identity == nil {
		return RoleNone
	}
	return s.identity.Role()
}

// SignIn replaces the current identity.
func (s *Session) SignIn(id Identity) {
	s.identity = id
	s.dirty = true
}

// Clear drops the identity and every pending flash.
func (s *Session) Clear() {
	s.identity = nil
	s.flashes = nil
	s.dirty = true
}

func (s *Session) AddFlash(category, message string) {
	s.flashes = append(s.flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

// PopFlashes returns and forgets the pending notices.
func (s *Session) PopFlashes() []Flash {
	if len(s.flashes) == 0 {
		return nil
	}
	out := s.flashes
	s.flashes = nil
	s.dirty = true
	return out
}

// Patient returns the signed-in patient, if any.
func (s *Session) Patient() (Patient, bool) {
	p, ok := s.identity.(Patient)
	return p, ok
}

// Doctor returns the signed-in doctor, if any.
func (s *Session) Doctor() (Doctor, bool) {
	d, ok := s.identity.(Doctor)
	return d, ok
}

func (s *Session) Dirty() bool { return s.dirty }

// Require reports apperr.ErrUnauthorizedRole unless the session holds role.
func Require(s *Session, role Role) error {
	if got := s.Role(); got != role {
		return fmt.Errorf("need %s session, have %q: %w", role, got, apperr.ErrUnauthorizedRole)
	}
	return nil
}

type contextKey string

const sessionKey contextKey = "session"

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the request session. A context without one yields a
// fresh anonymous session.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey).(*Session); ok && s != nil {
		return s
	}
	return New()
}
