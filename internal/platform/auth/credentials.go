package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// Credentials are the fixed secrets of the front desk: the single admin
// account and the password shared by every doctor.
type Credentials struct {
	AdminUsername  string
	AdminPassword  string
	DoctorPassword string
}

// CredentialChecker verifies supplied passwords and decides how patient
// passwords are stored.
type CredentialChecker interface {
	Admin(username, password string) bool
	Patient(stored, supplied string) bool
	Doctor(supplied string) bool
	// StorePassword returns the value persisted for a patient password.
	StorePassword(password string) (string, error)
}

// NewChecker returns the checker for scheme.
func NewChecker(scheme string, creds Credentials) (CredentialChecker, error) {
	switch scheme {
	case SchemePlain, "":
		return &PlainChecker{Credentials: creds}, nil
	case SchemeBcrypt:
		return &BcryptChecker{Credentials: creds, Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("unknown credential scheme %q", scheme)
}

// PlainChecker stores patient passwords as typed and compares them
// verbatim.
type PlainChecker struct {
	Credentials
}

func (p *PlainChecker) Admin(username, password string) bool {
	return username == p.AdminUsername && password == p.AdminPassword
}

func (p *PlainChecker) Patient(stored, supplied string) bool {
	return stored == supplied
}

func (p *PlainChecker) Doctor(supplied string) bool {
	return supplied == p.DoctorPassword
}

func (p *PlainChecker) StorePassword(password string) (string, error) {
	return password, nil
}

// BcryptChecker stores patient passwords as bcrypt hashes. A stored value
// that is not a hash never matches.
type BcryptChecker struct {
	Credentials
	Cost int
}

func (b *BcryptChecker) Admin(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(b.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(b.AdminPassword)) == 1
	return userOK && passOK
}

func (b *BcryptChecker) Patient(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

func (b *BcryptChecker) Doctor(supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(b.DoctorPassword)) == 1
}

func (b *BcryptChecker) StorePassword(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
