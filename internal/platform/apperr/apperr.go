// Package apperr defines the error kinds shared by the front-desk workflows.
// Services wrap these with context using %w; handlers classify them with
// errors.Is and turn them into a flash message plus a redirect.
package apperr

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrUnauthorizedRole   = errors.New("session role not permitted")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrDuplicateID is returned by repositories when an insert collides on
	// the primary key. The id allocator retries on it.
	ErrDuplicateID = errors.New("duplicate id")
)
