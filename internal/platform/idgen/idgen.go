// Package idgen derives human-readable identifiers ("P004", "D031", "105")
// from the highest identifier currently stored.
package idgen

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/medcare/frontdesk/internal/platform/apperr"
)

// DefaultAttempts bounds the allocate/insert retry loop.
const DefaultAttempts = 8

// Sequence describes one identifier family.
type Sequence struct {
	Prefix   string
	Width    int // zero-pad width of the numeric part; 0 means no padding
	Floor    int // value issued when the table is empty
	Attempts int // insert attempts before giving up; <= 0 uses DefaultAttempts
}

var (
	Patient     = Sequence{Prefix: "P", Width: 3, Floor: 1}
	Doctor      = Sequence{Prefix: "D", Width: 3, Floor: 1}
	Appointment = Sequence{Floor: 101}
)

// WithAttempts returns a copy of s with the retry bound replaced.
func (s Sequence) WithAttempts(n int) Sequence {
	s.Attempts = n
	return s
}

// Next returns the identifier following current. An empty current yields
// the sequence floor.
func (s Sequence) Next(current string) (string, error) {
	if current == "" {
		return s.format(s.Floor), nil
	}
	if !strings.HasPrefix(current, s.Prefix) {
		return "", fmt.Errorf("identifier %q lacks prefix %q", current, s.Prefix)
	}
	n, err := strconv.Atoi(current[len(s.Prefix):])
	if err != nil {
		return "", fmt.Errorf("identifier %q has non-numeric suffix: %w", current, err)
	}
	return s.format(n + 1), nil
}

func (s Sequence) format(n int) string {
	if s.Width <= 0 {
		return s.Prefix + strconv.Itoa(n)
	}
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Width, n)
}

func (s Sequence) attempts() int {
	if s.Attempts <= 0 {
		return DefaultAttempts
	}
	return s.Attempts
}

// MaxFunc returns the current highest identifier, or "" for an empty table.
type MaxFunc func(ctx context.Context) (string, error)

// InsertFunc stores a row under id. It must report a primary-key collision
// as apperr.ErrDuplicateID.
type InsertFunc func(ctx context.Context, id string) error

// ErrExhausted is returned when every attempt collided with a concurrent insert.
var ErrExhausted = errors.New("id allocation attempts exhausted")

// Allocate reads the current maximum, derives the next identifier and
// inserts with it. A collision means another request took the same value
// between the read and the insert; the maximum is re-read and the insert
// retried.
func Allocate(ctx context.Context, seq Sequence, max MaxFunc, insert InsertFunc) (string, error) {
	var lastErr error
	for i := 0; i < seq.attempts(); i++ {
		current, err := max(ctx)
		if err != nil {
			return "", fmt.Errorf("read max id: %w", err)
		}
		id, err := seq.Next(current)
		if err != nil {
			return "", err
		}
		err = insert(ctx, id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, apperr.ErrDuplicateID) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("%w: %v", ErrExhausted, lastErr)
}
