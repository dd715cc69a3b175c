// Package seed loads the fixed department and doctor reference lists.
// Loading is idempotent: rows whose id is already present are left alone.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medcare/frontdesk/internal/domain/roster"
	"github.com/medcare/frontdesk/internal/platform/db"
)

// Result counts the rows a Load inserted.
type Result struct {
	Departments int
	Doctors     int
}

type Loader struct {
	depts   roster.DepartmentRepository
	doctors roster.DoctorRepository
	tx      db.Transactor
	logger  zerolog.Logger
}

func NewLoader(depts roster.DepartmentRepository, doctors roster.DoctorRepository, tx db.Transactor, logger zerolog.Logger) *Loader {
	return &Loader{
		depts:   depts,
		doctors: doctors,
		tx:      tx,
		logger:  logger.With().Str("component", "seed").Logger(),
	}
}

// Load inserts every missing department, then every missing doctor, in one
// transaction.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	var res Result
	err := l.tx.WithTx(ctx, func(ctx context.Context) error {
		res = Result{}
		for _, d := range Departments() {
			created, err := l.depts.CreateIfAbsent(ctx, d)
			if err != nil {
				return fmt.Errorf("seed department %d: %w", d.ID, err)
			}
			if created {
				res.Departments++
			}
		}
		for _, d := range Doctors() {
			created, err := l.doctors.CreateIfAbsent(ctx, d)
			if err != nil {
				return fmt.Errorf("seed doctor %s: %w", d.ID, err)
			}
			if created {
				res.Doctors++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	l.logger.Info().
		Int("departments_added", res.Departments).
		Int("doctors_added", res.Doctors).
		Msg("reference data loaded")
	return res, nil
}
