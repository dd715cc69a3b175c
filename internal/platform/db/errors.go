package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medcare/frontdesk/internal/platform/apperr"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// MapError translates driver errors into apperr kinds: a missing row into
// ErrNotFound, a primary key collision into ErrDuplicateID, and a dangling
// foreign key into ErrNotFound. Other errors, including collisions on
// secondary unique columns, pass through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", apperr.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			if strings.HasSuffix(pgErr.ConstraintName, "_pkey") {
				return fmt.Errorf("%w: %s", apperr.ErrDuplicateID, pgErr.ConstraintName)
			}
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", apperr.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}
