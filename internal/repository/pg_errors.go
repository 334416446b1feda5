package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/stockcheckout/internal/domain"
)

// Postgres SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgCheckViolation       = "23514"
	pgForeignKeyViolation  = "23503"
)

// mapPgError tags lock contention errors with domain.ErrConflict and
// constraint violations with domain.ErrValidation. Other errors pass through.
func mapPgError(err error) error {
	if err == nil || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrValidation) {
		return err
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case pgCheckViolation, pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	return err
}
