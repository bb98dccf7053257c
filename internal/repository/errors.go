package repository

import (
	"errors"
	"fmt"

	domainRepo "go-clinic-scheduling/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// translateError maps driver errors that callers must branch on to domain errors.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", domainRepo.ErrDuplicateKey, pgErr.ConstraintName)
	}
	return err
}
