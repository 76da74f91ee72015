package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adanyl0v/go-planner/internal/models"
)

// mapError translates driver errors into store errors, keeping the
// operation name for context.
func mapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", models.ErrAlreadyExists, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s", models.ErrNotFound, pgErr.ConstraintName)
		case pgerrcode.StringDataRightTruncationDataException,
			pgerrcode.NotNullViolation,
			pgerrcode.CheckViolation:
			return fmt.Errorf("%w: %s", models.ErrConstraintViolation, pgErr.Message)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
