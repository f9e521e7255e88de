package postgres

import (
	"errors"

	"github.com/go-auth-api/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

// wrap attaches an error code and operation to err. Unique violations become
// domain.ErrConflict and missing rows domain.ErrNotFound.
func wrap(err error, code, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return oops.Code(code).With("operation", op).Wrap(domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return oops.Code(code).
			With("operation", op).
			With("constraint", pgErr.ConstraintName).
			Wrap(domain.ErrConflict)
	}
	return oops.Code(code).With("operation", op).Wrap(err)
}
