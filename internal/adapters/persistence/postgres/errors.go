package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/jsamuelsen11/guidedtours/internal/domain"
)

// PostgreSQL SQLSTATE codes mapped to domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeStringTruncation    = "22001"
)

// mapError translates driver and ORM errors into domain sentinels. what
// names the failed operation and its subject, e.g. "get tour 5".
func mapError(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %s: %w", what, pgErr.Message, domain.ErrConflict)
		case codeForeignKeyViolation, codeNotNullViolation, codeStringTruncation:
			return validationError(pgErr)
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%s: %w: %w", what, domain.ErrPersistence, err)
}

func validationError(pgErr *pgconn.PgError) *domain.ValidationError {
	field := pgErr.ColumnName
	if field == "" {
		field = pgErr.ConstraintName
	}
	if field == "" {
		field = "record"
	}
	return &domain.ValidationError{Fields: map[string]string{field: pgErr.Message}}
}
