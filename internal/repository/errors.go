package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"offerboard/internal/domain"
)

const pgUniqueViolation = "23505"

// wrapErr maps driver errors onto the domain taxonomy. Anything that is not a
// missing row or a unique violation becomes a *domain.StoreError.
func wrapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case isUniqueConstraintError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	default:
		return &domain.StoreError{Op: op, Err: err}
	}
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}
