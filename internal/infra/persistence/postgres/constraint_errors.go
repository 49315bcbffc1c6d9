package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity violations.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// Helper functions for PostgreSQL error checking. GORM's translated errors are
// only produced when TranslateError is enabled, so the SQLSTATE is checked too.
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || sqlState(err) == sqlStateUniqueViolation
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || sqlState(err) == sqlStateForeignKeyViolation
}

func isNotNullConstraintViolation(err error) bool {
	return sqlState(err) == sqlStateNotNullViolation
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated) || sqlState(err) == sqlStateCheckViolation
}
