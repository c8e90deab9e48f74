package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	PgErrForeignKeyViolation       = "23503"
	PgErrCheckViolation            = "23514"
	PgErrStringDataRightTruncation = "22001"
)

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// IsConstraintViolation - значение отклонено CHECK или длиной колонки.
func IsConstraintViolation(err error) bool {
	return IsPgErrorWithCode(err, PgErrCheckViolation) ||
		IsPgErrorWithCode(err, PgErrStringDataRightTruncation)
}
