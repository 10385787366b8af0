package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateReading is returned when a user already has a reading
	// from the same source at the same instant.
	ErrDuplicateReading = errors.New("duplicate reading")

	// ErrInvalidReading is returned for readings missing a user or timestamp.
	ErrInvalidReading = errors.New("invalid reading")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

const pgErrUniqueViolation = "23505"

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrUniqueViolation
	}
	return false
}
