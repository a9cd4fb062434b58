package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches a lookup
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a unique key is already taken
	ErrConflict = errors.New("record already exists")
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint failures
const uniqueViolation = "23505"

// wrapError annotates err with msg and maps driver errors onto the
// package sentinels.
func wrapError(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", msg, ErrConflict)
	}

	return fmt.Errorf("%s: %w", msg, err)
}
