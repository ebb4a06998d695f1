package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Errors returned by this package. Driver errors are translated into these
// where a mapping exists; the original error stays reachable with errors.As.
var (
	// ErrNotFound indicates a query that was expected to return a row returned none.
	ErrNotFound = errors.New("sqlite: no rows")

	// ErrConstraint indicates a constraint violation (unique, primary key, not null, check).
	ErrConstraint = errors.New("sqlite: constraint violation")

	// ErrBusy indicates the database was busy or locked; the caller may retry.
	ErrBusy = errors.New("sqlite: database busy")

	// ErrMisuse indicates the API was used out of order, e.g. a closed statement.
	ErrMisuse = errors.New("sqlite: misuse")

	// ErrBindRange indicates a parameter index outside the statement's parameters.
	ErrBindRange = errors.New("sqlite: bind index out of range")

	// ErrInvalidName indicates a table name that is not a plain SQL identifier.
	ErrInvalidName = errors.New("sqlite: invalid table name")
)

// translateError converts driver errors into this package's errors.
//
// Error mapping:
//   - sql.ErrNoRows → ErrNotFound
//   - sqlite3.ErrConstraint (any extended code) → ErrConstraint
//   - sqlite3.ErrBusy, sqlite3.ErrLocked → ErrBusy
//   - sqlite3.ErrMisuse → ErrMisuse
//   - sqlite3.ErrRange → ErrBindRange
//   - anything else → unchanged
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			return fmt.Errorf("%w: %w", ErrConstraint, err)
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return fmt.Errorf("%w: %w", ErrBusy, err)
		case sqlite3.ErrMisuse:
			return fmt.Errorf("%w: %w", ErrMisuse, err)
		case sqlite3.ErrRange:
			return fmt.Errorf("%w: %w", ErrBindRange, err)
		}
	}

	return err
}
