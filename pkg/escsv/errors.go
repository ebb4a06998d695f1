package escsv

import (
	"errors"
	"fmt"
)

// ParseError represents a parsing error with position information.
// It provides context about where in the input text the error occurred.
type ParseError struct {
	// Line is the line where the error occurred (1-indexed). Zero when the
	// input was a single line passed to ParseRow.
	Line int
	// Column is the byte column where the offending field starts (1-indexed).
	// Zero when the error concerns the whole line.
	Column int
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
	case e.Column > 0:
		return fmt.Sprintf("parse error at column %d: %v", e.Column, e.Err)
	default:
		return fmt.Sprintf("parse error: %v", e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Errors reported by the codec. Match them with errors.Is; most are wrapped
// with additional context.
var (
	// ErrMalformedField indicates a quoted token without its closing quote,
	// or with a bare quote or comma in its body.
	ErrMalformedField = errors.New("malformed field")

	// ErrNullValue indicates an accessor was called on a null value.
	ErrNullValue = errors.New("null value")

	// ErrNumericParse indicates a numeric accessor was called on a value
	// whose text does not start with a number of the requested kind.
	ErrNumericParse = errors.New("value is not numeric")

	// ErrIndexOutOfRange indicates a row or column index outside the bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidHeader indicates a header with an empty name or a trailing delimiter.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrNoHeaders indicates a lookup by column name on a table without headers.
	ErrNoHeaders = errors.New("table has no headers")

	// ErrUnknownColumn indicates a lookup by a column name not in the header.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrColumnCountMismatch indicates a non-empty row whose field count
	// differs from the table's column count.
	ErrColumnCountMismatch = errors.New("column count mismatch")
)
