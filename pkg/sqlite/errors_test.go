package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("disk on fire")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("lookup: %w", sql.ErrNoRows), ErrNotFound},
		{"constraint", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, ErrConstraint},
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, ErrBusy},
		{"locked", sqlite3.Error{Code: sqlite3.ErrLocked}, ErrBusy},
		{"misuse", sqlite3.Error{Code: sqlite3.ErrMisuse}, ErrMisuse},
		{"range", sqlite3.Error{Code: sqlite3.ErrRange}, ErrBindRange},
		{"unmapped code", sqlite3.Error{Code: sqlite3.ErrIoErr}, nil},
		{"other", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			switch {
			case tt.in == nil:
				if got != nil {
					t.Errorf("translateError(nil) = %v, want nil", got)
				}
			case tt.want == nil:
				if got != tt.in {
					t.Errorf("translateError() = %v, want input unchanged", got)
				}
			case !errors.Is(got, tt.want):
				t.Errorf("translateError() = %v, want %v", got, tt.want)
			}
		})
	}
}
