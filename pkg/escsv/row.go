package escsv

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-escsv/internal/parser"
)

// Row is an ordered sequence of values, one per column.
// Rows have no column names; name lookups go through the owning Table.
type Row struct {
	values []Value
}

// NewRow creates a row holding the given values.
func NewRow(values ...Value) *Row {
	r := &Row{values: make([]Value, 0, len(values))}
	return r.Append(values...)
}

// ParseRow parses one escaped line.
//
// An empty line gives a row with no columns. Otherwise fields are split on
// commas that are not escaped; an empty field is null, and a trailing comma
// adds a trailing null. Fields are not trimmed.
//
// A malformed quoted field is reported as a *ParseError wrapping
// ErrMalformedField, with Column set to where the field starts.
func ParseRow(line string) (*Row, error) {
	segments := parser.SplitFields(line)
	r := &Row{values: make([]Value, 0, len(segments))}

	for _, seg := range segments {
		if seg.Text == "" {
			r.values = append(r.values, Null())
			continue
		}
		v, err := NewValue(seg.Text)
		if err != nil {
			return nil, &ParseError{Column: seg.Offset + 1, Err: err}
		}
		r.values = append(r.values, v)
	}

	return r, nil
}

// Append adds values at the end of the row.
// Returns the Row for method chaining.
func (r *Row) Append(values ...Value) *Row {
	r.values = append(r.values, values...)
	return r
}

// Get returns the value at index i (0-based).
func (r *Row) Get(i int) (Value, error) {
	if i < 0 || i >= len(r.values) {
		return Value{}, fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, i, len(r.values))
	}
	return r.values[i], nil
}

// Len returns the number of columns in the row.
func (r *Row) Len() int {
	return len(r.values)
}

// Empty reports whether the row has no columns.
func (r *Row) Empty() bool {
	return len(r.values) == 0
}

// Values returns a copy of the row's values.
func (r *Row) Values() []Value {
	values := make([]Value, len(r.values))
	copy(values, r.values)
	return values
}

// Clone returns a deep copy of the row.
func (r *Row) Clone() *Row {
	return &Row{values: r.Values()}
}

// String returns the row as one escaped line without a line terminator.
func (r *Row) String() string {
	var sb strings.Builder
	r.writeTo(&sb)
	return sb.String()
}

func (r *Row) writeTo(sb *strings.Builder) {
	for i, v := range r.values {
		if i > 0 {
			sb.WriteByte(commaChar)
		}
		sb.WriteString(v.String())
	}
}
