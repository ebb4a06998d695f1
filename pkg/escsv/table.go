package escsv

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shapestone/shape-escsv/internal/parser"
)

// headerSeparator joins column names when a table is written out.
const headerSeparator = ", "

// Table is an ordered sequence of rows with optional column names.
//
// A Table enforces a single column count. The count is fixed by the header,
// or otherwise by the first non-empty row; after that every non-empty row
// must match it. Empty rows stand for blank lines and are always accepted.
//
// A Table owns its rows. Append copies the row it is given and Row hands
// out a copy, so callers never share state with the table.
type Table struct {
	colNames []string
	colCount int
	rows     []*Row
}

// NewTable creates a new empty Table without headers.
func NewTable() *Table {
	return &Table{
		rows: make([]*Row, 0),
	}
}

// NewTableWithHeaders creates an empty Table with the given column names.
// Names are taken literally and must not be empty.
func NewTableWithHeaders(names ...string) (*Table, error) {
	t := NewTable()
	if err := t.setHeaders(names); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseTable parses a multi-line escaped text.
//
// Blank lines are dropped wherever they appear. When hasHeaderLine is true
// the first remaining line holds the column names: it is split on unescaped
// commas, each name is trimmed of surrounding whitespace but never unquoted,
// and an empty name or a trailing delimiter is ErrInvalidHeader. Since
// tables write their header joined by ", ", a written header parses back to
// the same names. Every other line is parsed with ParseRow.
//
// Parsing is all-or-nothing. Errors are *ParseError values carrying the
// line number in text.
//
// Example:
//
//	t, err := escsv.ParseTable("name,age\n\"Alice\",30\n", true)
//	v, _ := t.GetByName(0, "age")
//	age, _ := v.AsInt() // 30
func ParseTable(text string, hasHeaderLine bool) (*Table, error) {
	t := NewTable()
	lines := parser.SplitLines(text)
	if len(lines) == 0 {
		return t, nil
	}

	if hasHeaderLine {
		header := lines[0]
		lines = lines[1:]
		if err := t.setHeaders(splitHeader(header.Text)); err != nil {
			return nil, &ParseError{Line: header.Number, Err: err}
		}
	}

	for _, line := range lines {
		row, err := ParseRow(line.Text)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = line.Number
				return nil, pe
			}
			return nil, &ParseError{Line: line.Number, Err: err}
		}
		if err := t.Append(row); err != nil {
			return nil, &ParseError{Line: line.Number, Err: err}
		}
	}

	return t, nil
}

// ReadTable reads all of r and parses it with ParseTable.
func ReadTable(r io.Reader, hasHeaderLine bool) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	return ParseTable(string(data), hasHeaderLine)
}

// splitHeader splits a header line on unescaped commas and trims each name.
// Escapes and quotes inside a name are kept as written.
func splitHeader(line string) []string {
	segments := parser.SplitFields(line)
	names := make([]string, len(segments))
	for i, seg := range segments {
		names[i] = strings.TrimSpace(seg.Text)
	}
	return names
}

func (t *Table) setHeaders(names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: no column names", ErrInvalidHeader)
	}
	if len(names) > 1 && names[len(names)-1] == "" {
		return fmt.Errorf("%w: trailing delimiter", ErrInvalidHeader)
	}
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("%w: column %d has an empty name", ErrInvalidHeader, i)
		}
	}

	t.colNames = make([]string, len(names))
	copy(t.colNames, names)
	t.colCount = len(names)
	return nil
}

// Append adds a copy of row to the table.
//
// An empty row is always accepted. A non-empty row fixes the column count
// if it is not fixed yet, and must match it otherwise.
func (t *Table) Append(row *Row) error {
	if !row.Empty() {
		switch {
		case t.colCount == 0:
			t.colCount = row.Len()
		case row.Len() != t.colCount:
			return fmt.Errorf("%w: row has %d columns, table has %d", ErrColumnCountMismatch, row.Len(), t.colCount)
		}
	}
	t.rows = append(t.rows, row.Clone())
	return nil
}

// Row returns a copy of the row at index i (0-based, headers excluded).
func (t *Table) Row(i int) (*Row, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i, len(t.rows))
	}
	return t.rows[i].Clone(), nil
}

// Get returns the value at the given row and column index.
func (t *Table) Get(row, col int) (Value, error) {
	if row < 0 || row >= len(t.rows) {
		return Value{}, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, row, len(t.rows))
	}
	return t.rows[row].Get(col)
}

// GetByName returns the value at the given row in the named column.
func (t *Table) GetByName(row int, name string) (Value, error) {
	col, err := t.ColumnIndex(name)
	if err != nil {
		return Value{}, err
	}
	return t.Get(row, col)
}

// ColumnIndex returns the index of the named column.
// Returns ErrNoHeaders if the table has no headers and ErrUnknownColumn if
// name is not one of them.
func (t *Table) ColumnIndex(name string) (int, error) {
	if len(t.colNames) == 0 {
		return -1, ErrNoHeaders
	}
	for i, n := range t.colNames {
		if n == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// HasHeaders reports whether the table has column names.
func (t *Table) HasHeaders() bool {
	return len(t.colNames) > 0
}

// ColNames returns a copy of the column names, or nil without headers.
func (t *Table) ColNames() []string {
	if len(t.colNames) == 0 {
		return nil
	}
	names := make([]string, len(t.colNames))
	copy(names, t.colNames)
	return names
}

// ColCount returns the column count, or 0 while it is not fixed yet.
func (t *Table) ColCount() int {
	return t.colCount
}

// RowCount returns the number of rows, including empty ones.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// String renders the table: the header line if there is one, then one line
// per row. Every line ends with a newline.
func (t *Table) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

// WriteTo writes the rendered table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	t.write(&sb)
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (t *Table) write(sb *strings.Builder) {
	if len(t.colNames) > 0 {
		sb.WriteString(strings.Join(t.colNames, headerSeparator))
		sb.WriteByte('\n')
	}
	for _, row := range t.rows {
		row.writeTo(sb)
		sb.WriteByte('\n')
	}
}
