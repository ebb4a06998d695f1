package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/shapestone/shape-escsv/pkg/escsv"
)

// Stmt is a prepared statement with its current parameter bindings.
//
// A Stmt is not safe for concurrent use: bindings are shared state.
// Unbound parameters are NULL.
type Stmt struct {
	stmt   *sql.Stmt
	query  string
	args   []interface{}
	closed bool
}

// ParamCount returns the number of parameters the statement takes.
func (s *Stmt) ParamCount() int {
	return len(s.args)
}

// Bind binds v to the parameter at index (1-based, as in SQLite).
func (s *Stmt) Bind(index int, v escsv.Value) error {
	if s.closed {
		return fmt.Errorf("%w: bind on closed statement", ErrMisuse)
	}
	if index < 1 || index > len(s.args) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrBindRange, index, len(s.args))
	}
	s.args[index-1] = valueArg(v)
	return nil
}

// BindValues binds values to parameters 1..len(values).
func (s *Stmt) BindValues(values ...escsv.Value) error {
	for i, v := range values {
		if err := s.Bind(i+1, v); err != nil {
			return err
		}
	}
	return nil
}

// BindRow binds each value of row to the parameter of the same position.
func (s *Stmt) BindRow(row *escsv.Row) error {
	return s.BindValues(row.Values()...)
}

// ClearBindings resets every parameter to NULL.
func (s *Stmt) ClearBindings() {
	for i := range s.args {
		s.args[i] = nil
	}
}

// Exec runs the statement and returns the number of rows affected.
func (s *Stmt) Exec(ctx context.Context) (int64, error) {
	if s.closed {
		return 0, fmt.Errorf("%w: exec on closed statement", ErrMisuse)
	}
	res, err := s.stmt.ExecContext(ctx, s.args...)
	if err != nil {
		return 0, translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

// Query runs the statement and collects the result set into a table whose
// headers are the result column names.
func (s *Stmt) Query(ctx context.Context) (*escsv.Table, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: query on closed statement", ErrMisuse)
	}
	rows, err := s.stmt.QueryContext(ctx, s.args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, translateError(err)
	}
	t, err := escsv.NewTableWithHeaders(cols...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", s.query, err)
	}

	cells := make([]interface{}, len(cols))
	dest := make([]interface{}, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, translateError(err)
		}
		row := escsv.NewRow()
		for _, c := range cells {
			v, err := columnValue(c)
			if err != nil {
				return nil, err
			}
			row.Append(v)
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return t, nil
}

// Close releases the statement. Further use returns ErrMisuse.
func (s *Stmt) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.stmt.Close()
}

// valueArg converts a value into a driver argument. Numeric values bind as
// INTEGER when their text is an integer and REAL otherwise.
func valueArg(v escsv.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	text, _ := v.AsString()
	if v.Kind() == escsv.KindNumber {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	}
	return text
}

// columnValue converts a scanned column into a value.
func columnValue(c interface{}) (escsv.Value, error) {
	switch x := c.(type) {
	case nil:
		return escsv.Null(), nil
	case int64:
		return escsv.Int64(x), nil
	case float64:
		return escsv.Float(x), nil
	case string:
		return escsv.Text(x), nil
	case []byte:
		return escsv.Text(string(x)), nil
	case time.Time:
		return escsv.Instant(x), nil
	case bool:
		if x {
			return escsv.Int(1), nil
		}
		return escsv.Int(0), nil
	default:
		return escsv.Value{}, fmt.Errorf("unsupported column type %T", c)
	}
}
