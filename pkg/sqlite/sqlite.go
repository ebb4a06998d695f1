// Package sqlite is a thin SQLite access layer that speaks escsv values.
//
// Statements are prepared once, parameters are bound as escsv.Value, and
// result sets come back as *escsv.Table with the result column names as
// headers. Driver error codes are translated into this package's errors.
//
//	db, _ := sqlite.Open(":memory:")
//	defer db.Close()
//	n, _ := db.ImportTable(ctx, "people", table)
//	out, _ := db.ExportQuery(ctx, "SELECT * FROM people WHERE age > ?", escsv.Int(30))
//
// The pool is limited to a single connection. That keeps ":memory:"
// databases alive across calls and matches SQLite's single-writer model.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/shapestone/shape-escsv/pkg/escsv"
)

// driverName is the database/sql driver registered by go-sqlite3.
const driverName = "sqlite3"

// tableNamePattern restricts table names to plain identifiers; SQLite does
// not accept bound parameters in DDL.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DB is a SQLite database handle. It is safe for concurrent use.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Use ":memory:" for
// a private in-memory database.
func Open(path string) (*DB, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, translateError(err))
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Prepare compiles query into a statement.
func (d *DB) Prepare(ctx context.Context, query string) (*Stmt, error) {
	params, err := d.paramCount(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", translateError(err))
	}

	stmt, err := d.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", translateError(err))
	}

	return &Stmt{
		stmt:  stmt,
		query: query,
		args:  make([]interface{}, params),
	}, nil
}

// paramCount asks the native connection how many parameters query takes.
func (d *DB) paramCount(ctx context.Context, query string) (int, error) {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	n := 0
	err = conn.Raw(func(driverConn interface{}) error {
		sc, ok := driverConn.(*sqlite3.SQLiteConn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", driverConn)
		}
		s, err := sc.Prepare(query)
		if err != nil {
			return err
		}
		defer s.Close()
		n = s.NumInput()
		return nil
	})
	return n, err
}

// Exec prepares and runs a statement with the given parameters and returns
// the number of rows affected.
func (d *DB) Exec(ctx context.Context, query string, args ...escsv.Value) (int64, error) {
	stmt, err := d.Prepare(ctx, query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	if err := stmt.BindValues(args...); err != nil {
		return 0, err
	}
	return stmt.Exec(ctx)
}

// ExportQuery runs query and returns its result set as a table.
func (d *DB) ExportQuery(ctx context.Context, query string, args ...escsv.Value) (*escsv.Table, error) {
	stmt, err := d.Prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	if err := stmt.BindValues(args...); err != nil {
		return nil, err
	}
	return stmt.Query(ctx)
}

// QueryValue runs query and returns the first column of the first row.
// Returns ErrNotFound when the query yields no rows.
func (d *DB) QueryValue(ctx context.Context, query string, args ...escsv.Value) (escsv.Value, error) {
	t, err := d.ExportQuery(ctx, query, args...)
	if err != nil {
		return escsv.Value{}, err
	}
	if t.RowCount() == 0 {
		return escsv.Value{}, ErrNotFound
	}
	return t.Get(0, 0)
}

// ImportTable creates table name if it does not exist, with one column per
// header, and inserts every non-empty row of t in a single transaction.
// It returns the number of rows inserted. The table must have headers.
func (d *DB) ImportTable(ctx context.Context, name string, t *escsv.Table) (int, error) {
	if !tableNamePattern.MatchString(name) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !t.HasHeaders() {
		return 0, fmt.Errorf("import %s: %w", name, escsv.ErrNoHeaders)
	}

	cols := t.ColNames()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	columnList := strings.Join(quoted, ", ")

	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, columnList)
	if _, err := d.db.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("import %s: %w", name, translateError(err))
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	insert, err := d.Prepare(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", name, columnList, placeholders))
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", name, err)
	}
	defer insert.Close()

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", name, translateError(err))
	}
	defer tx.Rollback()

	txInsert := tx.StmtContext(ctx, insert.stmt)
	inserted := 0
	for i := 0; i < t.RowCount(); i++ {
		row, err := t.Row(i)
		if err != nil {
			return 0, err
		}
		if row.Empty() {
			continue
		}
		if err := insert.BindRow(row); err != nil {
			return 0, fmt.Errorf("import %s row %d: %w", name, i, err)
		}
		if _, err := txInsert.ExecContext(ctx, insert.args...); err != nil {
			return 0, fmt.Errorf("import %s row %d: %w", name, i, translateError(err))
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import %s: %w", name, translateError(err))
	}
	return inserted, nil
}

// quoteIdent quotes a column name as a SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
