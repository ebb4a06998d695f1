// Package escsv implements a backslash-escaped CSV dialect and its small
// value model: Value, Row and Table.
//
// This is not RFC 4180. Fields that need escaping are wrapped in double
// quotes and use backslash escapes inside:
//
//	\\  backslash
//	\"  double quote
//	\,  comma
//	\n  newline (two characters, distinct from the record delimiter)
//
// A field whose first character is a double quote is an escaped token and
// is unquoted on read. Any other field is taken verbatim, escapes included.
// An empty field is null, which is distinct from the empty string `""`.
//
// # Values
//
// Values remember how they were built. String values are always written
// quoted; integers, floats and instants are always written bare:
//
//	escsv.Text(" ").String()  // `" "`
//	escsv.Int(42).String()    // `42`
//	escsv.Float(6.66).String() // `6.660000`
//	escsv.Null().String()     // ``
//
// # Tables
//
// A Table holds rows plus optional column names and enforces one column
// count across all non-empty rows:
//
//	t, _ := escsv.NewTableWithHeaders("a", "b", "c", "d")
//	_ = t.Append(escsv.NewRow(escsv.Text(" "), escsv.Null(), escsv.Int(42), escsv.Float(6.66)))
//	fmt.Print(t) // a, b, c, d\n" ",,42,6.660000\n
//
// # Thread Safety
//
// Package-level functions share no mutable state and may be called
// concurrently. A single Row or Table must not be mutated while it is read
// from another goroutine.
package escsv

import (
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Parse parses escaped CSV text into an AST.
//
// The result is the ToAST form of ParseTable(input, hasHeaderLine): an
// *ast.ArrayDataNode of records, each an *ast.ArrayDataNode of literals.
func Parse(input string, hasHeaderLine bool) (ast.SchemaNode, error) {
	t, err := ParseTable(input, hasHeaderLine)
	if err != nil {
		return nil, err
	}
	return t.ToAST(), nil
}

// Format returns the format identifier for this parser.
func Format() string {
	return "ESCSV"
}

// Validate checks whether input parses as a table.
//
//	if err := escsv.Validate(input, true); err != nil {
//	    fmt.Println("Invalid input:", err)
//	}
func Validate(input string, hasHeaderLine bool) error {
	_, err := ParseTable(input, hasHeaderLine)
	return err
}

// ValidateReader checks whether the contents of reader parse as a table.
// This reads the entire input from the reader.
func ValidateReader(reader io.Reader, hasHeaderLine bool) error {
	_, err := ReadTable(reader, hasHeaderLine)
	return err
}
