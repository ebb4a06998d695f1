package escsv

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind is how a Value was constructed. It decides how the value is written
// back out, independently of what its text looks like.
type Kind int

const (
	// KindNull is the kind of the zero Value.
	KindNull Kind = iota
	// KindString values are written quoted and escaped.
	KindString
	// KindNumber values (integers, floats and instants) are written verbatim.
	KindNumber
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

var (
	// numericRegex matches text that is entirely a decimal integer or float.
	numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

	// intPrefixRegex and floatPrefixRegex find the longest numeric prefix,
	// after leading whitespace, the way strtol and strtod do.
	intPrefixRegex   = regexp.MustCompile(`^\s*[+-]?\d+`)
	floatPrefixRegex = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// Value is a single table cell: null, or some text.
//
// The zero Value is null. Values are immutable and safe to copy.
type Value struct {
	text string
	kind Kind
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// NewValue builds a string value from field text.
//
// Text that begins with a double quote is an escaped token and is unquoted;
// anything else is taken literally. So NewValue(`"a\,b"`) holds "a,b" while
// NewValue(`a\,b`) holds `a\,b`. The only possible error is ErrMalformedField.
func NewValue(s string) (Value, error) {
	if strings.HasPrefix(s, `"`) {
		text, err := Unquote(s)
		if err != nil {
			return Value{}, err
		}
		return Value{text: text, kind: KindString}, nil
	}
	return Value{text: s, kind: KindString}, nil
}

// Text builds a string value holding s exactly, without unquoting.
func Text(s string) Value {
	return Value{text: s, kind: KindString}
}

// Int builds a numeric value from an int.
func Int(i int) Value {
	return Int64(int64(i))
}

// Int64 builds a numeric value from an int64.
func Int64(i int64) Value {
	return Value{text: strconv.FormatInt(i, 10), kind: KindNumber}
}

// Float builds a numeric value from a float64, written with six decimals.
func Float(f float64) Value {
	return Value{text: strconv.FormatFloat(f, 'f', 6, 64), kind: KindNumber}
}

// Instant builds a numeric value holding t as Unix epoch seconds.
func Instant(t time.Time) Value {
	return Int64(t.Unix())
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Kind returns how v was constructed.
func (v Value) Kind() Kind {
	return v.kind
}

// HasNumericValue reports whether v's whole text is a decimal integer or
// floating-point number. Null values are not numeric.
func (v Value) HasNumericValue() bool {
	if v.IsNull() {
		return false
	}
	return numericRegex.MatchString(v.text)
}

// AsString returns the unescaped text.
func (v Value) AsString() (string, error) {
	if v.IsNull() {
		return "", ErrNullValue
	}
	return v.text, nil
}

// AsInt parses the leading integer of v's text into the 32-bit range.
//
// Parsing is lenient: "-1.234" gives -1 and "12abc" gives 12, even though
// HasNumericValue is false for the latter.
func (v Value) AsInt() (int, error) {
	i, err := v.parseInt(32)
	return int(i), err
}

// AsInt64 parses the leading integer of v's text. See AsInt.
func (v Value) AsInt64() (int64, error) {
	return v.parseInt(64)
}

// AsFloat parses the leading decimal number of v's text.
func (v Value) AsFloat() (float64, error) {
	if v.IsNull() {
		return 0, ErrNullValue
	}
	prefix := floatPrefixRegex.FindString(v.text)
	if prefix == "" {
		return 0, fmt.Errorf("%w: %q", ErrNumericParse, v.text)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(prefix), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q out of range", ErrNumericParse, v.text)
	}
	return f, nil
}

// AsInstant interprets v as Unix epoch seconds. The result is in UTC.
func (v Value) AsInstant() (time.Time, error) {
	secs, err := v.AsInt64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

func (v Value) parseInt(bitSize int) (int64, error) {
	if v.IsNull() {
		return 0, ErrNullValue
	}
	prefix := intPrefixRegex.FindString(v.text)
	if prefix == "" {
		return 0, fmt.Errorf("%w: %q", ErrNumericParse, v.text)
	}
	i, err := strconv.ParseInt(strings.TrimSpace(prefix), 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q out of range", ErrNumericParse, v.text)
	}
	return i, nil
}

// String returns v as it appears in a line: empty for null, the quoted
// token for string values, the bare text for numeric values.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return Quote(v.text)
	case KindNumber:
		return v.text
	default:
		return ""
	}
}
