package escsv

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// structField describes one exported struct field mapped to a column.
type structField struct {
	name      string
	index     int
	omitEmpty bool
}

// fieldCache maps reflect.Type to []structField.
var fieldCache sync.Map

var timeType = reflect.TypeOf(time.Time{})

// cachedFields returns the column layout of a struct type.
func cachedFields(t reflect.Type) []structField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]structField)
	}

	var fields []structField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, omitEmpty, skip := parseTag(f)
		if skip {
			continue
		}
		fields = append(fields, structField{name: name, index: i, omitEmpty: omitEmpty})
	}

	fieldCache.Store(t, fields)
	return fields
}

// parseTag reads the `escsv:"name,omitempty"` tag of f.
func parseTag(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get("escsv")
	if tag == "-" {
		return "", false, true
	}

	name = f.Name
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// Marshal builds a table from v, which must be a slice of structs or of
// pointers to structs.
//
// Column names come from the `escsv` struct tag or the field name, in field
// order. Nil pointer elements are skipped.
//
// Field encoding:
//   - string → Text
//   - signed and unsigned integers → Int64
//   - float32, float64 → Float
//   - bool → Int (1 or 0)
//   - time.Time → Instant
//   - nil pointer or interface → Null
//
// A field tagged `escsv:",omitempty"` holding its zero value becomes Null. A
// field tagged `escsv:"-"` is ignored.
func Marshal(v interface{}) (*Table, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("escsv: Marshal(nil)")
	}
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("escsv: Marshal expects slice, got %s", rv.Type())
	}

	elemType := rv.Type().Elem()
	if elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("escsv: Marshal expects slice of structs, got slice of %s", elemType)
	}

	fields := cachedFields(elemType)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	t, err := NewTableWithHeaders(names...)
	if err != nil {
		return nil, fmt.Errorf("escsv: Marshal %s: %w", elemType, err)
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}

		row := NewRow()
		for _, f := range fields {
			fv := elem.Field(f.index)
			if f.omitEmpty && fv.IsZero() {
				row.Append(Null())
				continue
			}
			val, err := marshalValue(fv)
			if err != nil {
				return nil, fmt.Errorf("escsv: Marshal field %s: %w", f.name, err)
			}
			row.Append(val)
		}
		if err := t.Append(row); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// marshalValue converts a single field into a value.
func marshalValue(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return marshalValue(rv.Elem())
	}

	if rv.Type() == timeType {
		return Instant(rv.Interface().(time.Time)), nil
	}

	switch rv.Kind() {
	case reflect.String:
		return Text(rv.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int64(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("%d overflows int64", u)
		}
		return Int64(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil

	case reflect.Bool:
		if rv.Bool() {
			return Int(1), nil
		}
		return Int(0), nil

	default:
		return Value{}, fmt.Errorf("unsupported type %s", rv.Type())
	}
}

// Unmarshal stores the rows of t into v, which must be a pointer to a slice
// of structs or of pointers to structs. The table must have headers.
//
// Columns are matched to fields by tag or field name, case-insensitively.
// Unmatched columns and fields are ignored. Null cells leave the field at
// its zero value (nil for pointers). Empty rows are skipped.
//
// Numeric fields use the lenient accessors, so "12abc" fills an int with 12.
// Bool fields accept the forms strconv.ParseBool does.
func Unmarshal(t *Table, v interface{}) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("escsv: Unmarshal expects non-nil pointer, got %T", v)
	}
	slice := rv.Elem()
	if slice.Kind() != reflect.Slice {
		return fmt.Errorf("escsv: Unmarshal expects pointer to slice, got %s", rv.Type())
	}

	elemType := slice.Type().Elem()
	structType := elemType
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return fmt.Errorf("escsv: Unmarshal expects slice of structs, got slice of %s", elemType)
	}

	if !t.HasHeaders() {
		return fmt.Errorf("escsv: Unmarshal: %w", ErrNoHeaders)
	}

	byName := make(map[string]int)
	for _, f := range cachedFields(structType) {
		byName[strings.ToLower(f.name)] = f.index
	}
	colField := make(map[int]int)
	for col, name := range t.colNames {
		if idx, ok := byName[strings.ToLower(name)]; ok {
			colField[col] = idx
		}
	}

	result := reflect.MakeSlice(slice.Type(), 0, len(t.rows))
	for rowIdx, row := range t.rows {
		if row.Empty() {
			continue
		}

		sv := reflect.New(structType).Elem()
		for col, fieldIdx := range colField {
			val := row.values[col]
			if err := unmarshalValue(sv.Field(fieldIdx), val); err != nil {
				return fmt.Errorf("escsv: Unmarshal row %d column %q: %w", rowIdx, t.colNames[col], err)
			}
		}

		if elemType.Kind() == reflect.Ptr {
			result = reflect.Append(result, sv.Addr())
		} else {
			result = reflect.Append(result, sv)
		}
	}

	slice.Set(result)
	return nil
}

// unmarshalValue stores val into field.
func unmarshalValue(field reflect.Value, val Value) error {
	if val.IsNull() {
		return nil
	}

	if field.Kind() == reflect.Ptr {
		ptr := reflect.New(field.Type().Elem())
		if err := unmarshalValue(ptr.Elem(), val); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	if field.Type() == timeType {
		tm, err := val.AsInstant()
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(tm))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		s, err := val.AsString()
		if err != nil {
			return err
		}
		field.SetString(s)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := val.AsInt64()
		if err != nil {
			return err
		}
		if field.OverflowInt(i) {
			return fmt.Errorf("%w: %d overflows %s", ErrNumericParse, i, field.Type())
		}
		field.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := val.AsInt64()
		if err != nil {
			return err
		}
		if i < 0 || field.OverflowUint(uint64(i)) {
			return fmt.Errorf("%w: %d overflows %s", ErrNumericParse, i, field.Type())
		}
		field.SetUint(uint64(i))

	case reflect.Float32, reflect.Float64:
		f, err := val.AsFloat()
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		s, _ := val.AsString()
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrNumericParse, s)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}
