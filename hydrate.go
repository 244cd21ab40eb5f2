package orm

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gopsql/db"
)

var (
	ErrInvalidJSON = errors.New("json input must be an object or an array of objects")
)

// NewInstance creates an entity from the current row of a result. The row
// must contain the columns of SelectStatement() in the same order.
//
//	rows, _ := conn.Query(people.Table().SelectStatement() + " WHERE name = ?", "Alice")
//	for rows.Next() {
//		person, err := people.NewInstance(rows)
//		// ...
//	}
func (m Model[T, PT]) NewInstance(row db.Scannable) (PT, error) {
	e := m.New()
	if err := row.Scan(e.Pointers()...); err != nil {
		return nil, err
	}
	return e, nil
}

// NewInstances creates one entity for every remaining row of rows, in order.
// Rows are not closed.
func (m Model[T, PT]) NewInstances(rows db.Rows) ([]PT, error) {
	out := []PT{}
	for rows.Next() {
		e, err := m.NewInstance(rows)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// NewInstanceFromJSON creates an entity from a decoded JSON object whose keys
// are field names. Missing fields keep their zero values, unknown keys and
// values of a wrong type are ignored.
func (m Model[T, PT]) NewInstanceFromJSON(object map[string]interface{}) PT {
	e := m.New()
	m.assign(e, object, allIndexes(m.table.schema))
	return e
}

// NewInstancesFromJSON creates one entity for each object of a decoded JSON
// array. ErrInvalidJSON is returned if an element is not an object.
func (m Model[T, PT]) NewInstancesFromJSON(array []interface{}) ([]PT, error) {
	out := make([]PT, 0, len(array))
	for i, item := range array {
		object, ok := jsonObject(item)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrInvalidJSON, i, item)
		}
		out = append(out, m.NewInstanceFromJSON(object))
	}
	return out, nil
}

// ParseJSON creates entities from JSON input, which can be a string, []byte,
// io.Reader or an already decoded object (map[string]interface{}) or array
// ([]interface{}). An object gives one entity.
//
//	people.ParseJSON(`[{"Name": "Alice"}, {"Name": "Bob"}]`)
func (m Model[T, PT]) ParseJSON(input interface{}) ([]PT, error) {
	data, err := decodeJSON(input)
	if err != nil {
		return nil, err
	}
	if object, ok := jsonObject(data); ok {
		return []PT{m.NewInstanceFromJSON(object)}, nil
	}
	if array, ok := data.([]interface{}); ok {
		return m.NewInstancesFromJSON(array)
	}
	return nil, fmt.Errorf("%w: got %T", ErrInvalidJSON, data)
}

// JSONObject returns the values of all mapped fields keyed by field name.
// Values are plain JSON-compatible scalars: NULL and nil pointers become nil,
// integers int64, floats float64, BLOBs []byte (base64 when encoded).
// NewInstanceFromJSON(JSONObject(e)) equals e for every mapped field.
//
// Strings are kept as they are in the object. Encoded JSON text only holds
// valid UTF-8, so EncodeJSON replaces invalid bytes in TEXT values with
// U+FFFD. Store binary data in BLOB columns.
func (m Model[T, PT]) JSONObject(e PT) map[string]interface{} {
	values := e.Values()
	out := make(map[string]interface{}, len(m.table.schema.Mapping))
	for i, mapping := range m.table.schema.Mapping {
		out[mapping.Field] = bindValue(values[i])
	}
	return out
}

// JSONArray returns JSONObject() of every entity.
func (m Model[T, PT]) JSONArray(entities []PT) []interface{} {
	out := make([]interface{}, 0, len(entities))
	for _, e := range entities {
		out = append(out, m.JSONObject(e))
	}
	return out
}

// EncodeJSON encodes JSONObject() of an entity.
func (m Model[T, PT]) EncodeJSON(e PT) ([]byte, error) {
	return json.Marshal(m.JSONObject(e))
}

// assign sets fields at mapping indexes idx from a JSON object.
func (m Model[T, PT]) assign(e PT, in map[string]interface{}, idx []int) {
	pointers := e.Pointers()
	for _, i := range idx {
		value, ok := in[m.table.schema.Mapping[i].Field]
		if !ok {
			continue
		}
		assignValue(pointers[i], value)
	}
}

// assignValue decodes value into a new variable and only sets the field if
// decoding succeeds, so a wrong type never leaves a half-assigned field.
func assignValue(pointer, value interface{}) {
	if scanner, ok := pointer.(sql.Scanner); ok {
		scanner.Scan(jsonScalar(value))
		return
	}
	rv := reflect.ValueOf(pointer)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	if s, ok := value.(string); ok && setString(rv.Elem(), s) {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	x := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(b, x.Interface()); err != nil {
		return
	}
	rv.Elem().Set(x.Elem())
}

// setString sets string and *string fields directly, keeping bytes that are
// not valid UTF-8.
func setString(field reflect.Value, s string) bool {
	switch {
	case field.Kind() == reflect.String:
		field.SetString(s)
	case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.String:
		p := reflect.New(field.Type().Elem())
		p.Elem().SetString(s)
		field.Set(p)
	default:
		return false
	}
	return true
}

// jsonScalar turns json.Number into int64 or float64.
func jsonScalar(value interface{}) interface{} {
	n, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func jsonObject(in interface{}) (map[string]interface{}, bool) {
	switch o := in.(type) {
	case map[string]interface{}:
		return o, true
	case RawChanges:
		return o, true
	}
	return nil, false
}

// decodeJSON decodes string, []byte and io.Reader inputs, numbers are kept as
// json.Number so 64-bit integers are exact.
func decodeJSON(input interface{}) (interface{}, error) {
	var r io.Reader
	switch in := input.(type) {
	case string:
		r = strings.NewReader(in)
	case []byte:
		r = bytes.NewReader(in)
	case io.Reader:
		r = in
	default:
		return input, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
