// Package validate maps raw JSON responses onto typed entities.
//
// Empty input is normalised instead of being reported: One yields a nil
// entity and List yields an empty, non-nil slice, so callers never have to
// tell "no data" apart from "null".
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Error reports a response that could not be mapped onto the target type.
type Error struct {
	Target string
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("validate %s: %v", e.Target, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// One decodes a single JSON object into T. Empty input, null and {} yield
// a nil entity without an error.
func One[T any](raw json.RawMessage) (*T, error) {
	data := bytes.TrimSpace(raw)
	if isEmpty(data) {
		return nil, nil
	}
	if data[0] != '{' {
		return nil, &Error{Target: typeName[T](), Cause: fmt.Errorf("expected object, got %s", kindOf(data))}
	}
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, &Error{Target: typeName[T](), Cause: err}
	}
	return v, nil
}

// List decodes a JSON array into []T preserving order. A lone object is
// treated as a one-element list. Empty input always yields an empty slice.
func List[T any](raw json.RawMessage) ([]T, error) {
	data := bytes.TrimSpace(raw)
	if isEmpty(data) {
		return []T{}, nil
	}
	switch data[0] {
	case '[':
		out := []T{}
		if err := json.Unmarshal(data, &out); err != nil {
			return []T{}, &Error{Target: "[]" + typeName[T](), Cause: err}
		}
		return out, nil
	case '{':
		one, err := One[T](data)
		if err != nil || one == nil {
			return []T{}, err
		}
		return []T{*one}, nil
	default:
		return []T{}, &Error{Target: "[]" + typeName[T](), Cause: fmt.Errorf("expected array, got %s", kindOf(data))}
	}
}

func isEmpty(data []byte) bool {
	switch string(data) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}

func kindOf(data []byte) string {
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	default:
		return "number"
	}
}

func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return "value"
	}
	return t.String()
}
