// Package wire writes request bodies as ordered JSON objects driven by a
// declarative table of fields. Each field names its wire key, how its value is
// read from the request, and the policy deciding whether it is written at all.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/Mimeo/SendWithUs.Client-sub000/pkg/codec"
)

// Policy decides whether a field is written to the wire.
type Policy int

const (
	// Required fields are always written, even when empty.
	Required Policy = iota

	// OmitEmpty drops a field whose value is nil or the empty string.
	// Use it for optional string fields.
	OmitEmpty

	// OmitNil drops a field only when its value is nil. An empty slice or map
	// is still written. Use it for optional objects, lists and dictionaries.
	OmitNil
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Required:
		return "required"
	case OmitEmpty:
		return "omit-empty"
	case OmitNil:
		return "omit-nil"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Field describes one property of the wire object built from a value of type T.
type Field[T any] struct {
	Key    string      // Wire key, written exactly as given
	Policy Policy      // Omission rule
	Value  func(T) any // Reads the field's value from the source
}

// Encode builds the JSON object for src by walking fields in order.
// Keys appear in the output in table order, so encoding the same value twice
// produces identical bytes as long as the serializer is deterministic.
func Encode[T any](src T, fields []Field[T], s codec.Serializer) (json.RawMessage, error) {
	if s == nil {
		s = codec.Default
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	written := 0
	for _, f := range fields {
		v := f.Value(src)
		if Omit(f.Policy, v) {
			continue
		}
		key, err := s.Marshal(f.Key)
		if err != nil {
			return nil, fmt.Errorf("wire: key %q: %w", f.Key, err)
		}
		val, err := s.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("wire: field %q: %w", f.Key, err)
		}
		if written > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		written++
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Omit reports whether a value is dropped under policy p.
func Omit(p Policy, v any) bool {
	switch p {
	case OmitEmpty:
		if s, ok := v.(string); ok {
			return s == ""
		}
		return IsNil(v)
	case OmitNil:
		return IsNil(v)
	default:
		return false
	}
}

// IsNil reports whether v is nil or a typed nil pointer, slice, map or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
