package store

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which scalar a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Value is a metadata value restricted to scalar types so the persisted
// schema stays portable. Composite inputs are stringified at construction.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric Value from an int.
func Int(i int) Value { return Number(float64(i)) }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// ValueOf converts an arbitrary value to a scalar Value. Non-scalar
// inputs are stringified.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int64:
		return Number(float64(x))
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case nil:
		return String("")
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// Kind returns which scalar this Value holds.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string content and whether the Value is a string.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the numeric content and whether the Value is a number.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean content and whether the Value is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// String renders the Value for display regardless of kind.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// MarshalJSON encodes the Value as its underlying primitive.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON decodes a primitive into a Value. Anything that isn't a
// string, number, or bool is stringified.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = String(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	default:
		*v = String(fmt.Sprintf("%v", x))
	}
	return nil
}

// Metadata is the per-chunk key/value record stored alongside chunk text.
type Metadata map[string]Value

// StringOr returns the value for key rendered as a string, or fallback if
// the key is absent.
func (m Metadata) StringOr(key, fallback string) string {
	v, ok := m[key]
	if !ok {
		return fallback
	}
	return v.String()
}

// Clone returns a shallow copy so callers can extend metadata without
// mutating the source record.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
