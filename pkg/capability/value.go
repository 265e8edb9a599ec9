package capability

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

type kind uint8

const (
	kindUnknown kind = iota
	kindBool
	kindInt
	kindFloat
	kindString
)

// Value is a single probed attribute. A Value is either a definite scalar
// (bool, int, float, string) or unknown. Unknown means the attribute could
// not be determined; it is distinct from false, zero, and empty. Unknown
// serializes as null.
type Value struct {
	kind kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Unknown returns a Value representing an attribute that could not be probed.
func Unknown() Value { return Value{} }

// Bool returns a definite boolean Value.
func Bool(v bool) Value { return Value{kind: kindBool, b: v} }

// Int returns a definite integer Value.
func Int(v int64) Value { return Value{kind: kindInt, i: v} }

// Float returns a definite floating-point Value.
func Float(v float64) Value { return Value{kind: kindFloat, f: v} }

// Str returns a definite string Value.
func Str(v string) Value { return Value{kind: kindString, s: v} }

// IsUnknown reports whether the attribute could not be determined.
func (v Value) IsUnknown() bool { return v.kind == kindUnknown }

// IsTrue reports whether the Value is a definite boolean true.
// Unknown is never true.
func (v Value) IsTrue() bool { return v.kind == kindBool && v.b }

// AsBool returns the boolean value. ok is false for unknown or non-boolean values.
func (v Value) AsBool() (val, ok bool) {
	if v.kind != kindBool {
		return false, false
	}
	return v.b, true
}

// AsInt returns the integer value. Float values are truncated.
// ok is false for unknown and non-numeric values.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case kindInt:
		return v.i, true
	case kindFloat:
		return int64(v.f), true
	default:
		return 0, false
	}
}

// AsFloat returns the numeric value as a float64.
// ok is false for unknown and non-numeric values.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case kindInt:
		return float64(v.i), true
	case kindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// AsString returns the string value. ok is false for unknown or non-string values.
func (v Value) AsString() (string, bool) {
	if v.kind != kindString {
		return "", false
	}
	return v.s, true
}

// String renders the Value for human-readable output. Unknown renders as "unknown".
func (v Value) String() string {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case kindString:
		return v.s
	default:
		return "unknown"
	}
}

// native returns the underlying value as a plain Go type for serialization.
// Unknown maps to nil.
func (v Value) native() any {
	switch v.kind {
	case kindBool:
		return v.b
	case kindInt:
		return v.i
	case kindFloat:
		return v.f
	case kindString:
		return v.s
	default:
		return nil
	}
}

// fromNative converts a decoded JSON/YAML scalar into a Value.
func fromNative(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Unknown(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		// JSON numbers always decode as float64; preserve integral values as ints.
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return Int(int64(t)), nil
		}
		return Float(t), nil
	case string:
		return Str(t), nil
	default:
		return Value{}, fmt.Errorf("unsupported attribute value type %T", raw)
	}
}

// MarshalJSON implements json.Marshaler. Unknown encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.native())
}

// UnmarshalJSON implements json.Unmarshaler. null decodes as unknown.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode attribute value: %w", err)
	}
	val, err := fromNative(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.native(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode attribute value: %w", err)
	}
	val, err := fromNative(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}
