package tree

import (
	"fmt"
	"strconv"
)

// Value is the attribute value sum: String, Int, Float, Bool, or Null.
// The set is closed; the unexported marker keeps foreign implementations out.
type Value interface {
	isValue()

	// Any returns the underlying scalar, or nil for NullValue.
	Any() any

	// String returns a human-readable rendering for report messages.
	String() string
}

// StringValue holds a text attribute value.
type StringValue struct {
	V string
}

// IntValue holds a signed integer attribute value.
type IntValue struct {
	V int64
}

// FloatValue holds a floating-point attribute value.
type FloatValue struct {
	V float64
}

// BoolValue holds a boolean attribute value.
type BoolValue struct {
	V bool
}

// NullValue marks an attribute whose value could not be represented as a
// scalar (array-valued or unreadable attributes).
type NullValue struct{}

func (StringValue) isValue() {}
func (IntValue) isValue()    {}
func (FloatValue) isValue()  {}
func (BoolValue) isValue()   {}
func (NullValue) isValue()   {}

func (v StringValue) Any() any { return v.V }
func (v IntValue) Any() any    { return v.V }
func (v FloatValue) Any() any  { return v.V }
func (v BoolValue) Any() any   { return v.V }
func (NullValue) Any() any     { return nil }

func (v StringValue) String() string { return v.V }
func (v IntValue) String() string    { return strconv.FormatInt(v.V, 10) }
func (v FloatValue) String() string  { return strconv.FormatFloat(v.V, 'g', -1, 64) }
func (v BoolValue) String() string   { return strconv.FormatBool(v.V) }
func (NullValue) String() string     { return "null" }

// Str wraps a string as a Value.
func Str(v string) Value { return StringValue{V: v} }

// Int wraps an int64 as a Value.
func Int(v int64) Value { return IntValue{V: v} }

// Float wraps a float64 as a Value.
func Float(v float64) Value { return FloatValue{V: v} }

// Bool wraps a bool as a Value.
func Bool(v bool) Value { return BoolValue{V: v} }

// Null returns the null Value.
func Null() Value { return NullValue{} }

// StringOf extracts the string payload of a Value.
// Returns false when the value is not a StringValue.
func StringOf(v Value) (string, bool) {
	s, ok := v.(StringValue)
	if !ok {
		return "", false
	}
	return s.V, true
}

// ToValue converts a plain scalar into a Value.
// Unsupported types render through fmt to a StringValue.
func ToValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case string:
		return Str(val)
	case int:
		return Int(int64(val))
	case int64:
		return Int(val)
	case float64:
		return Float(val)
	case bool:
		return Bool(val)
	default:
		return Str(fmt.Sprintf("%v", val))
	}
}
