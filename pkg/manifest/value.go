package manifest

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/segviz/segviz/pkg/errors"
)

// ParamType identifies the declared type of a tissue parameter.
type ParamType string

// The closed set of parameter types a schema may declare.
const (
	TypeInteger ParamType = "integer"
	TypeFloat   ParamType = "float"
	TypeText    ParamType = "text"
	TypeBoolean ParamType = "boolean"
)

// paramTypeAliases maps accepted type spellings to their canonical form.
var paramTypeAliases = map[string]ParamType{
	"integer": TypeInteger,
	"int":     TypeInteger,
	"float":   TypeFloat,
	"double":  TypeFloat,
	"text":    TypeText,
	"string":  TypeText,
	"str":     TypeText,
	"boolean": TypeBoolean,
	"bool":    TypeBoolean,
}

// ParseParamType resolves a declared type name to its canonical ParamType.
// Common aliases (int, double, str, bool) are accepted.
func ParseParamType(s string) (ParamType, bool) {
	t, ok := paramTypeAliases[s]
	return t, ok
}

// Value is a typed parameter value: exactly one of the closed type set.
// The zero Value is invalid; construct values with Int, Float, Text, or
// Bool, or let the loader build them from document literals.
type Value struct {
	typ ParamType
	i   int64
	f   float64
	s   string
	b   bool
}

// Int creates an integer value.
func Int(v int64) Value { return Value{typ: TypeInteger, i: v} }

// Float creates a float value.
func Float(v float64) Value { return Value{typ: TypeFloat, f: v} }

// Text creates a text value.
func Text(v string) Value { return Value{typ: TypeText, s: v} }

// Bool creates a boolean value.
func Bool(v bool) Value { return Value{typ: TypeBoolean, b: v} }

// Type returns the value's type. The zero Value returns "".
func (v Value) Type() ParamType { return v.typ }

// AsInt returns the integer payload. ok is false for non-integer values.
func (v Value) AsInt() (int64, bool) {
	if v.typ != TypeInteger {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the float payload. Integer values widen losslessly, so
// ok is true for both float and integer values.
func (v Value) AsFloat() (float64, bool) {
	switch v.typ {
	case TypeFloat:
		return v.f, true
	case TypeInteger:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsText returns the text payload. ok is false for non-text values.
func (v Value) AsText() (string, bool) {
	if v.typ != TypeText {
		return "", false
	}
	return v.s, true
}

// AsBool returns the boolean payload. ok is false for non-boolean values.
func (v Value) AsBool() (bool, bool) {
	if v.typ != TypeBoolean {
		return false, false
	}
	return v.b, true
}

// Interface returns the payload as int64, float64, string, or bool.
// The zero Value returns nil.
func (v Value) Interface() any {
	switch v.typ {
	case TypeInteger:
		return v.i
	case TypeFloat:
		return v.f
	case TypeText:
		return v.s
	case TypeBoolean:
		return v.b
	default:
		return nil
	}
}

// String renders the payload for display.
func (v Value) String() string {
	switch v.typ {
	case TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeText:
		return v.s
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

// Equal reports whether two values have the same type and payload.
func (v Value) Equal(o Value) bool { return v == o }

// MarshalJSON encodes the payload as its natural JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// coerceValue builds a Value from a raw document scalar against a declared
// type. Integer literals widen to float when the declared type is float;
// no other coercion is performed.
func coerceValue(raw any, t ParamType, path string) (Value, error) {
	switch t {
	case TypeInteger:
		if i, ok := asInt(raw); ok {
			return Int(i), nil
		}
	case TypeFloat:
		if f, ok := asFloat(raw); ok {
			return Float(f), nil
		}
	case TypeText:
		if s, ok := asString(raw); ok {
			return Text(s), nil
		}
	case TypeBoolean:
		if b, ok := asBool(raw); ok {
			return Bool(b), nil
		}
	}
	return Value{}, errors.NewAt(errors.ErrCodeTypeMismatch, path,
		"expected %s, got %s", t, typeName(raw))
}

// ParameterSet maps parameter names to typed values.
type ParameterSet map[string]Value

// Get returns the value for a parameter name.
func (ps ParameterSet) Get(name string) (Value, bool) {
	v, ok := ps[name]
	return v, ok
}

// Names returns the parameter names in sorted order.
func (ps ParameterSet) Names() []string {
	names := make([]string, 0, len(ps))
	for k := range ps {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Equal reports whether two sets hold the same parameters and values.
func (ps ParameterSet) Equal(o ParameterSet) bool {
	if len(ps) != len(o) {
		return false
	}
	for k, v := range ps {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (ps ParameterSet) clone() ParameterSet {
	if ps == nil {
		return nil
	}
	out := make(ParameterSet, len(ps))
	for k, v := range ps {
		out[k] = v
	}
	return out
}

// ParameterSchema holds the typed tissue-parameter declarations of a
// manifest: the declared types, the shared defaults, and the per-tissue
// override sets.
type ParameterSchema struct {
	Types     map[string]ParamType
	Defaults  ParameterSet
	Overrides map[string]ParameterSet
}

// ParamNames returns the declared parameter names in sorted order.
func (s *ParameterSchema) ParamNames() []string {
	names := make([]string, 0, len(s.Types))
	for k := range s.Types {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Equal reports whether two schemas declare the same types, defaults, and
// overrides. Both nil is equal; nil and non-nil is not.
func (s *ParameterSchema) Equal(o *ParameterSchema) bool {
	if s == nil || o == nil {
		return s == o
	}
	if len(s.Types) != len(o.Types) {
		return false
	}
	for k, v := range s.Types {
		if o.Types[k] != v {
			return false
		}
	}
	if !s.Defaults.Equal(o.Defaults) {
		return false
	}
	if len(s.Overrides) != len(o.Overrides) {
		return false
	}
	for k, v := range s.Overrides {
		ov, ok := o.Overrides[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
