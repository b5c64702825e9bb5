package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/segviz/segviz/pkg/errors"
)

// decodeTree decodes a complete document into a generic key-value tree.
// All three encodings funnel into the same tree shape so the rest of the
// loader has a single validation path. JSON numbers are kept as
// json.Number so integer and float literals stay distinguishable; YAML
// and TOML are typed at decode time already.
//
// An empty document decodes to an empty tree; required-field checks
// happen later so every encoding reports the same error.
func decodeTree(data []byte, format Format) (map[string]any, error) {
	var raw map[string]any

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode json")
		}
		if dec.More() {
			return nil, errors.New(errors.ErrCodeMalformedDocument, "trailing content after json document")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode yaml")
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode toml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format: %s", format)
	}

	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// ===== Scalar coercion =====
//
// The helpers below accept the union of scalar representations the three
// decoders produce. They never coerce across kinds: an integer literal is
// not a float literal (asFloat widens integers, the one exception, so a
// document may write 1 where 1.0 is meant).

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asInt accepts integer literals only.
func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case uint64:
		if x <= 1<<63-1 {
			return int64(x), true
		}
		return 0, false
	case json.Number:
		i, err := x.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

// asFloat accepts float literals and widens integer literals.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func asStringSlice(v any) ([]string, bool) {
	raw, ok := asSlice(v)
	if !ok {
		return nil, false
	}
	out := make([]string, len(raw))
	for i, e := range raw {
		s, ok := asString(e)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

func asFloatSlice(v any) ([]float64, bool) {
	raw, ok := asSlice(v)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(raw))
	for i, e := range raw {
		f, ok := asFloat(e)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// typeName names a raw document value for error messages, using the
// schema's vocabulary rather than Go's.
func typeName(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "text"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "float"
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return "integer"
		}
		return "float"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
