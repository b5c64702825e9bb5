package manifest

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/segviz/segviz/pkg/errors"
)

// Encode serializes a manifest back into a document. The output is
// canonical: named colors become numeric components, parameter type
// aliases become their canonical spelling, and map keys are emitted in
// sorted order. Loading the output yields a manifest Equal to the input.
func Encode(m *SceneManifest, format Format) ([]byte, error) {
	doc := buildDoc(m)

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json manifest")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode yaml manifest")
		}
		return out, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode toml manifest")
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format: %s", format)
	}
}

// EncodeJSON serializes a manifest as canonical JSON. This is the form
// used for caching, hashing, and API responses.
func EncodeJSON(m *SceneManifest) ([]byte, error) {
	return Encode(m, FormatJSON)
}

func buildDoc(m *SceneManifest) map[string]any {
	doc := map[string]any{
		"title": m.Title,
		"files": m.Files,
	}
	if len(m.Tissues) > 0 || m.Variant == VariantSurface {
		doc["tissues"] = buildTissuesDoc(m)
	}
	if len(m.Figures) > 0 {
		figures := make(map[string]any, len(m.Figures))
		for name, members := range m.Figures {
			figures[name] = members
		}
		doc["figures"] = figures
	}
	if m.Schema != nil {
		doc["tissue_parameters"] = buildSchemaDoc(m.Schema)
	}
	return doc
}

func buildTissuesDoc(m *SceneManifest) map[string]any {
	names := make([]string, len(m.Tissues))
	indices := map[string]any{}
	colors := map[string]any{}
	orientation := map[string]any{}
	opacity := map[string]any{}

	for i, t := range m.Tissues {
		names[i] = t.Name
		if t.Index != nil {
			indices[t.Name] = *t.Index
		}
		if t.Color != nil {
			colors[t.Name] = t.Color.Components()
		}
		if t.Orientation != nil {
			if t.Orientation.Numeric {
				orientation[t.Name] = t.Orientation.Angle
			} else {
				orientation[t.Name] = t.Orientation.Preset
			}
		}
		if t.Opacity != nil {
			opacity[t.Name] = *t.Opacity
		}
	}

	out := map[string]any{}
	// The surface layout derives its tissue list from the color map, so
	// the names list is what distinguishes the volume layout on reload.
	if m.Variant == VariantVolume {
		out["names"] = names
	}
	if len(indices) > 0 {
		out["indices"] = indices
	}
	if len(colors) > 0 || m.Variant == VariantSurface {
		out["colors"] = colors
	}
	if len(orientation) > 0 {
		out["orientation"] = orientation
	}
	if len(opacity) > 0 {
		out["opacity"] = opacity
	}
	return out
}

func buildSchemaDoc(s *ParameterSchema) map[string]any {
	types := make(map[string]any, len(s.Types))
	for name, t := range s.Types {
		types[name] = string(t)
	}

	out := map[string]any{keyParameterTypes: types}
	if len(s.Defaults) > 0 {
		out[keyDefault] = parameterSetDoc(s.Defaults)
	}
	for name, overrides := range s.Overrides {
		out[name] = parameterSetDoc(overrides)
	}
	return out
}

func parameterSetDoc(ps ParameterSet) map[string]any {
	out := make(map[string]any, len(ps))
	for name, v := range ps {
		out[name] = v.Interface()
	}
	return out
}
