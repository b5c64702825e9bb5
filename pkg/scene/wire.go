package scene

import (
	"encoding/json"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/palette"
)

// The wire format exists for caching and transport: Assembly's public
// JSON form (via MarshalJSON on its field types) encodes parameter
// values as bare scalars and colors as 8-bit hex, neither of which
// decodes back exactly. The wire form carries each value's declared
// type alongside its payload and colors as float components, so a
// round trip is exact.

type wireAssembly struct {
	Title  string     `json:"title"`
	Figure string     `json:"figure,omitempty"`
	Files  []string   `json:"files"`
	Props  []wireProp `json:"props"`
}

type wireProp struct {
	File        string               `json:"file"`
	Tissue      string               `json:"tissue"`
	Index       *int                 `json:"index,omitempty"`
	Color       []float64            `json:"color"`
	Opacity     float64              `json:"opacity"`
	Orientation *wireOrientation     `json:"orientation,omitempty"`
	Parameters  map[string]wireValue `json:"parameters,omitempty"`
}

type wireOrientation struct {
	Preset  string  `json:"preset,omitempty"`
	Angle   float64 `json:"angle,omitempty"`
	Numeric bool    `json:"numeric,omitempty"`
}

type wireValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalAssembly converts an assembly to its wire JSON form. The output
// is deterministic for a given assembly, so it is safe to hash and cache.
func MarshalAssembly(a *Assembly) ([]byte, error) {
	out := wireAssembly{
		Title:  a.Title,
		Figure: a.Figure,
		Files:  a.Files,
		Props:  make([]wireProp, len(a.Props)),
	}

	for i, p := range a.Props {
		wp := wireProp{
			File:    p.File,
			Tissue:  p.Tissue,
			Index:   p.Index,
			Color:   p.Color.Components(),
			Opacity: p.Opacity,
		}
		if p.Orientation != nil {
			wp.Orientation = &wireOrientation{
				Preset:  p.Orientation.Preset,
				Angle:   p.Orientation.Angle,
				Numeric: p.Orientation.Numeric,
			}
		}
		if len(p.Parameters) > 0 {
			wp.Parameters = make(map[string]wireValue, len(p.Parameters))
			for name, v := range p.Parameters {
				raw, err := json.Marshal(v.Interface())
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode parameter %s", name)
				}
				wp.Parameters[name] = wireValue{Type: string(v.Type()), Value: raw}
			}
		}
		out.Props[i] = wp
	}

	return json.Marshal(out)
}

// UnmarshalAssembly decodes wire JSON produced by [MarshalAssembly].
func UnmarshalAssembly(data []byte) (*Assembly, error) {
	var in wireAssembly
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode assembly")
	}

	a := &Assembly{
		Title:  in.Title,
		Figure: in.Figure,
		Files:  in.Files,
		Props:  make([]Prop, len(in.Props)),
	}

	for i, wp := range in.Props {
		color, err := colorFromComponents(wp.Color)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode prop %s/%s color", wp.File, wp.Tissue)
		}
		p := Prop{
			File:    wp.File,
			Tissue:  wp.Tissue,
			Index:   wp.Index,
			Color:   color,
			Opacity: wp.Opacity,
		}
		if wp.Orientation != nil {
			p.Orientation = &manifest.Orientation{
				Preset:  wp.Orientation.Preset,
				Angle:   wp.Orientation.Angle,
				Numeric: wp.Orientation.Numeric,
			}
		}
		if len(wp.Parameters) > 0 {
			p.Parameters = make(manifest.ParameterSet, len(wp.Parameters))
			for name, wv := range wp.Parameters {
				v, err := decodeWireValue(wv)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "decode parameter %s", name)
				}
				p.Parameters[name] = v
			}
		}
		a.Props[i] = p
	}

	return a, nil
}

func colorFromComponents(comps []float64) (palette.RGBA, error) {
	switch len(comps) {
	case 3:
		return palette.RGBA{R: comps[0], G: comps[1], B: comps[2], A: 1}, nil
	case 4:
		return palette.RGBA{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, nil
	}
	return palette.RGBA{}, errors.New(errors.ErrCodeMalformedDocument, "color needs 3 or 4 components, got %d", len(comps))
}

func decodeWireValue(wv wireValue) (manifest.Value, error) {
	switch manifest.ParamType(wv.Type) {
	case manifest.TypeInteger:
		var i int64
		if err := json.Unmarshal(wv.Value, &i); err != nil {
			return manifest.Value{}, err
		}
		return manifest.Int(i), nil
	case manifest.TypeFloat:
		var f float64
		if err := json.Unmarshal(wv.Value, &f); err != nil {
			return manifest.Value{}, err
		}
		return manifest.Float(f), nil
	case manifest.TypeText:
		var s string
		if err := json.Unmarshal(wv.Value, &s); err != nil {
			return manifest.Value{}, err
		}
		return manifest.Text(s), nil
	case manifest.TypeBoolean:
		var b bool
		if err := json.Unmarshal(wv.Value, &b); err != nil {
			return manifest.Value{}, err
		}
		return manifest.Bool(b), nil
	}
	return manifest.Value{}, errors.New(errors.ErrCodeTypeMismatch, "unknown parameter type %q", wv.Type)
}
