package colormap

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/palette"
)

// ParseJSON reads a ParaView exported colormap. The document is a JSON
// array whose first element describes the map: Name, Creator and
// ColorSpace strings, an optional NanColor triple, and control points
// flattened into runs of four (x, r, g, b) under any key containing
// "Points". A trailing partial run is discarded.
func ParseJSON(data []byte) (*ColorMap, error) {
	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parsing colormap JSON")
	}
	if len(docs) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedDocument, "colormap JSON contains no entries")
	}
	doc := docs[0]

	cm := &ColorMap{Space: SpaceRGB, Scale: ScaleLinear}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := doc[k]
		switch {
		case k == "Name":
			cm.Name, _ = v.(string)
		case k == "Creator":
			cm.Creator, _ = v.(string)
		case k == "ColorSpace":
			if s, ok := v.(string); ok {
				if space, ok := ParseSpace(s); ok {
					cm.Space = space
				}
			}
		case k == "NanColor":
			nan, err := jsonColor(v, k)
			if err != nil {
				return nil, err
			}
			cm.NaN = nan
		case strings.Contains(k, "Points"):
			run, err := jsonFloats(v, k)
			if err != nil {
				return nil, err
			}
			for i := 0; i+4 <= len(run); i += 4 {
				cm.Points = append(cm.Points, Point{
					X:     run[i],
					Color: palette.RGB(run[i+1], run[i+2], run[i+3]),
				})
			}
		}
	}

	if err := cm.Normalize(); err != nil {
		return nil, err
	}
	return cm, nil
}

func jsonFloats(v any, path string) ([]float64, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected a list of numbers")
	}
	out := make([]float64, 0, len(list))
	for _, item := range list {
		f, ok := item.(float64)
		if !ok {
			return nil, errors.NewAt(errors.ErrCodeMalformedDocument, path, "expected a list of numbers")
		}
		out = append(out, f)
	}
	return out, nil
}

func jsonColor(v any, path string) (*palette.RGBA, error) {
	run, err := jsonFloats(v, path)
	if err != nil {
		return nil, err
	}
	if len(run) < 3 {
		return nil, errors.NewAt(errors.ErrCodeMalformedDocument, path, "color needs 3 components, got %d", len(run))
	}
	c := palette.RGB(run[0], run[1], run[2])
	return &c, nil
}
