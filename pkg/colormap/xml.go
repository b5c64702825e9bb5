package colormap

import (
	"encoding/xml"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/palette"
)

type xmlDocument struct {
	XMLName  xml.Name
	ColorMap *xmlColorMap `xml:"ColorMap"`
}

type xmlColorMap struct {
	Name        string     `xml:"name,attr"`
	Creator     string     `xml:"creator,attr"`
	Space       string     `xml:"space,attr"`
	InterpSpace string     `xml:"interpolationspace,attr"`
	InterpType  string     `xml:"interpolationtype,attr"`
	Points      []xmlPoint `xml:"Point"`
	NaN         *xmlColor  `xml:"NaN"`
	Above       *xmlColor  `xml:"Above"`
	Below       *xmlColor  `xml:"Below"`
}

type xmlPoint struct {
	X float64  `xml:"x,attr"`
	O *float64 `xml:"o,attr"`
	R float64  `xml:"r,attr"`
	G float64  `xml:"g,attr"`
	B float64  `xml:"b,attr"`
}

type xmlColor struct {
	R float64 `xml:"r,attr"`
	G float64 `xml:"g,attr"`
	B float64 `xml:"b,attr"`
}

// ParseXML reads a SciVisColor colormap: a ColorMap element (bare or
// wrapped in ColorMaps) holding Point children with x, r, g, b and an
// optional o attribute, plus optional NaN, Above and Below colors.
//
// The interpolationspace attribute selects the interpolation space and
// interpolationtype the scale. When the space attribute says hsv, each
// point's r, g, b attributes are hue, saturation and value in [0, 1]
// and are converted to RGB on load.
func ParseXML(data []byte) (*ColorMap, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parsing colormap XML")
	}
	raw := doc.ColorMap
	if raw == nil && doc.XMLName.Local == "ColorMap" {
		raw = &xmlColorMap{}
		if err := xml.Unmarshal(data, raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedDocument, err, "parsing colormap XML")
		}
	}
	if raw == nil {
		return nil, errors.NewAt(errors.ErrCodeMissingRequiredField, "ColorMap", "no ColorMap element found")
	}

	cm := &ColorMap{
		Name:    raw.Name,
		Creator: raw.Creator,
		Space:   SpaceRGB,
		Scale:   ParseScale(raw.InterpType),
	}
	if space, ok := ParseSpace(raw.InterpSpace); ok {
		cm.Space = space
	}

	hsvPoints := false
	if space, ok := ParseSpace(raw.Space); ok && space == SpaceHSV {
		hsvPoints = true
	}

	withOpacity := 0
	for _, p := range raw.Points {
		point := Point{X: p.X, Opacity: 1}
		if hsvPoints {
			c := colorful.Hsv(p.R*360, p.G, p.B).Clamped()
			point.Color = palette.RGB(c.R, c.G, c.B)
		} else {
			point.Color = palette.RGB(p.R, p.G, p.B)
		}
		if p.O != nil {
			point.Opacity = *p.O
			withOpacity++
		}
		cm.Points = append(cm.Points, point)
	}
	switch withOpacity {
	case 0:
	case len(cm.Points):
		cm.HasOpacity = true
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "opacity must be set on all points or none, got %d of %d", withOpacity, len(cm.Points))
	}

	cm.NaN = raw.NaN.rgba()
	cm.Above = raw.Above.rgba()
	cm.Below = raw.Below.rgba()

	if err := cm.Normalize(); err != nil {
		return nil, err
	}
	return cm, nil
}

func (c *xmlColor) rgba() *palette.RGBA {
	if c == nil {
		return nil
	}
	rgba := palette.RGB(c.R, c.G, c.B)
	return &rgba
}
