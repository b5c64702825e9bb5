// Package colormap reads color transfer function definitions in the two
// interchange formats common to scientific visualization tools: ParaView
// exported JSON and SciVisColor XML. A parsed ColorMap can be sampled at
// arbitrary positions, discretized into a fixed-size lookup table, or
// emitted as Go source for embedding.
package colormap

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/palette"
)

// Space identifies the color space interpolation happens in.
type Space string

// Interpolation spaces. SpaceStep disables interpolation entirely and
// holds each control point's color until the next.
const (
	SpaceRGB       Space = "rgb"
	SpaceHSV       Space = "hsv"
	SpaceLab       Space = "lab"
	SpaceCIEDE2000 Space = "ciede2000"
	SpaceDiverging Space = "diverging"
	SpaceStep      Space = "step"
)

// ValidSpaces maps interpolation spaces to validity for quick lookup.
var ValidSpaces = map[Space]bool{
	SpaceRGB:       true,
	SpaceHSV:       true,
	SpaceLab:       true,
	SpaceCIEDE2000: true,
	SpaceDiverging: true,
	SpaceStep:      true,
}

// ParseSpace resolves the vendor spellings found in colormap files
// ("CIELAB", "Lab CIEDE2000", ...). Unrecognized values report ok=false;
// callers fall back to SpaceRGB, which is what the visualization tools do.
func ParseSpace(s string) (Space, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
	switch normalized {
	case "rgb":
		return SpaceRGB, true
	case "hsv":
		return SpaceHSV, true
	case "lab", "cielab":
		return SpaceLab, true
	case "ciede2000", "labciede2000":
		return SpaceCIEDE2000, true
	case "diverging":
		return SpaceDiverging, true
	case "step":
		return SpaceStep, true
	}
	return "", false
}

// Scale identifies how positions map onto the data range.
type Scale string

// Position scales.
const (
	ScaleLinear Scale = "linear"
	ScaleLog10  Scale = "log10"
)

// ValidScales maps position scales to validity for quick lookup.
var ValidScales = map[Scale]bool{
	ScaleLinear: true,
	ScaleLog10:  true,
}

// ParseScale resolves a scale name. Anything other than log10 is linear,
// matching the lenient reading the source formats get elsewhere.
func ParseScale(s string) Scale {
	if strings.ToLower(strings.TrimSpace(s)) == string(ScaleLog10) {
		return ScaleLog10
	}
	return ScaleLinear
}

// Point is one control point of a color map. Opacity is meaningful only
// when the owning ColorMap has HasOpacity set.
type Point struct {
	X       float64
	Color   palette.RGBA
	Opacity float64
}

// ColorMap is a color transfer function: an ordered run of control points
// plus the rules for interpolating between them. The zero value is not
// usable; maps come from the Parse functions or from a literal followed
// by Normalize.
type ColorMap struct {
	Name    string
	Creator string
	Space   Space
	Scale   Scale
	Points  []Point

	// HasOpacity records whether the source carried per-point opacity.
	// When false every sample has alpha 1.
	HasOpacity bool

	// Out-of-range colors. Nil means clamp to the nearest control point
	// (or a dark red marker for NaN input).
	NaN   *palette.RGBA
	Above *palette.RGBA
	Below *palette.RGBA
}

// Len returns the number of control points.
func (cm *ColorMap) Len() int { return len(cm.Points) }

// Domain returns the position range covered by the control points.
// The map must be normalized.
func (cm *ColorMap) Domain() (lo, hi float64) {
	if len(cm.Points) == 0 {
		return 0, 0
	}
	return cm.Points[0].X, cm.Points[len(cm.Points)-1].X
}

// Normalize sorts the control points, fills defaulted fields and
// validates the map. The Parse functions call it before returning; hand
// built maps must call it themselves before sampling.
//
// A valid map has at least two control points with strictly increasing,
// finite positions, colors and opacities inside [0, 1], and positive
// positions when the scale is log10.
func (cm *ColorMap) Normalize() error {
	if cm.Space == "" {
		cm.Space = SpaceRGB
	}
	if cm.Scale == "" {
		cm.Scale = ScaleLinear
	}
	if !ValidSpaces[cm.Space] {
		return errors.New(errors.ErrCodeInvalidInput, "unknown interpolation space %q", cm.Space)
	}
	if !ValidScales[cm.Scale] {
		return errors.New(errors.ErrCodeInvalidInput, "unknown scale %q", cm.Scale)
	}
	if len(cm.Points) < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "color map %q has %d control points, need at least 2", cm.Name, len(cm.Points))
	}

	sort.SliceStable(cm.Points, func(i, j int) bool {
		return cm.Points[i].X < cm.Points[j].X
	})

	for i, p := range cm.Points {
		path := pointPath(i)
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) {
			return errors.NewAt(errors.ErrCodeInvalidInput, path, "control point position must be finite")
		}
		if i > 0 && p.X == cm.Points[i-1].X {
			return errors.NewAt(errors.ErrCodeInvalidInput, path, "duplicate control point at x=%v", p.X)
		}
		if cm.Scale == ScaleLog10 && p.X <= 0 {
			return errors.NewAt(errors.ErrCodeInvalidInput, path, "log10 scale requires positive positions, got x=%v", p.X)
		}
		if !p.Color.InRange() {
			return errors.NewAt(errors.ErrCodeValueOutOfRange, path, "color components must be in [0, 1]")
		}
		if cm.HasOpacity && (p.Opacity < 0 || p.Opacity > 1) {
			return errors.NewAt(errors.ErrCodeValueOutOfRange, path, "opacity %v outside [0, 1]", p.Opacity)
		}
	}

	for _, edge := range []struct {
		name  string
		color *palette.RGBA
	}{
		{"NaN", cm.NaN},
		{"Above", cm.Above},
		{"Below", cm.Below},
	} {
		if edge.color != nil && !edge.color.InRange() {
			return errors.NewAt(errors.ErrCodeValueOutOfRange, edge.name, "color components must be in [0, 1]")
		}
	}
	return nil
}

func pointPath(i int) string {
	return "points[" + strconv.Itoa(i) + "]"
}
