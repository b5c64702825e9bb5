// Package palette provides colors for scene manifests.
//
// Manifest documents may reference colors by name instead of spelling out
// numeric components. A Palette maps those names to concrete RGBA values
// and is passed explicitly into the loader; there is no process-wide
// palette. Default returns the standard palette: the CSS named colors
// extended with the classic visualization-toolkit names (banana, peacock,
// flesh, ...) that segmentation datasets tend to use.
package palette

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/segviz/segviz/pkg/errors"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// FromBytes creates a color from 8-bit components.
func FromBytes(r, g, b, a uint8) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// Hex returns the color as "#rrggbb", or "#rrggbbaa" when the color is
// not fully opaque. Components are clamped to [0, 1] first.
func (c RGBA) Hex() string {
	r := uint8(clamp01(c.R)*255 + 0.5)
	g := uint8(clamp01(c.G)*255 + 0.5)
	b := uint8(clamp01(c.B)*255 + 0.5)
	a := uint8(clamp01(c.A)*255 + 0.5)
	if a == 255 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// Components returns the color as a slice: [r, g, b] when fully opaque,
// [r, g, b, a] otherwise. This is the numeric form manifests use.
func (c RGBA) Components() []float64 {
	if c.A == 1 {
		return []float64{c.R, c.G, c.B}
	}
	return []float64{c.R, c.G, c.B, c.A}
}

// InRange reports whether all components lie in [0, 1].
func (c RGBA) InRange() bool {
	for _, v := range []float64{c.R, c.G, c.B, c.A} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the color as a hex string.
func (c RGBA) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Hex())
}

// UnmarshalJSON accepts a hex string.
func (c *RGBA) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(errors.ErrCodeUnknownColor, err, "color must be a hex string")
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseHex parses a hex color string.
// Supports formats: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA" (leading "#"
// optional).
func ParseHex(hex string) (RGBA, error) {
	s := strings.TrimPrefix(hex, "#")

	var r, g, b uint32
	a := uint32(255)

	ok := true
	switch len(s) {
	case 3: // RGB
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b) && parseHex(s[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b) && parseHex(s[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return RGBA{}, errors.New(errors.ErrCodeUnknownColor, "invalid hex color %q", hex)
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Palette maps color names to RGBA values.
type Palette struct {
	name   string
	colors map[string]RGBA
}

// New creates a palette from a name and a color map. The map is copied.
func New(name string, colors map[string]RGBA) *Palette {
	m := make(map[string]RGBA, len(colors))
	for k, v := range colors {
		m[normalizeName(k)] = v
	}
	return &Palette{name: name, colors: m}
}

// Default returns the standard palette: CSS named colors plus the classic
// visualization-toolkit names. The palette is freshly built on each call
// so callers can extend their copy without affecting others.
func Default() *Palette {
	m := make(map[string]RGBA, len(cssColors)+len(toolkitColors))
	for k, v := range cssColors {
		m[k] = v
	}
	for k, v := range toolkitColors {
		m[k] = v
	}
	return &Palette{name: "default", colors: m}
}

// Name returns the palette name.
func (p *Palette) Name() string { return p.name }

// Len returns the number of colors in the palette.
func (p *Palette) Len() int { return len(p.colors) }

// Set adds or replaces a named color.
func (p *Palette) Set(name string, c RGBA) {
	p.colors[normalizeName(name)] = c
}

// Lookup finds a color by name. Matching is case-insensitive and ignores
// spaces, underscores, and hyphens, so "Cold Grey", "cold_grey", and
// "coldgrey" all resolve to the same entry.
func (p *Palette) Lookup(name string) (RGBA, bool) {
	c, ok := p.colors[normalizeName(name)]
	return c, ok
}

// Parse resolves a color string against the palette: a hex literal
// ("#6495ed") or a palette name ("cornflowerblue"). Returns an error with
// code UNKNOWN_COLOR when the name is not in the palette.
func (p *Palette) Parse(s string) (RGBA, error) {
	if strings.HasPrefix(s, "#") {
		return ParseHex(s)
	}
	if c, ok := p.Lookup(s); ok {
		return c, nil
	}
	return RGBA{}, errors.New(errors.ErrCodeUnknownColor, "unknown color name %q", s)
}

// Names returns all color names in the palette, unsorted.
func (p *Palette) Names() []string {
	names := make([]string, 0, len(p.colors))
	for k := range p.colors {
		names = append(names, k)
	}
	return names
}

func normalizeName(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
