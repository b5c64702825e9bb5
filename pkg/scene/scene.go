// Package scene flattens a loaded manifest into the render-ready form a
// visualization pipeline consumes: one Prop per data file and tissue,
// with color, opacity, orientation, index and parameter table all
// resolved to concrete values.
package scene

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/palette"
)

// Prop is one renderable entity: a tissue as it appears in one data
// file. Optional manifest attributes are filled with assembly defaults,
// so consumers never see the absent case.
type Prop struct {
	File        string                `json:"file"`
	Tissue      string                `json:"tissue"`
	Index       *int                  `json:"index,omitempty"`
	Color       palette.RGBA          `json:"color"`
	Opacity     float64               `json:"opacity"`
	Orientation *manifest.Orientation `json:"orientation,omitempty"`
	Parameters  manifest.ParameterSet `json:"parameters,omitempty"`
}

// Assembly is the flattened scene: every prop for every file, in
// deterministic order (files as listed, tissues by index then name).
type Assembly struct {
	Title  string   `json:"title"`
	Figure string   `json:"figure,omitempty"`
	Files  []string `json:"files"`
	Props  []Prop   `json:"props"`
}

// Option adjusts how a manifest is assembled.
type Option func(*assembler)

type assembler struct {
	figure         string
	defaultColor   palette.RGBA
	defaultOpacity float64
}

// WithFigure restricts the assembly to the tissues of one named figure.
func WithFigure(name string) Option { return func(a *assembler) { a.figure = name } }

// WithDefaultColor sets the color used for tissues the manifest leaves
// uncolored. The default is white.
func WithDefaultColor(c palette.RGBA) Option { return func(a *assembler) { a.defaultColor = c } }

// WithDefaultOpacity sets the opacity used for tissues the manifest
// leaves unset. The default is 1.
func WithDefaultOpacity(o float64) Option { return func(a *assembler) { a.defaultOpacity = o } }

// Assemble flattens a loaded manifest into an Assembly.
func Assemble(m *manifest.SceneManifest, opts ...Option) (*Assembly, error) {
	a := assembler{defaultColor: palette.RGB(1, 1, 1), defaultOpacity: 1}
	for _, opt := range opts {
		opt(&a)
	}
	if a.defaultOpacity < 0 || a.defaultOpacity > 1 || math.IsNaN(a.defaultOpacity) {
		return nil, errors.New(errors.ErrCodeValueOutOfRange, "default opacity %v outside [0, 1]", a.defaultOpacity)
	}
	if !a.defaultColor.InRange() {
		return nil, errors.New(errors.ErrCodeValueOutOfRange, "default color components must be in [0, 1]")
	}

	tissues := m.Tissues
	if a.figure != "" {
		members, ok := m.Figure(a.figure)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFigure, "unknown figure %q (have: %s)", a.figure, strings.Join(m.FigureNames(), ", "))
		}
		tissues = make([]manifest.Tissue, 0, len(members))
		for _, name := range members {
			// Figure members are validated against the tissue list at load.
			t, _ := m.TissueByName(name)
			tissues = append(tissues, t)
		}
	}
	ordered := orderTissues(tissues)

	asm := &Assembly{
		Title:  m.Title,
		Figure: a.figure,
		Files:  slices.Clone(m.Files),
		Props:  make([]Prop, 0, len(m.Files)*len(ordered)),
	}
	for _, file := range m.Files {
		for _, t := range ordered {
			asm.Props = append(asm.Props, a.prop(m, file, t))
		}
	}
	return asm, nil
}

// orderTissues sorts by segmentation index, unindexed tissues last by
// name. The manifest's own order is a map artifact in the surface
// variant, so the assembly imposes its own.
func orderTissues(tissues []manifest.Tissue) []manifest.Tissue {
	ordered := slices.Clone(tissues)
	slices.SortStableFunc(ordered, func(x, y manifest.Tissue) int {
		xi, yi := math.MaxInt, math.MaxInt
		if x.Index != nil {
			xi = *x.Index
		}
		if y.Index != nil {
			yi = *y.Index
		}
		if c := cmp.Compare(xi, yi); c != 0 {
			return c
		}
		return cmp.Compare(x.Name, y.Name)
	})
	return ordered
}

func (a *assembler) prop(m *manifest.SceneManifest, file string, t manifest.Tissue) Prop {
	p := Prop{
		File:    file,
		Tissue:  t.Name,
		Color:   a.defaultColor,
		Opacity: a.defaultOpacity,
	}
	if t.Index != nil {
		idx := *t.Index
		p.Index = &idx
	}
	if t.Color != nil {
		p.Color = *t.Color
	}
	if t.Opacity != nil {
		p.Opacity = *t.Opacity
	}
	if t.Orientation != nil {
		o := *t.Orientation
		p.Orientation = &o
	}
	if params, ok := m.ResolvedParameters(t.Name); ok && len(params) > 0 {
		p.Parameters = maps.Clone(params)
	}
	return p
}

// Tissues returns one representative prop per tissue, in assembly
// order. This is the legend view of the scene.
func (asm *Assembly) Tissues() []Prop {
	seen := make(map[string]bool, len(asm.Props))
	var out []Prop
	for _, p := range asm.Props {
		if seen[p.Tissue] {
			continue
		}
		seen[p.Tissue] = true
		out = append(out, p)
	}
	return out
}

// PropsForFile returns the props of one data file, in assembly order.
func (asm *Assembly) PropsForFile(file string) []Prop {
	var out []Prop
	for _, p := range asm.Props {
		if p.File == file {
			out = append(out, p)
		}
	}
	return out
}
