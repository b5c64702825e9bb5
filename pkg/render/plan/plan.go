// Package plan serializes assemblies as JSON render plans.
//
// The plan is the machine-readable artifact: everything a downstream
// volume pipeline needs to build its actors, without any of segviz's
// internal types. Output is deterministic for a given assembly, so plan
// bytes are safe to cache and diff.
package plan

import (
	"encoding/json"

	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/palette"
	"github.com/segviz/segviz/pkg/scene"
)

// JSONOption configures plan rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	manifest *manifest.SceneManifest
	warnings []manifest.Warning
}

// WithFigureMap includes the manifest's full figure-to-tissue mapping in
// the plan. Without this, the plan only records which single figure the
// assembly was restricted to, if any.
func WithFigureMap(m *manifest.SceneManifest) JSONOption {
	return func(r *jsonRenderer) { r.manifest = m }
}

// WithWarnings includes loader warnings (typically unknown manifest keys)
// in the plan output.
func WithWarnings(warnings []manifest.Warning) JSONOption {
	return func(r *jsonRenderer) { r.warnings = warnings }
}

type jsonOutput struct {
	Title    string              `json:"title"`
	Figure   string              `json:"figure,omitempty"`
	Files    []string            `json:"files"`
	Figures  map[string][]string `json:"figures,omitempty"`
	Tissues  []jsonTissue        `json:"tissues"`
	Props    []scene.Prop        `json:"props"`
	Warnings []jsonWarning       `json:"warnings,omitempty"`
}

type jsonWarning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type jsonTissue struct {
	Name    string       `json:"name"`
	Index   *int         `json:"index,omitempty"`
	Color   palette.RGBA `json:"color"`
	Opacity float64      `json:"opacity"`
}

// RenderJSON exports the assembly as a pretty-printed JSON document.
// The plan includes:
//
//   - The file list in manifest order
//   - One legend entry per distinct tissue (index, color, opacity)
//   - One prop per file and tissue pair, with resolved parameters
//   - Optional figure map and loader warnings
//
// It does not modify the assembly and is safe to call concurrently.
func RenderJSON(a *scene.Assembly, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:   a.Title,
		Figure:  a.Figure,
		Files:   a.Files,
		Tissues: buildJSONTissues(a),
		Props:   a.Props,
	}

	for _, w := range r.warnings {
		out.Warnings = append(out.Warnings, jsonWarning{Path: w.Path, Message: w.Message})
	}

	if r.manifest != nil {
		out.Figures = buildJSONFigures(r.manifest)
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONTissues(a *scene.Assembly) []jsonTissue {
	tissues := a.Tissues()
	result := make([]jsonTissue, len(tissues))
	for i, t := range tissues {
		result[i] = jsonTissue{
			Name:    t.Tissue,
			Index:   t.Index,
			Color:   t.Color,
			Opacity: t.Opacity,
		}
	}
	return result
}

func buildJSONFigures(m *manifest.SceneManifest) map[string][]string {
	names := m.FigureNames()
	if len(names) == 0 {
		return nil
	}
	figures := make(map[string][]string, len(names))
	for _, name := range names {
		members, _ := m.Figure(name)
		figures[name] = members
	}
	return figures
}
