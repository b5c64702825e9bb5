// Package figuremap renders figure composition as a Graphviz diagram.
//
// Figures on the left, tissues on the right, with an edge for every
// membership. Tissue nodes are filled with their resolved scene colors,
// which makes a quick visual check of a manifest's palette possible
// without running any volume pipeline.
package figuremap

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/palette"
	"github.com/segviz/segviz/pkg/render"
	"github.com/segviz/segviz/pkg/scene"
)

// Options configures figure map generation.
type Options struct {
	// Detailed includes index and opacity in tissue labels.
	// When false, only the tissue name is shown.
	Detailed bool
}

// ToDOT converts a manifest's figure composition to Graphviz DOT format.
// Tissue colors and ordering come from the assembly, so callers should
// assemble without a figure restriction to get every tissue node.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
func ToDOT(m *manifest.SceneManifest, a *scene.Assembly, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph figures {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.9;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for _, name := range m.FigureNames() {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, style=filled, fillcolor=\"#f0f0f0\"];\n",
			"figure/"+name, name)
	}

	buf.WriteString("\n")
	drawn := make(map[string]bool)
	for _, t := range a.Tissues() {
		drawn[t.Tissue] = true
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=\"rounded,filled\", fillcolor=%q, fontcolor=%q];\n",
			"tissue/"+t.Tissue, tissueLabel(t, opts.Detailed), t.Color.Hex(), fontColor(t.Color))
	}

	buf.WriteString("\n")
	for _, name := range m.FigureNames() {
		members, _ := m.Figure(name)
		for _, tissue := range members {
			if !drawn[tissue] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", "figure/"+name, "tissue/"+tissue)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func tissueLabel(t scene.Prop, detailed bool) string {
	if !detailed {
		return t.Tissue
	}

	parts := []string{t.Tissue}
	if t.Index != nil {
		parts = append(parts, fmt.Sprintf("index: %d", *t.Index))
	}
	parts = append(parts, fmt.Sprintf("opacity: %.2g", t.Opacity))
	return strings.Join(parts, "\n")
}

// fontColor picks black or white text by the fill's relative luminance.
func fontColor(c palette.RGBA) string {
	lum := 0.299*c.R + 0.587*c.G + 0.114*c.B
	if lum > 0.55 {
		return "#1f1f1f"
	}
	return "white"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
