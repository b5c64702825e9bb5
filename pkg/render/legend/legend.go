// Package legend renders tissue legends and colormap swatches as SVG.
//
// A legend is a table of the scene's distinct tissues: color swatch,
// name, index, and an opacity bar per row. A swatch is a horizontal
// strip sampled from a colormap. Both are deterministic for a given
// input, so rendered bytes are safe to cache by content hash.
package legend

import (
	"bytes"
	"fmt"
	"html"

	"github.com/segviz/segviz/pkg/render"
	"github.com/segviz/segviz/pkg/scene"
)

const (
	defaultWidth = 340.0

	padding    = 16.0
	titleSize  = 16.0
	rowHeight  = 28.0
	swatchSize = 18.0
	labelSize  = 13.0
	barWidth   = 64.0
	barHeight  = 6.0
)

// SVGOption configures legend rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title string
	width float64
}

// WithTitle overrides the legend heading. The default is the assembly
// title, with the figure name appended when the assembly is restricted
// to one.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithWidth sets the legend width in pixels (default 340).
func WithWidth(w float64) SVGOption { return func(r *svgRenderer) { r.width = w } }

// RenderSVG renders the assembly's tissue legend as SVG. Rows follow
// the assembly's tissue order (index, then name).
func RenderSVG(a *scene.Assembly, opts ...SVGOption) []byte {
	r := svgRenderer{width: defaultWidth}
	for _, opt := range opts {
		opt(&r)
	}
	if r.title == "" {
		r.title = a.Title
		if a.Figure != "" {
			r.title = fmt.Sprintf("%s (%s)", a.Title, a.Figure)
		}
	}

	tissues := a.Tissues()
	height := 2*padding + titleSize + 10 + rowHeight*float64(len(tissues))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, height, r.width, height)
	fmt.Fprintf(&buf, `  <g font-family="Helvetica, Arial, sans-serif" fill="#1f1f1f">`+"\n")
	fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" font-size="%.0f" font-weight="bold">%s</text>`+"\n",
		padding, padding+titleSize, titleSize, html.EscapeString(r.title))

	y := padding + titleSize + 10
	for _, t := range tissues {
		renderRow(&buf, r.width, y, t)
		y += rowHeight
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderRow(buf *bytes.Buffer, width, y float64, t scene.Prop) {
	swatchY := y + (rowHeight-swatchSize)/2
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" rx="3" fill="%s" fill-opacity="%.3g" stroke="#1f1f1f" stroke-width="1"/>`+"\n",
		padding, swatchY, swatchSize, swatchSize, t.Color.Hex(), t.Color.A)

	textY := y + rowHeight/2 + labelSize/2 - 1
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="%.0f">%s</text>`+"\n",
		padding+swatchSize+10, textY, labelSize, html.EscapeString(t.Tissue))

	if t.Index != nil {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="%.0f" fill="#6b6b6b" text-anchor="end">#%d</text>`+"\n",
			width-padding-barWidth-12, textY, labelSize-2, *t.Index)
	}

	barX := width - padding - barWidth
	barY := y + (rowHeight-barHeight)/2
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" rx="2" fill="#e4e4e4"/>`+"\n",
		barX, barY, barWidth, barHeight)
	if t.Opacity > 0 {
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.2f" height="%.0f" rx="2" fill="#5a5a5a"/>`+"\n",
			barX, barY, barWidth*t.Opacity, barHeight)
	}
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the legend as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(a *scene.Assembly, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(a, r.svgOpts...)
	return render.ToPNG(svg, r.scale)
}

// RenderPDF renders the legend as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(a *scene.Assembly, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(a, opts...)
	return render.ToPDF(svg)
}
