package legend

import (
	"bytes"
	"fmt"
	"html"

	"github.com/segviz/segviz/pkg/colormap"
)

const (
	defaultSwatchWidth  = 512.0
	defaultSwatchHeight = 48.0
	defaultSteps        = 256

	labelPad = 14.0
)

// SwatchOption configures colormap swatch rendering.
type SwatchOption func(*swatchRenderer)

type swatchRenderer struct {
	width  float64
	height float64
	steps  int
	labels bool
}

// WithSwatchSize sets the strip dimensions in pixels (default 512x48).
func WithSwatchSize(w, h float64) SwatchOption {
	return func(r *swatchRenderer) { r.width, r.height = w, h }
}

// WithSteps sets the number of sampled cells (default 256).
func WithSteps(n int) SwatchOption { return func(r *swatchRenderer) { r.steps = n } }

// WithDomainLabels draws the colormap name and domain bounds around the strip.
func WithDomainLabels() SwatchOption { return func(r *swatchRenderer) { r.labels = true } }

// RenderSwatch renders a colormap as a horizontal strip of sampled
// cells. Cells overlap by half a pixel so antialiasing doesn't leave
// seams between them.
func RenderSwatch(cm *colormap.ColorMap, opts ...SwatchOption) []byte {
	r := swatchRenderer{width: defaultSwatchWidth, height: defaultSwatchHeight, steps: defaultSteps}
	for _, opt := range opts {
		opt(&r)
	}
	r.steps = max(r.steps, 2)

	top, totalHeight := 0.0, r.height
	if r.labels {
		top = labelPad + 4
		totalHeight = r.height + 2*(labelPad+4)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, totalHeight, r.width, totalHeight)

	cellW := r.width / float64(r.steps)
	for i, c := range cm.Table(r.steps) {
		x := float64(i) * cellW
		w := cellW + 0.5
		if i == r.steps-1 {
			w = cellW
		}
		fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.1f" width="%.2f" height="%.1f" fill="%s" fill-opacity="%.3g"/>`+"\n",
			x, top, w, r.height, c.Hex(), c.A)
	}

	if r.labels {
		lo, hi := cm.Domain()
		fmt.Fprintf(&buf, `  <g font-family="Helvetica, Arial, sans-serif" font-size="11" fill="#1f1f1f">`+"\n")
		if cm.Name != "" {
			fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-weight="bold">%s</text>`+"\n",
				r.width/2, labelPad, html.EscapeString(cm.Name))
		}
		fmt.Fprintf(&buf, `    <text x="0" y="%.1f">%g</text>`+"\n", totalHeight-4, lo)
		fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" text-anchor="end">%g</text>`+"\n", r.width, totalHeight-4, hi)
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
