package legend

import (
	"strings"
	"testing"

	"github.com/segviz/segviz/pkg/colormap"
	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/palette"
	"github.com/segviz/segviz/pkg/scene"
)

const frogDoc = `{
	"title": "Frog",
	"files": ["frog.mhd"],
	"tissues": {
		"names": ["skin", "skeleton"],
		"indices": {"skin": 1, "skeleton": 2},
		"colors": {"skin": [1, 0.8, 0.7], "skeleton": [1, 1, 0.94]},
		"opacity": {"skin": 0.4}
	},
	"figures": {"bones": ["skeleton"]}
}`

func assemble(t *testing.T, opts ...scene.Option) *scene.Assembly {
	t.Helper()
	m, err := manifest.Load([]byte(frogDoc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a, err := scene.Assemble(m, opts...)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return a
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(assemble(t)))

	for _, want := range []string{
		`viewBox="0 0 340.0`,
		">Frog</text>",
		">skin</text>",
		">skeleton</text>",
		`fill="#ffccb3"`, // skin swatch
		`fill="#fffff0"`, // skeleton swatch
		">#1</text>",
		">#2</text>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() not closed")
	}
}

func TestRenderSVGOpacityBar(t *testing.T) {
	svg := string(RenderSVG(assemble(t)))

	// Skin at opacity 0.4 fills 40% of the 64px bar.
	if !strings.Contains(svg, `width="25.60"`) {
		t.Errorf("missing partial opacity bar fill:\n%s", svg)
	}
	// Skeleton defaults to 1.0 and fills the whole bar.
	if !strings.Contains(svg, `width="64.00"`) {
		t.Error("missing full opacity bar fill")
	}
}

func TestRenderSVGFigureTitle(t *testing.T) {
	svg := string(RenderSVG(assemble(t, scene.WithFigure("bones"))))
	if !strings.Contains(svg, ">Frog (bones)</text>") {
		t.Error("figure name should appear in the default title")
	}
	if strings.Contains(svg, ">skin</text>") {
		t.Error("figure-restricted legend should not list skin")
	}
}

func TestRenderSVGTitleOverride(t *testing.T) {
	svg := string(RenderSVG(assemble(t), WithTitle("Override"), WithWidth(500)))
	if !strings.Contains(svg, ">Override</text>") {
		t.Error("WithTitle should replace the heading")
	}
	if !strings.Contains(svg, `viewBox="0 0 500.0`) {
		t.Error("WithWidth should change the frame")
	}
}

func TestRenderSVGEscapesText(t *testing.T) {
	svg := string(RenderSVG(assemble(t), WithTitle(`<script>"x"</script>`)))
	if strings.Contains(svg, "<script>") {
		t.Error("title must be escaped")
	}
	if !strings.Contains(svg, "&lt;script&gt;") {
		t.Error("expected escaped title text")
	}
}

func greyscale() *colormap.ColorMap {
	cm := &colormap.ColorMap{
		Name: "Grey",
		Points: []colormap.Point{
			{X: 0, Color: palette.RGB(0, 0, 0)},
			{X: 1, Color: palette.RGB(1, 1, 1)},
		},
	}
	if err := cm.Normalize(); err != nil {
		panic(err)
	}
	return cm
}

func TestRenderSwatch(t *testing.T) {
	svg := string(RenderSwatch(greyscale(), WithSteps(4), WithSwatchSize(400, 40)))

	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("missing first sample color")
	}
	if !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("missing last sample color")
	}
	if got := strings.Count(svg, "<rect"); got != 4 {
		t.Errorf("cell count = %d, want 4", got)
	}
	if strings.Contains(svg, ">Grey</text>") {
		t.Error("labels should be off by default")
	}
}

func TestRenderSwatchLabels(t *testing.T) {
	svg := string(RenderSwatch(greyscale(), WithSteps(8), WithDomainLabels()))

	for _, want := range []string{">Grey</text>", ">0</text>", ">1</text>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSwatch() missing %q", want)
		}
	}
}
