package pipeline

import (
	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/render/figuremap"
	"github.com/segviz/segviz/pkg/render/legend"
	"github.com/segviz/segviz/pkg/render/plan"
	"github.com/segviz/segviz/pkg/scene"
)

// Render generates output artifacts in the requested formats.
//
// The manifest travels alongside the assembly because the plan and figure
// map draw figure definitions and load warnings from it, which a
// figure-restricted assembly no longer carries.
func Render(m *manifest.SceneManifest, a *scene.Assembly, opts Options) (map[string][]byte, error) {
	switch {
	case opts.IsPlan():
		return renderPlan(m, a, opts)
	case opts.IsFigures():
		return renderFigures(m, a, opts)
	default:
		return renderLegend(m, a, opts)
	}
}

// renderLegend generates legend outputs.
func renderLegend(m *manifest.SceneManifest, a *scene.Assembly, opts Options) (map[string][]byte, error) {
	svgOpts := buildLegendOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = legend.RenderSVG(a, svgOpts...)
		case FormatPNG:
			data, err = legend.RenderPNG(a, legend.WithPNGSVGOptions(svgOpts...), legend.WithScale(opts.Scale))
		case FormatPDF:
			data, err = legend.RenderPDF(a, svgOpts...)
		case FormatJSON:
			data, err = renderPlanJSON(m, a)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported legend format: %s", format)
		}

		if err != nil {
			return nil, wrapStage(err, "render "+format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderFigures generates figure map outputs.
func renderFigures(m *manifest.SceneManifest, a *scene.Assembly, opts Options) (map[string][]byte, error) {
	dot := figuremap.ToDOT(m, a, figuremap.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = figuremap.RenderSVG(dot)
		case FormatPNG:
			data, err = figuremap.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			data, err = figuremap.RenderPDF(dot)
		case FormatJSON:
			data, err = renderPlanJSON(m, a)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported figures format: %s", format)
		}

		if err != nil {
			return nil, wrapStage(err, "render "+format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderPlan generates plan outputs. The plan is structured data, so JSON
// is the only supported format.
func renderPlan(m *manifest.SceneManifest, a *scene.Assembly, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if format != FormatJSON {
			return nil, errors.New(errors.ErrCodeUnsupported, "plan renders to json only, got %s", format)
		}
		data, err := renderPlanJSON(m, a)
		if err != nil {
			return nil, wrapStage(err, "render "+format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderPlanJSON emits the resolved scene plan with the full figure map
// and any load warnings attached.
func renderPlanJSON(m *manifest.SceneManifest, a *scene.Assembly) ([]byte, error) {
	return plan.RenderJSON(a, plan.WithFigureMap(m), plan.WithWarnings(m.Warnings()))
}

// buildLegendOptions builds legend rendering options.
func buildLegendOptions(opts Options) []legend.SVGOption {
	var svgOpts []legend.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, legend.WithTitle(opts.Title))
	}
	if opts.Width > 0 {
		svgOpts = append(svgOpts, legend.WithWidth(opts.Width))
	}
	return svgOpts
}
