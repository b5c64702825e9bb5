// Package render produces preview artifacts for assembled scenes.
//
// # Overview
//
// Rendering here means quick-look output, not geometry: the heavy
// volume work happens in whatever VTK pipeline consumes the plan. This
// package tree provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Tissue legends and colormap swatches (in [legend] subpackage)
//   - Figure composition diagrams (in [figuremap] subpackage)
//   - Machine-readable render plans (in [plan] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats
// using the external rsvg-convert tool (from librsvg). These are shared
// by the legend and figuremap renderers.
//
//	svg := legend.RenderSVG(assembly, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Legends
//
// The [legend] subpackage renders an SVG table of the scene's tissues:
// color swatch, name, index, and an opacity bar per row. It also draws
// horizontal swatch strips for colormaps.
//
// # Figure Maps
//
// The [figuremap] subpackage renders the figure-to-tissue mapping as a
// Graphviz diagram. Tissue nodes are filled with their resolved colors.
//
//	dot := figuremap.ToDOT(m, assembly, figuremap.Options{})
//	svg, err := figuremap.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// # Plans
//
// The [plan] subpackage serializes an assembly as a JSON document for
// downstream tooling.
//
// [legend]: github.com/segviz/segviz/pkg/render/legend
// [figuremap]: github.com/segviz/segviz/pkg/render/figuremap
// [plan]: github.com/segviz/segviz/pkg/render/plan
package render
