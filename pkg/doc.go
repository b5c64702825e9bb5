// Package pkg provides the core libraries for Segviz scene manifest loading.
//
// # Overview
//
// Segviz loads segmentation scene manifests (the JSON/YAML/TOML documents
// that describe which tissues a medical volume contains and how to style
// them) and prepares render-ready scenes and quick-look artifacts. The pkg
// directory is organized into four main areas:
//
//  1. [manifest] - Schema (parsing, validation, parameter resolution)
//  2. [scene] - Assembly (flattening a manifest into render-ready props)
//  3. [render] - Artifact rendering (legends, figure maps, render plans)
//  4. [pipeline] - Orchestration (load → assemble → render) with caching
//
// # Architecture
//
// The typical data flow through Segviz:
//
//	Manifest Document (JSON/YAML/TOML)
//	         ↓
//	    [manifest] package (parse + validate + resolve parameters)
//	         ↓
//	    [scene] package (flatten into per-file, per-tissue props)
//	         ↓
//	    [render] package (legend, figure map, render plan)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Load a manifest and render a legend:
//
//	import (
//	    "github.com/segviz/segviz/pkg/manifest"
//	    "github.com/segviz/segviz/pkg/render/legend"
//	    "github.com/segviz/segviz/pkg/scene"
//	)
//
//	// 1. Load and validate the manifest
//	m, _ := manifest.LoadFile("frog.json")
//
//	// 2. Assemble the scene
//	a, _ := scene.Assemble(m)
//
//	// 3. Render to SVG
//	svg := legend.RenderSVG(a, legend.WithTitle(m.Title))
//
// # Main Packages
//
// ## Schema
//
// [manifest] - Scene manifest loading. Parses both schema variants (volume
// manifests with names/indices/colors tables, surface manifests with a
// bare color table), validates cross references, resolves per-tissue
// parameter tables against defaults, and reports structured errors with
// the offending key path.
//
// [palette] - Color handling. Normalized RGBA components, hex parsing,
// and the named anatomy palette used to resolve symbolic tissue colors.
//
// [colormap] - Transfer function colormaps. Parses ParaView JSON and
// Slicer/VTK XML colormap files and generates Go lookup functions.
//
// ## Assembly
//
// [scene] - Flattens a loaded manifest into one Prop per data file and
// tissue, with color, opacity, orientation, and parameters resolved to
// concrete values. Deterministic ordering (files as listed, tissues by
// index then name).
//
// ## Rendering
//
// [render/legend] - Tissue legend strips and colormap swatches as SVG.
//
// [render/figuremap] - Figure composition diagrams using Graphviz:
// figures on the left, member tissues on the right, filled with their
// resolved scene colors.
//
// [render/plan] - Machine-readable render plan JSON for downstream
// volume pipelines.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (load → assemble → render) used by CLI
// and server. Stage results are cached by content hash so repeated runs
// skip redundant work.
//
// [cache] - Cache backends: FileCache for the CLI (filesystem),
// RedisCache for server deployments, NullCache for --no-cache runs.
//
// [httputil] - Remote manifest fetching with retry and backoff.
//
// [errors] - Structured error codes shared across all packages. Every
// validation failure carries a stable code and the manifest key path
// that triggered it.
//
// [observability] - Hook interfaces for instrumenting pipeline stages,
// cache operations, and document fetches without binding the libraries
// to a metrics backend.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Load from bytes with an explicit format and palette:
//
//	m, err := manifest.Load(data,
//	    manifest.WithFormat(manifest.FormatYAML),
//	    manifest.WithPalette(palette.Default()),
//	)
//
// Resolve one tissue's parameter table:
//
//	if ps, ok := m.ResolvedParameters("bone"); ok {
//	    density, _ := ps.Get("density")
//	}
//
// Restrict assembly to a single figure:
//
//	a, err := scene.Assemble(m, scene.WithFigure("skeletal"))
//
// Render a figure map:
//
//	dot := figuremap.ToDOT(m, a, figuremap.Options{Detailed: true})
//	svg, err := figuremap.RenderSVG(dot)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/manifest/...  # Specific package
//	go test -run Example        # Examples only
//
// [manifest]: https://pkg.go.dev/github.com/segviz/segviz/pkg/manifest
// [palette]: https://pkg.go.dev/github.com/segviz/segviz/pkg/palette
// [colormap]: https://pkg.go.dev/github.com/segviz/segviz/pkg/colormap
// [scene]: https://pkg.go.dev/github.com/segviz/segviz/pkg/scene
// [render]: https://pkg.go.dev/github.com/segviz/segviz/pkg/render
// [render/legend]: https://pkg.go.dev/github.com/segviz/segviz/pkg/render/legend
// [render/figuremap]: https://pkg.go.dev/github.com/segviz/segviz/pkg/render/figuremap
// [render/plan]: https://pkg.go.dev/github.com/segviz/segviz/pkg/render/plan
// [pipeline]: https://pkg.go.dev/github.com/segviz/segviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/segviz/segviz/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/segviz/segviz/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/segviz/segviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/segviz/segviz/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/segviz/segviz/pkg/buildinfo
package pkg
