// Package pipeline provides the core manifest pipeline for segviz.
//
// This package implements the complete load → assemble → render pipeline
// that can be used by CLI and server components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Resolve a manifest document from a file, URL, or inline body
//     and parse it into an immutable SceneManifest
//  2. Assemble: Flatten the manifest into per-file, per-tissue props,
//     optionally restricted to one figure
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:   "frog.json",
//	    Artifact: "legend",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	m, err := runner.Load(ctx, opts)
//
//	// Assemble with an existing manifest
//	a, err := runner.Assemble(ctx, m, opts)
//
//	// Render with an existing assembly
//	artifacts, err := runner.Render(ctx, m, a, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/segviz/segviz/pkg/cache"
	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/palette"
	"github.com/segviz/segviz/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the default PNG supersampling factor.
const DefaultScale = 2.0

// Artifact constants for output artifact kinds.
const (
	// ArtifactLegend is the per-tissue color legend.
	ArtifactLegend = "legend"

	// ArtifactFigures is the figure membership map.
	ArtifactFigures = "figures"

	// ArtifactPlan is the resolved scene plan as structured data.
	ArtifactPlan = "plan"
)

// DefaultArtifact is the default artifact kind.
const DefaultArtifact = ArtifactLegend

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidArtifacts is the set of supported artifact kinds.
var ValidArtifacts = map[string]bool{
	ArtifactLegend:  true,
	ArtifactFigures: true,
	ArtifactPlan:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the manifest pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source   string `json:"source,omitempty"`   // File path or http(s) URL
	Document string `json:"document,omitempty"` // Inline document body (alternative to Source)
	Format   string `json:"format,omitempty"`   // json, yaml, toml; detected from Source when empty
	Refresh  bool   `json:"refresh,omitempty"`  // Bypass the fetch cache for remote sources

	// Assemble options
	Figure         string   `json:"figure,omitempty"`          // Restrict to one named figure
	DefaultColor   string   `json:"default_color,omitempty"`   // Palette name or #hex for uncolored tissues
	DefaultOpacity *float64 `json:"default_opacity,omitempty"` // Opacity for tissues the manifest leaves unset

	// Render options
	Artifact string   `json:"artifact,omitempty"` // legend, figures, plan
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`    // Override the artifact title (legend only)
	Detailed bool     `json:"detailed,omitempty"` // Include index and opacity in figure map labels
	Scale    float64  `json:"scale,omitempty"`    // PNG supersampling factor
	Width    float64  `json:"width,omitempty"`    // Override the legend width in pixels

	// Runtime options (not serialized)
	Logger  *log.Logger      `json:"-"`
	Palette *palette.Palette `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Manifest is the loaded scene manifest.
	Manifest *manifest.SceneManifest

	// ManifestHash is the content hash of the canonical manifest encoding.
	ManifestHash string

	// Assembly is the flattened scene.
	Assembly *scene.Assembly

	// AssemblyHash is the content hash of the assembly.
	AssemblyHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TissueCount  int
	PropCount    int
	LoadTime     time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit     bool // Whether the document fetch was skipped
	AssembleHit bool // Whether the assembly came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateArtifact checks that an artifact kind is valid.
func ValidateArtifact(kind string) error {
	if !ValidArtifacts[kind] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid artifact: %q (must be one of: legend, figures, plan)", kind)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" && o.Document == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source or document is required")
	}
	if o.Source != "" && o.Document != "" {
		return errors.New(errors.ErrCodeInvalidInput, "source and document are mutually exclusive")
	}
	if o.Format != "" {
		if _, err := manifest.ParseFormat(o.Format); err != nil {
			return err
		}
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Artifact == "" {
		o.Artifact = DefaultArtifact
	}
	if len(o.Formats) == 0 {
		if o.Artifact == ArtifactPlan {
			o.Formats = []string{FormatJSON}
		} else {
			o.Formats = []string{FormatSVG}
		}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateArtifact(o.Artifact); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsLegend returns true if this is a legend artifact.
func (o *Options) IsLegend() bool {
	return o.Artifact == "" || o.Artifact == ArtifactLegend
}

// IsFigures returns true if this is a figure map artifact.
func (o *Options) IsFigures() bool {
	return o.Artifact == ArtifactFigures
}

// IsPlan returns true if this is a plan artifact.
func (o *Options) IsPlan() bool {
	return o.Artifact == ArtifactPlan
}

// resolveFormat determines the document encoding from the explicit Format
// option, the Source extension, or the JSON default, in that order.
func (o *Options) resolveFormat() manifest.Format {
	if o.Format != "" {
		if f, err := manifest.ParseFormat(o.Format); err == nil {
			return f
		}
	}
	if o.Source != "" {
		if f, err := manifest.DetectFormat(o.Source); err == nil {
			return f
		}
	}
	return manifest.FormatJSON
}

// paletteOrDefault returns the configured palette or the standard one.
func (o *Options) paletteOrDefault() *palette.Palette {
	if o.Palette != nil {
		return o.Palette
	}
	return palette.Default()
}

// paletteName returns the palette name for cache keys.
func (o *Options) paletteName() string {
	if o.Palette != nil {
		return o.Palette.Name()
	}
	return "default"
}

// defaultOpacity returns the effective default opacity for cache keys.
func (o *Options) defaultOpacity() float64 {
	if o.DefaultOpacity != nil {
		return *o.DefaultOpacity
	}
	return 1
}

// ManifestKeyOpts returns cache key options for document loading.
func (o *Options) ManifestKeyOpts() cache.ManifestKeyOpts {
	return cache.ManifestKeyOpts{
		Format:  string(o.resolveFormat()),
		Palette: o.paletteName(),
	}
}

// AssemblyKeyOpts returns cache key options for scene assembly.
func (o *Options) AssemblyKeyOpts() cache.AssemblyKeyOpts {
	return cache.AssemblyKeyOpts{
		Figure:         o.Figure,
		DefaultColor:   o.DefaultColor,
		DefaultOpacity: o.defaultOpacity(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Kind:     o.Artifact,
		Format:   format,
		Title:    o.Title,
		Detailed: o.Detailed,
		Scale:    o.Scale,
		Width:    o.Width,
	}
}
