package cli

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/segviz/segviz/pkg/httputil"
	"github.com/segviz/segviz/pkg/pipeline"
)

// renderCommand creates the render command for producing scene artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		opacity    float64
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render <manifest>",
		Short: "Render legend, figure map, or plan artifacts from a manifest",
		Long: `Render legend, figure map, or plan artifacts from a manifest.

The render command runs the full pipeline: load the manifest, assemble the
scene, and render the requested artifact. Results are cached locally for
faster subsequent runs.

Artifacts:
  legend   per-tissue color legend (svg, png, pdf)
  figures  figure membership map (svg, png, pdf)
  plan     resolved scene plan (json)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateArtifact(opts.Artifact); err != nil {
				return err
			}
			if cmd.Flags().Changed("default-opacity") {
				opts.DefaultOpacity = &opacity
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-fetch remote sources even when cached")

	// Load flags
	cmd.Flags().StringVar(&opts.Format, "manifest-format", "", "document format: json, yaml, toml (detected from the path if empty)")

	// Assemble flags
	cmd.Flags().StringVar(&opts.Figure, "figure", "", "restrict the scene to one named figure")
	cmd.Flags().StringVar(&opts.DefaultColor, "default-color", "", "palette name or #hex for tissues without a color")
	cmd.Flags().Float64Var(&opacity, "default-opacity", 1.0, "opacity for tissues the manifest leaves unset")

	// Render flags
	cmd.Flags().StringVarP(&opts.Artifact, "artifact", "a", pipeline.DefaultArtifact, "artifact kind: legend (default), figures, plan")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "override the artifact title (legend)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include index and opacity in figure map labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "supersampling factor for png output")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "override the legend width in pixels")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, source string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Source = source
	opts.Logger = c.Logger
	// Resolve format defaults here so writeArtifacts sees the concrete
	// list; Execute works on its own copy of the options.
	opts.SetRenderDefaults()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Artifact))
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     source,
		output:    output,
	}); err != nil {
		return err
	}

	printStats(res.Stats.TissueCount, res.Stats.PropCount, res.CacheInfo.RenderHit)
	for _, w := range res.Manifest.Warnings() {
		printWarning("%s: %s", w.Path, w.Message)
	}
	return nil
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format to disk and prints the paths.
// With a single format the output flag names the file directly; with
// several it acts as a base path and each format appends its extension.
func writeArtifacts(p artifactWriteParams) error {
	printSuccess("Render complete")

	if len(p.formats) == 1 && p.output != "" {
		if err := os.WriteFile(p.output, p.artifacts[p.formats[0]], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", p.output, err)
		}
		printFile(p.output)
		return nil
	}

	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		outputPath := base + "." + format
		if err := os.WriteFile(outputPath, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", outputPath, err)
		}
		printFile(outputPath)
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input; remote inputs
// keep only the final URL segment so files land in the working directory.
// If output ends in a format extension (.svg, .png, ...), that extension
// is stripped so each format can append its own.
func basePath(output, input string) string {
	if output == "" {
		if httputil.IsRemote(input) {
			input = path.Base(input)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
