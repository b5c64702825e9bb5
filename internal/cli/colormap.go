package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/segviz/segviz/pkg/colormap"
	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/pipeline"
	"github.com/segviz/segviz/pkg/render"
	"github.com/segviz/segviz/pkg/render/legend"
)

// colormapCommand creates the colormap command group for working with
// color transfer functions.
func (c *CLI) colormapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colormap",
		Short: "Convert and preview color transfer functions",
		Long: `Convert and preview color transfer functions.

Reads ParaView JSON or VTK XML colormap exports. The convert subcommand
emits Go source reconstructing the map; swatch renders a gradient strip
for visual inspection.`,
	}

	cmd.AddCommand(c.colormapConvertCommand())
	cmd.AddCommand(c.colormapSwatchCommand())

	return cmd
}

// colormapConvertCommand creates the convert subcommand.
func (c *CLI) colormapConvertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <colormap>",
		Short: "Emit Go source for a colormap export",
		Long: `Emit Go source for a colormap export.

The output is a single function returning the colormap as a literal,
ready to paste into a file that imports the colormap and palette
packages. Format is detected from the extension (.json or .xml).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runColormapConvert(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func (c *CLI) runColormapConvert(input, output string) error {
	cm, err := colormap.ParseFile(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("parsed colormap", "name", cm.Name, "points", cm.Len())

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "failed to create %s", output)
		}
		defer f.Close()
		out = f
	}

	if err := colormap.GenerateGo(out, cm); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write Go source")
	}
	if output != "" {
		printFile(output)
	}
	return nil
}

// colormapSwatchCommand creates the swatch subcommand.
func (c *CLI) colormapSwatchCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		steps      int
		labels     bool
		width      float64
		height     float64
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "swatch <colormap>",
		Short: "Render a colormap as a gradient strip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if len(formats) == 0 {
				formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runColormapSwatch(args[0], swatchParams{
				formats: formats,
				output:  output,
				steps:   steps,
				labels:  labels,
				width:   width,
				height:  height,
				scale:   scale,
			})
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of gradient stops (library default if 0)")
	cmd.Flags().BoolVar(&labels, "labels", false, "annotate the strip with domain labels")
	cmd.Flags().Float64Var(&width, "width", 0, "swatch width in pixels")
	cmd.Flags().Float64Var(&height, "height", 0, "swatch height in pixels")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "supersampling factor for png output")

	return cmd
}

// swatchParams holds the flag values for the swatch subcommand.
type swatchParams struct {
	formats []string
	output  string
	steps   int
	labels  bool
	width   float64
	height  float64
	scale   float64
}

func (c *CLI) runColormapSwatch(input string, p swatchParams) error {
	cm, err := colormap.ParseFile(input)
	if err != nil {
		return err
	}

	var opts []legend.SwatchOption
	if p.steps > 0 {
		opts = append(opts, legend.WithSteps(p.steps))
	}
	if p.labels {
		opts = append(opts, legend.WithDomainLabels())
	}
	if p.width > 0 && p.height > 0 {
		opts = append(opts, legend.WithSwatchSize(p.width, p.height))
	}

	svg := legend.RenderSwatch(cm, opts...)

	artifacts := map[string][]byte{}
	for _, format := range p.formats {
		switch format {
		case pipeline.FormatSVG:
			artifacts[format] = svg
		case pipeline.FormatPNG:
			png, err := render.ToPNG(svg, p.scale)
			if err != nil {
				return err
			}
			artifacts[format] = png
		case pipeline.FormatPDF:
			pdf, err := render.ToPDF(svg)
			if err != nil {
				return err
			}
			artifacts[format] = pdf
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "swatch output supports svg, png, and pdf, not %q", format)
		}
	}

	c.Logger.Debug("rendered swatch", "name", cm.Name, "formats", len(artifacts))

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   p.formats,
		input:     input,
		output:    p.output,
	})
}
