package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/segviz/segviz/pkg/manifest"
)

// inspectCommand creates the inspect command for examining a manifest.
func (c *CLI) inspectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <manifest>",
		Short: "Show the tissue table for a scene manifest",
		Long: `Show the tissue table for a scene manifest.

Prints the manifest header (title, variant, files, figures) followed by
one row per tissue: color swatch, label index, orientation, opacity,
and the resolved parameter values when the document declares a schema.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "document format: json, yaml, toml (detected from the path if empty)")

	return cmd
}

// runInspect loads the manifest and prints the header and tissue table.
func (c *CLI) runInspect(ctx context.Context, source, format string) error {
	m, err := c.loadSource(ctx, source, format)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(m.Title))
	printKeyValue("Variant", string(m.Variant))
	printKeyValue("Files", strings.Join(m.Files, ", "))
	if names := m.FigureNames(); len(names) > 0 {
		printKeyValue("Figures", strings.Join(names, ", "))
	}
	if m.Schema != nil {
		printKeyValue("Parameters", strings.Join(m.Schema.ParamNames(), ", "))
	}
	printNewline()

	fmt.Println(tissueTable(m))

	for _, w := range m.Warnings() {
		printWarning("%s: %s", w.Path, w.Message)
	}
	return nil
}

// tissueTable renders the per-tissue attribute table.
func tissueTable(m *manifest.SceneManifest) string {
	headers := []string{"", "Tissue", "Index", "Color", "Orient", "Opacity"}
	withParams := m.Schema != nil
	if withParams {
		headers = append(headers, "Parameters")
	}

	rows := make([][]string, 0, len(m.Tissues))
	for _, t := range m.Tissues {
		row := []string{
			tissueSwatch(t),
			t.Name,
			formatIndex(t.Index),
			formatHex(t),
			formatOrientation(t.Orientation),
			formatOpacity(t.Opacity),
		}
		if withParams {
			row = append(row, formatParams(m, t.Name))
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 || col == 4 || col == 5 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func tissueSwatch(t manifest.Tissue) string {
	if t.Color == nil {
		return "  "
	}
	return colorSwatch(*t.Color)
}

func formatIndex(i *int) string {
	if i == nil {
		return "—"
	}
	return strconv.Itoa(*i)
}

func formatHex(t manifest.Tissue) string {
	if t.Color == nil {
		return "—"
	}
	return t.Color.Hex()
}

func formatOrientation(o *manifest.Orientation) string {
	if o == nil {
		return "—"
	}
	return o.String()
}

func formatOpacity(o *float64) string {
	if o == nil {
		return "—"
	}
	return strconv.FormatFloat(*o, 'g', -1, 64)
}

// formatParams renders a tissue's resolved parameters as "name=value"
// pairs in schema order.
func formatParams(m *manifest.SceneManifest, tissue string) string {
	ps, ok := m.ResolvedParameters(tissue)
	if !ok || len(ps) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(ps))
	for _, name := range ps.Names() {
		v, _ := ps.Get(name)
		parts = append(parts, fmt.Sprintf("%s=%s", name, v))
	}
	return strings.Join(parts, " ")
}
