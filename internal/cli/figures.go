package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// figuresCommand creates the figures command for listing figure groups.
func (c *CLI) figuresCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "figures <manifest>",
		Short: "List the figure groups defined by a manifest",
		Long: `List the figure groups defined by a manifest.

Each figure names a subset of tissues rendered together. The listing
shows every group with its member tissues and their colors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFigures(cmd.Context(), args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "document format: json, yaml, toml (detected from the path if empty)")

	return cmd
}

func (c *CLI) runFigures(ctx context.Context, source, format string) error {
	m, err := c.loadSource(ctx, source, format)
	if err != nil {
		return err
	}

	names := m.FigureNames()
	if len(names) == 0 {
		printInfo("%s defines no figures", m.Title)
		return nil
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("%s · %d figures", m.Title, len(names))))
	printNewline()

	for _, name := range names {
		members, _ := m.Figure(name)
		fmt.Printf("  %s\n", StyleHighlight.Render(name))
		for _, tissue := range members {
			swatch := "  "
			if t, ok := m.TissueByName(tissue); ok && t.Color != nil {
				swatch = colorSwatch(*t.Color)
			}
			fmt.Printf("    %s %s\n", swatch, StyleValue.Render(tissue))
		}
		printNewline()
	}
	return nil
}
