package cli

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
)

// browseCommand creates the browse command for interactive tissue exploration.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		format string
		figure string
	)

	cmd := &cobra.Command{
		Use:   "browse <manifest>",
		Short: "Browse a manifest's tissues interactively",
		Long: `Browse a manifest's tissues interactively.

Opens a terminal UI listing every tissue with its color, index,
orientation, and figure membership. Manifests with figure groups first
offer a figure picker; selecting a tissue prints its full detail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], format, figure)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "document format: json, yaml, toml (detected from the path if empty)")
	cmd.Flags().StringVar(&figure, "figure", "", "browse one named figure and skip the picker")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, source, format, figure string) error {
	m, err := c.loadSource(ctx, source, format)
	if err != nil {
		return err
	}

	if figure == "" && len(m.Figures) > 0 {
		fm := NewFigureListModel(m)
		p := tea.NewProgram(fm)
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		ffm, ok := finalModel.(FigureListModel)
		if !ok || ffm.Selected == nil {
			printDetail("No selection made")
			return nil
		}
		figure = ffm.Selected.Figure
	}

	subset, err := figureTissues(m, figure)
	if err != nil {
		return err
	}

	tm := NewTissueListModel(m, subset)
	p := tea.NewProgram(tm)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	tfm, ok := finalModel.(TissueListModel)
	if !ok || tfm.Selected == nil {
		printDetail("No selection made")
		return nil
	}

	printTissueDetail(m, *tfm.Selected.Tissue)
	return nil
}

// figureTissues returns the tissues belonging to a figure, preserving the
// figure's member order. An empty name selects the whole scene.
func figureTissues(m *manifest.SceneManifest, figure string) ([]manifest.Tissue, error) {
	if figure == "" {
		return nil, nil
	}
	members, ok := m.Figure(figure)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFigure, "manifest %q has no figure named %q", m.Title, figure)
	}
	subset := make([]manifest.Tissue, 0, len(members))
	for _, name := range members {
		if t, ok := m.TissueByName(name); ok {
			subset = append(subset, t)
		}
	}
	return subset, nil
}

// printTissueDetail prints the selected tissue's attributes and its
// resolved parameters.
func printTissueDetail(m *manifest.SceneManifest, t manifest.Tissue) {
	fmt.Println(StyleTitle.Render(t.Name))
	if t.Color != nil {
		printKeyValue("Color", formatColor(*t.Color))
	}
	if t.Index != nil {
		printKeyValue("Index", strconv.Itoa(*t.Index))
	}
	if t.Orientation != nil {
		printKeyValue("Orient", t.Orientation.String())
	}
	if t.Opacity != nil {
		printKeyValue("Opacity", strconv.FormatFloat(*t.Opacity, 'g', -1, 64))
	}
	if figures := tissueFigures(m, t.Name); figures != "" {
		printKeyValue("Figures", figures)
	}
	if ps, ok := m.ResolvedParameters(t.Name); ok && len(ps) > 0 {
		printNewline()
		for _, name := range ps.Names() {
			v, _ := ps.Get(name)
			printKeyValue(name, v.String())
		}
	}
}
