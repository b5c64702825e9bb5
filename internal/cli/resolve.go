package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
)

// resolveCommand creates the resolve command for printing parameter tables.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		format string
		tissue string
		output string
	)

	cmd := &cobra.Command{
		Use:   "resolve <manifest>",
		Short: "Print the resolved per-tissue parameter tables as JSON",
		Long: `Print the resolved per-tissue parameter tables as JSON.

Each tissue maps to its parameter set after defaults and per-tissue
overrides have been merged. Manifests without a tissue_parameters
schema resolve to an empty object.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), args[0], format, tissue, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "document format: json, yaml, toml (detected from the path if empty)")
	cmd.Flags().StringVar(&tissue, "tissue", "", "resolve a single tissue instead of all of them")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

func (c *CLI) runResolve(ctx context.Context, source, format, tissue, output string) error {
	m, err := c.loadSource(ctx, source, format)
	if err != nil {
		return err
	}

	tables := map[string]manifest.ParameterSet{}
	if tissue != "" {
		ps, ok := m.ResolvedParameters(tissue)
		if !ok {
			return errors.New(errors.ErrCodeUnknownTissueRef, "manifest %q has no tissue named %q", m.Title, tissue)
		}
		tables[tissue] = ps
	} else {
		for _, name := range m.TissueNames() {
			if ps, ok := m.ResolvedParameters(name); ok {
				tables[name] = ps
			}
		}
	}

	data, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to encode parameter tables")
	}

	if output != "" {
		if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", output)
		}
		printFile(output)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
