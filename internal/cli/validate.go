package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
)

// validateCommand creates the validate command for checking manifests.
func (c *CLI) validateCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate <manifest>...",
		Short: "Validate one or more scene manifests",
		Long: `Validate one or more scene manifests.

Each document is loaded and checked: required keys, tissue references in
figures and parameter overrides, value types against the declared
parameter schema, opacity ranges, and index uniqueness. Failures are
reported with their structured code and the offending key path.

Sources may be local file paths or http(s) URLs.

Examples:
  segviz validate frog.json
  segviz validate scenes/*.json
  segviz validate --format yaml https://example.com/scenes/frog.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "document format: json, yaml, toml (detected from the path if empty)")

	return cmd
}

// runValidate loads every source and prints a per-document verdict.
// It returns an error when any document failed, after reporting all of
// them.
func (c *CLI) runValidate(ctx context.Context, sources []string, format string) error {
	prog := newProgress(c.Logger)
	failed := 0

	for _, source := range sources {
		m, err := c.loadSource(ctx, source, format)
		if err != nil {
			failed++
			printValidationFailure(source, err)
			continue
		}
		printValidationSuccess(source, m)
	}

	printNewline()
	if failed > 0 {
		prog.done(fmt.Sprintf("Validated %d manifests, %d failed", len(sources), failed))
		return fmt.Errorf("%d of %d manifests failed validation", failed, len(sources))
	}
	prog.done(fmt.Sprintf("Validated %d manifests", len(sources)))
	if len(sources) == 1 {
		printNextStep("Render", "segviz render "+sources[0])
	}
	return nil
}

// printValidationSuccess prints the verdict line for a loadable
// manifest, plus any loader warnings.
func printValidationSuccess(source string, m *manifest.SceneManifest) {
	printSuccess("%s", source)
	printDetail("%s · %d tissues · %d figures · %s variant",
		m.Title, len(m.Tissues), len(m.Figures), m.Variant)
	for _, w := range m.Warnings() {
		printWarning("%s: %s", w.Path, w.Message)
	}
}

// printValidationFailure prints the verdict line for a failed manifest
// with the structured code. UserMessage already prefixes the offending
// key path when the error carries one.
func printValidationFailure(source string, err error) {
	printError("%s", source)
	code := errors.GetCode(err)
	if code == "" {
		printDetail("%s", err)
		return
	}
	printDetail("%s: %s", code, errors.UserMessage(err))
}
