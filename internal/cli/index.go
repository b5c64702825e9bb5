package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
)

// indexCommand creates the index command for cataloging manifest trees.
func (c *CLI) indexCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "index <dir>",
		Short: "Build a Markdown catalog of the manifests under a directory",
		Long: `Build a Markdown catalog of the manifests under a directory.

Walks the tree, loads every .json, .yaml, .yml, and .toml file that
parses as a scene manifest, and emits a summary table. Files that fail
to load are listed separately with their error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runIndex(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}

// indexEntry is one catalog row for a successfully loaded manifest.
type indexEntry struct {
	Path     string
	Title    string
	Variant  manifest.Variant
	Tissues  int
	Figures  int
	Warnings int
}

// indexFailure records a candidate file that failed to load.
type indexFailure struct {
	Path string
	Err  error
}

func (c *CLI) runIndex(dir, output string) error {
	prog := newProgress(c.Logger)

	entries, failures, err := c.collectManifests(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 && len(failures) == 0 {
		return errors.New(errors.ErrCodeNotFound, "no manifest files found under %s", dir)
	}

	doc := renderIndex(entries, failures)
	prog.done(fmt.Sprintf("Indexed %d manifests", len(entries)))

	if output == "" {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", output)
	}
	printSuccess("Indexed %d manifests", len(entries))
	if len(failures) > 0 {
		printWarning("%d files failed to load", len(failures))
	}
	printFile(output)
	return nil
}

// collectManifests walks dir and loads every candidate manifest file.
// Hidden directories are skipped. Files whose extension is not a known
// manifest format are ignored silently; files that look like manifests
// but fail to load are returned as failures.
func (c *CLI) collectManifests(dir string) ([]indexEntry, []indexFailure, error) {
	var (
		entries  []indexEntry
		failures []indexFailure
	)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if _, err := manifest.DetectFormat(path); err != nil {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}

		m, err := manifest.LoadFile(path)
		if err != nil {
			c.Logger.Debug("skipping file", "path", rel, "err", err)
			failures = append(failures, indexFailure{Path: rel, Err: err})
			return nil
		}

		entries = append(entries, indexEntry{
			Path:     rel,
			Title:    m.Title,
			Variant:  m.Variant,
			Tissues:  len(m.Tissues),
			Figures:  len(m.Figures),
			Warnings: len(m.Warnings()),
		})
		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to walk %s", dir)
	}
	return entries, failures, nil
}

// renderIndex formats the catalog as a Markdown document.
func renderIndex(entries []indexEntry, failures []indexFailure) string {
	var b strings.Builder

	b.WriteString("# Scene Manifests\n\n")
	if len(entries) > 0 {
		b.WriteString("| Manifest | Title | Variant | Tissues | Figures | Warnings |\n")
		b.WriteString("|---|---|---|---:|---:|---:|\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %d | %d |\n",
				e.Path, e.Title, e.Variant, e.Tissues, e.Figures, e.Warnings)
		}
	} else {
		b.WriteString("No manifests loaded.\n")
	}

	if len(failures) > 0 {
		b.WriteString("\n## Failed to load\n\n")
		for _, f := range failures {
			fmt.Fprintf(&b, "- `%s`: %s\n", f.Path, errors.UserMessage(f.Err))
		}
	}

	return b.String()
}
