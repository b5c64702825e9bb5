// Package cli implements the segviz command-line interface.
//
// This package provides commands for validating and inspecting scene
// manifests, rendering preview artifacts (legends, figure maps, render
// plans), browsing tissues interactively, converting colormaps, and
// serving the HTTP API. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - validate: Check one or more manifests and report structured errors
//   - inspect: Show a tissue table for a manifest
//   - resolve: Print resolved per-tissue parameter tables as JSON
//   - render: Generate legend, figure map, or plan artifacts
//   - figures: List figure groups and their member tissues
//   - browse: Interactive tissue browser
//   - colormap: Convert colormaps and render swatch strips
//   - index: Summarize a directory of manifests as Markdown
//   - serve: Run the HTTP API
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Manifest
// sources may be local paths or http(s) URLs; remote documents are
// fetched with retry.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/segviz/segviz/pkg/buildinfo"
	"github.com/segviz/segviz/pkg/cache"
	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "segviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "segviz",
		Short:        "Segviz loads and previews segmentation scene manifests",
		Long:         `Segviz is a CLI tool for working with segmentation scene manifests: validating documents, resolving tissue styling and parameters, and rendering quick-look artifacts for the scenes a volume pipeline will build.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.figuresCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.colormapCommand())
	root.AddCommand(c.indexCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// loadSource runs the load stage for a source argument without any
// caching, for the read-only commands that always want the document as
// it is right now.
func (c *CLI) loadSource(ctx context.Context, source, format string) (*manifest.SceneManifest, error) {
	return pipeline.Load(ctx, pipeline.Options{
		Source: source,
		Format: format,
		Logger: c.Logger,
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/segviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// Empty input returns nil so the pipeline picks the artifact's default.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
