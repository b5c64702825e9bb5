package pipeline

import (
	"context"
	"os"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/httputil"
	"github.com/segviz/segviz/pkg/manifest"
)

// Load resolves a manifest document and parses it into a SceneManifest.
//
// The document comes from opts.Document when set, otherwise from
// opts.Source, which may be a local file path or an http(s) URL. Remote
// sources are fetched with retry through pkg/httputil.
func Load(ctx context.Context, opts Options) (*manifest.SceneManifest, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	data, err := resolveDocument(ctx, opts)
	if err != nil {
		return nil, err
	}
	return loadDocument(data, opts)
}

// resolveDocument returns the raw manifest bytes for the configured source.
func resolveDocument(ctx context.Context, opts Options) ([]byte, error) {
	switch {
	case opts.Document != "":
		return []byte(opts.Document), nil
	case httputil.IsRemote(opts.Source):
		return httputil.Fetch(ctx, opts.Source)
	default:
		data, err := os.ReadFile(opts.Source)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read manifest %s", opts.Source)
		}
		return data, nil
	}
}

// loadDocument parses resolved document bytes with the configured format
// and palette.
func loadDocument(data []byte, opts Options) (*manifest.SceneManifest, error) {
	loadOpts := []manifest.Option{manifest.WithFormat(opts.resolveFormat())}
	if opts.Palette != nil {
		loadOpts = append(loadOpts, manifest.WithPalette(opts.Palette))
	}
	return manifest.Load(data, loadOpts...)
}
