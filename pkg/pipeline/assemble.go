package pipeline

import (
	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/scene"
)

// Assemble flattens a loaded manifest into a scene assembly using the
// pipeline's assemble options.
func Assemble(m *manifest.SceneManifest, opts Options) (*scene.Assembly, error) {
	var sceneOpts []scene.Option
	if opts.Figure != "" {
		sceneOpts = append(sceneOpts, scene.WithFigure(opts.Figure))
	}
	if opts.DefaultColor != "" {
		c, err := opts.paletteOrDefault().Parse(opts.DefaultColor)
		if err != nil {
			return nil, err
		}
		sceneOpts = append(sceneOpts, scene.WithDefaultColor(c))
	}
	if opts.DefaultOpacity != nil {
		sceneOpts = append(sceneOpts, scene.WithDefaultOpacity(*opts.DefaultOpacity))
	}
	return scene.Assemble(m, sceneOpts...)
}
