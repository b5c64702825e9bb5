package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/segviz/segviz/pkg/cache"
	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/httputil"
	"github.com/segviz/segviz/pkg/manifest"
	"github.com/segviz/segviz/pkg/observability"
	"github.com/segviz/segviz/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → assemble → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	obs := observability.Pipeline()

	// Stage 1: Load
	loadStart := time.Now()
	obs.OnLoadStart(ctx, opts.Source)
	m, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		obs.OnLoadComplete(ctx, opts.Source, 0, time.Since(loadStart), err)
		return nil, wrapStage(err, "load")
	}
	result.Manifest = m
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.TissueCount = len(m.Tissues)
	result.CacheInfo.LoadHit = loadHit
	obs.OnLoadComplete(ctx, opts.Source, len(m.Tissues), result.Stats.LoadTime, nil)

	// Compute manifest hash for cache keys and API responses
	if data, err := manifest.EncodeJSON(m); err == nil {
		result.ManifestHash = cache.Hash(data)
	}

	r.Logger.Info("loaded manifest",
		"title", m.Title,
		"tissues", len(m.Tissues),
		"duration", result.Stats.LoadTime)

	// Stage 2: Assemble
	assembleStart := time.Now()
	obs.OnAssembleStart(ctx, opts.Figure, len(m.Tissues))
	a, assembleHit, err := r.AssembleWithCacheInfo(ctx, m, opts)
	if err != nil {
		obs.OnAssembleComplete(ctx, opts.Figure, time.Since(assembleStart), err)
		return nil, wrapStage(err, "assemble")
	}
	result.Assembly = a
	result.Stats.AssembleTime = time.Since(assembleStart)
	result.Stats.PropCount = len(a.Props)
	result.CacheInfo.AssembleHit = assembleHit
	obs.OnAssembleComplete(ctx, opts.Figure, result.Stats.AssembleTime, nil)

	if data, err := scene.MarshalAssembly(a); err == nil {
		result.AssemblyHash = cache.Hash(data)
	}

	r.Logger.Info("assembled scene",
		"props", len(a.Props),
		"files", len(a.Files),
		"duration", result.Stats.AssembleTime)

	// Stage 3: Render
	renderStart := time.Now()
	obs.OnRenderStart(ctx, opts.Artifact, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, a, opts)
	if err != nil {
		obs.OnRenderComplete(ctx, opts.Artifact, opts.Formats, time.Since(renderStart), err)
		return nil, wrapStage(err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	obs.OnRenderComplete(ctx, opts.Artifact, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered artifacts",
		"kind", opts.Artifact,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads a manifest with caching and returns cache hit info.
//
// Only remote fetches go through the cache: the loader itself is a pure
// in-memory transform, so for local and inline documents a cache round trip
// costs more than the parse it would skip. The cache stores the raw fetched
// bytes rather than the parsed form so load warnings stay identical between
// hits and misses.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*manifest.SceneManifest, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if !httputil.IsRemote(opts.Source) {
		m, err := Load(ctx, opts)
		return m, false, err
	}

	cacheKey := r.Keyer.ManifestKey(cache.Hash([]byte(opts.Source)), opts.ManifestKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			m, err := loadDocument(data, opts)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "manifest")
				return m, true, nil // Cache hit
			}
			// Stale or unloadable entries fall through to refetch
		}
	}
	observability.Cache().OnCacheMiss(ctx, "manifest")

	data, err := httputil.Fetch(ctx, opts.Source)
	if err != nil {
		return nil, false, err
	}
	m, err := loadDocument(data, opts)
	if err != nil {
		return nil, false, err
	}

	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLManifest)
	observability.Cache().OnCacheSet(ctx, "manifest", len(data))

	return m, false, nil // Cache miss
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*manifest.SceneManifest, error) {
	m, _, err := r.LoadWithCacheInfo(ctx, opts)
	return m, err
}

// AssembleWithCacheInfo assembles a scene with caching and returns cache hit info.
func (r *Runner) AssembleWithCacheInfo(ctx context.Context, m *manifest.SceneManifest, opts Options) (*scene.Assembly, bool, error) {
	r.applyLogger(&opts)

	// Compute cache key from the canonical manifest encoding
	manifestData, err := manifest.EncodeJSON(m)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize manifest for cache key")
	}
	cacheKey := r.Keyer.AssemblyKey(cache.Hash(manifestData), opts.AssemblyKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := scene.UnmarshalAssembly(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "assembly")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "assembly")

	// Assemble
	a, err := Assemble(m, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := scene.MarshalAssembly(a); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLAssembly)
		observability.Cache().OnCacheSet(ctx, "assembly", len(data))
	}

	return a, false, nil // Cache miss
}

// Assemble is a convenience wrapper that calls AssembleWithCacheInfo and discards the cache hit info.
func (r *Runner) Assemble(ctx context.Context, m *manifest.SceneManifest, opts Options) (*scene.Assembly, error) {
	a, _, err := r.AssembleWithCacheInfo(ctx, m, opts)
	return a, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m *manifest.SceneManifest, a *scene.Assembly, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Artifact keys hash the manifest alongside the assembly: the plan and
	// figure map draw on figure definitions and load warnings that only
	// the manifest carries.
	manifestData, err := manifest.EncodeJSON(m)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize manifest for cache key")
	}
	assemblyData, err := scene.MarshalAssembly(a)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize assembly for cache key")
	}
	renderHash := cache.Hash(append(manifestData, assemblyData...))

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(renderHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := Render(m, a, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(renderHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, m *manifest.SceneManifest, a *scene.Assembly, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, a, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// wrapStage prefixes an error with its pipeline stage, keeping the
// original error code for status mapping.
func wrapStage(err error, stage string) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, "%s", stage)
}
