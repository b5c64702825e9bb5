// Package cache provides byte-level caching for pipeline stages.
//
// Three backends cover the deployment modes: FileCache for CLI runs that
// should survive between invocations, RedisCache for multi-instance
// server deployments, and NullCache to disable caching entirely.
//
// Keys are built by a Keyer, one method per pipeline stage, so that a
// change in any input that affects a stage's output lands in a different
// key. ScopedKeyer prefixes all keys for tenant isolation in server mode.
package cache

import (
	"context"
	"time"
)

// Stage TTLs. Every key embeds a content hash of its inputs, so entries
// never go stale; the TTLs only bound how long unused entries sit on
// disk. Artifacts keep the longest since rendering is the stage that
// shells out to external tools.
const (
	TTLManifest = 24 * time.Hour
	TTLAssembly = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values with per-entry expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and fresh; expired or absent entries are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ManifestKeyOpts captures the load inputs beyond the document bytes.
type ManifestKeyOpts struct {
	Format  string
	Palette string
}

// AssemblyKeyOpts captures the assembly options.
type AssemblyKeyOpts struct {
	Figure         string
	DefaultColor   string
	DefaultOpacity float64
}

// ArtifactKeyOpts captures the render target.
type ArtifactKeyOpts struct {
	Kind     string // legend, figures, plan
	Format   string // svg, png, pdf, json
	Title    string
	Detailed bool
	Scale    float64
	Width    float64
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// ManifestKey keys a loaded manifest by document hash and load options.
	ManifestKey(docHash string, opts ManifestKeyOpts) string

	// AssemblyKey keys an assembly by manifest hash and assembly options.
	AssemblyKey(manifestHash string, opts AssemblyKeyOpts) string

	// ArtifactKey keys a rendered artifact by assembly hash and target.
	ArtifactKey(assemblyHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes stage inputs into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ManifestKey generates a key for loaded manifest caching.
func (k *DefaultKeyer) ManifestKey(docHash string, opts ManifestKeyOpts) string {
	return hashKey("manifest", docHash, opts)
}

// AssemblyKey generates a key for assembly caching.
func (k *DefaultKeyer) AssemblyKey(manifestHash string, opts AssemblyKeyOpts) string {
	return hashKey("assembly", manifestHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(assemblyHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", assemblyHash, opts)
}
