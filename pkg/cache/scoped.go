package cache

// ScopedKeyer wraps a Keyer with a prefix so callers sharing a backend
// stay isolated. The server uses one scope per uploaded scene:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "scene:"+id+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key. A
// nil inner keyer defaults to the standard one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ManifestKey generates a prefixed key for loaded manifest caching.
func (k *ScopedKeyer) ManifestKey(docHash string, opts ManifestKeyOpts) string {
	return k.prefix + k.inner.ManifestKey(docHash, opts)
}

// AssemblyKey generates a prefixed key for assembly caching.
func (k *ScopedKeyer) AssemblyKey(manifestHash string, opts AssemblyKeyOpts) string {
	return k.prefix + k.inner.AssemblyKey(manifestHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(assemblyHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(assemblyHash, opts)
}
