package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/segviz/segviz/pkg/manifest"
)

// DefaultTTL is how long an uploaded scene stays retrievable.
const DefaultTTL = 24 * time.Hour

// Scene is a stored manifest: the uploaded document, its parsed form,
// and expiry bookkeeping. The manifest is parsed once at upload and
// shared read-only between requests.
type Scene struct {
	ID        string
	Document  []byte
	Format    string
	Manifest  *manifest.SceneManifest
	Hash      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewScene builds a scene record with a fresh ID and expiry stamp.
// A non-positive ttl means DefaultTTL.
func NewScene(doc []byte, format string, m *manifest.SceneManifest, hash string, ttl time.Duration) *Scene {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Scene{
		ID:        uuid.NewString(),
		Document:  append([]byte(nil), doc...),
		Format:    format,
		Manifest:  m,
		Hash:      hash,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the scene has passed its TTL.
func (s *Scene) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the interface for scene storage backends.
type Store interface {
	// Get retrieves a scene by ID.
	// Returns nil, nil if the scene doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Scene, error)

	// Set stores a scene.
	Set(ctx context.Context, sc *Scene) error

	// Delete removes a scene.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired scenes.
	Cleanup(ctx context.Context) error
}

// MemoryStore is an in-memory scene store for single-instance
// deployments. Expired scenes are dropped lazily on Get and in bulk
// by Cleanup.
type MemoryStore struct {
	mu     sync.RWMutex
	scenes map[string]*Scene
}

// NewMemoryStore creates an empty in-memory scene store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scenes: make(map[string]*Scene)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Scene, error) {
	s.mu.RLock()
	sc, ok := s.scenes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if sc.IsExpired() {
		s.mu.Lock()
		delete(s.scenes, id)
		s.mu.Unlock()
		return nil, nil
	}
	return sc, nil
}

func (s *MemoryStore) Set(ctx context.Context, sc *Scene) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenes[sc.ID] = sc
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scenes, id)
	return nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, sc := range s.scenes {
		if now.After(sc.ExpiresAt) {
			delete(s.scenes, id)
		}
	}
	return nil
}

// Len returns the number of stored scenes, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenes)
}

var _ Store = (*MemoryStore)(nil)
