package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "key", []byte("legend svg bytes"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "legend svg bytes" {
		t.Errorf("Get = %q, %v", data, hit)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}

	// Deleting again is fine.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("stale"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("expired entry: hit=%v err=%v", hit, err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	hash := Hash([]byte("key"))
	path := filepath.Join(dir, hash[:2], hash[2:]+".json")
	if err := os.WriteFile(path, []byte("{garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("corrupt entry: hit=%v err=%v", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should have been removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte(key), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, key); hit {
			t.Errorf("Get(%s) hit after Clear", key)
		}
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("cache dir should survive Clear: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("frog.json"))
	h2 := Hash([]byte("frog.json"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("brain.toml")); h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	mk1 := k.ManifestKey("hash123", ManifestKeyOpts{Format: "json"})
	mk2 := k.ManifestKey("hash123", ManifestKeyOpts{Format: "yaml"})
	if mk1 == mk2 {
		t.Error("different formats should produce different manifest keys")
	}
	if !strings.HasPrefix(mk1, "manifest:") {
		t.Errorf("ManifestKey prefix unexpected: %s", mk1)
	}

	ak1 := k.AssemblyKey("hash123", AssemblyKeyOpts{Figure: "exterior"})
	ak2 := k.AssemblyKey("hash123", AssemblyKeyOpts{Figure: "viscera"})
	if ak1 == ak2 {
		t.Error("different figures should produce different assembly keys")
	}

	rk1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Kind: "legend", Format: "svg"})
	rk2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Kind: "legend", Format: "png"})
	if rk1 == rk2 {
		t.Error("different formats should produce different artifact keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "scene:abc:")

	key := scoped.ManifestKey("hash123", ManifestKeyOpts{Format: "json"})
	if !strings.HasPrefix(key, "scene:abc:manifest:") {
		t.Errorf("ScopedKeyer key should be prefixed: %s", key)
	}

	inner := NewDefaultKeyer().ManifestKey("hash123", ManifestKeyOpts{Format: "json"})
	if key != "scene:abc:"+inner {
		t.Errorf("scoped key should wrap the inner key: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ArtifactKey("h", ArtifactKeyOpts{Kind: "plan", Format: "json"})
	if !strings.HasPrefix(key, "prefix:artifact:") {
		t.Errorf("nil inner should fall back to the default keyer: %s", key)
	}
}
