package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/segviz/segviz/pkg/cache"
	"github.com/segviz/segviz/pkg/errors"
)

const runnerDoc = `{
	"title": "Frog",
	"files": ["frog.mhd"],
	"tissues": {
		"names": ["skin", "skeleton"],
		"indices": {"skin": 1, "skeleton": 2},
		"colors": {"skin": [1, 0.8, 0.7], "skeleton": [1, 1, 0.9]},
		"opacity": {"skin": 0.4}
	},
	"figures": {"bones": ["skeleton"]},
	"tissue_parameters": {
		"parameter_types": {"density": "float"},
		"default": {"density": 1.0},
		"skeleton": {"density": 1.9}
	}
}`

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(fc, nil, discardLogger())
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil {
		t.Error("nil cache should default to NullCache")
	}
	if r.Keyer == nil {
		t.Error("nil keyer should default to DefaultKeyer")
	}
	if r.Logger == nil {
		t.Error("nil logger should default")
	}
}

func TestRunnerExecutePlan(t *testing.T) {
	r := newTestRunner(t)
	result, err := r.Execute(context.Background(), Options{
		Document: runnerDoc,
		Artifact: ArtifactPlan,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Manifest == nil || result.Manifest.Title != "Frog" {
		t.Errorf("manifest title = %v, want Frog", result.Manifest)
	}
	if result.Stats.TissueCount != 2 {
		t.Errorf("tissue count = %d, want 2", result.Stats.TissueCount)
	}
	if result.Stats.PropCount != 2 {
		t.Errorf("prop count = %d, want 2", result.Stats.PropCount)
	}
	if result.ManifestHash == "" || result.AssemblyHash == "" {
		t.Error("content hashes should be set")
	}

	data, ok := result.Artifacts[FormatJSON]
	if !ok {
		t.Fatalf("missing json artifact, have %v", len(result.Artifacts))
	}
	for _, want := range []string{`"skin"`, `"skeleton"`, `"density"`, `"bones"`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("plan output missing %s", want)
		}
	}

	if result.CacheInfo.LoadHit || result.CacheInfo.AssembleHit || result.CacheInfo.RenderHit {
		t.Errorf("first run should miss everywhere, got %+v", result.CacheInfo)
	}
}

func TestRunnerExecuteLegendSVG(t *testing.T) {
	r := newTestRunner(t)
	result, err := r.Execute(context.Background(), Options{Document: runnerDoc})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok {
		t.Fatal("default execute should produce an svg legend")
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("skin")) {
		t.Error("legend svg missing expected content")
	}
}

func TestRunnerExecuteFigureRestricted(t *testing.T) {
	r := newTestRunner(t)
	result, err := r.Execute(context.Background(), Options{
		Document: runnerDoc,
		Figure:   "bones",
		Artifact: ArtifactPlan,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.PropCount != 1 {
		t.Errorf("bones figure should assemble 1 prop, got %d", result.Stats.PropCount)
	}
	if result.Assembly.Figure != "bones" {
		t.Errorf("assembly figure = %q, want bones", result.Assembly.Figure)
	}
}

func TestRunnerExecuteCacheHits(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Document: runnerDoc, Artifact: ArtifactPlan}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}

	if !second.CacheInfo.AssembleHit {
		t.Error("second run should hit the assembly cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	// Inline documents skip the fetch cache entirely
	if second.CacheInfo.LoadHit {
		t.Error("inline documents should never report a load hit")
	}

	if !bytes.Equal(first.Artifacts[FormatJSON], second.Artifacts[FormatJSON]) {
		t.Error("cached artifact should be byte-identical")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())

	if _, err := r.Execute(context.Background(), Options{}); err == nil {
		t.Error("missing source should fail")
	}

	_, err := r.Execute(context.Background(), Options{Document: runnerDoc, Artifact: "poster"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad artifact should fail with INVALID_INPUT, got %v", err)
	}
}

func TestRunnerAssembleCache(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Document: runnerDoc}
	m, err := r.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	a1, hit, err := r.AssembleWithCacheInfo(context.Background(), m, opts)
	if err != nil {
		t.Fatalf("AssembleWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first assemble should miss")
	}

	a2, hit, err := r.AssembleWithCacheInfo(context.Background(), m, opts)
	if err != nil {
		t.Fatalf("second AssembleWithCacheInfo() error: %v", err)
	}
	if !hit {
		t.Error("second assemble should hit")
	}
	if !reflect.DeepEqual(a1, a2) {
		t.Error("cached assembly should round-trip identically")
	}
}

func TestRunnerRenderPlanRejectsSVG(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{Document: runnerDoc}
	m, err := r.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	a, err := Assemble(m, opts)
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	opts.Artifact = ArtifactPlan
	opts.Formats = []string{FormatSVG}
	_, _, err = r.RenderWithCacheInfo(context.Background(), m, a, opts)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("plan svg should fail with UNSUPPORTED, got %v", err)
	}
}

func TestRunnerLoadRemoteCaching(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		fmt.Fprint(w, runnerDoc)
	}))
	defer srv.Close()

	r := newTestRunner(t)
	opts := Options{Source: srv.URL}

	m, hit, err := r.LoadWithCacheInfo(context.Background(), opts)
	if err != nil {
		t.Fatalf("LoadWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first remote load should miss")
	}
	if m.Title != "Frog" {
		t.Errorf("title = %q, want Frog", m.Title)
	}

	if _, hit, err = r.LoadWithCacheInfo(context.Background(), opts); err != nil {
		t.Fatalf("second LoadWithCacheInfo() error: %v", err)
	} else if !hit {
		t.Error("second remote load should hit")
	}
	if fetches != 1 {
		t.Errorf("fetches = %d, want 1", fetches)
	}

	opts.Refresh = true
	if _, hit, err = r.LoadWithCacheInfo(context.Background(), opts); err != nil {
		t.Fatalf("refresh LoadWithCacheInfo() error: %v", err)
	} else if hit {
		t.Error("refresh should bypass the cache")
	}
	if fetches != 2 {
		t.Errorf("fetches after refresh = %d, want 2", fetches)
	}
}

func TestRunnerLoadFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frog.json")
	if err := os.WriteFile(path, []byte(runnerDoc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := NewRunner(nil, nil, discardLogger())
	m, hit, err := r.LoadWithCacheInfo(context.Background(), Options{Source: path})
	if err != nil {
		t.Fatalf("LoadWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("local files should not report cache hits")
	}
	if m.Title != "Frog" {
		t.Errorf("title = %q, want Frog", m.Title)
	}

	_, _, err = r.LoadWithCacheInfo(context.Background(), Options{Source: filepath.Join(dir, "missing.json")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file should fail with FILE_NOT_FOUND, got %v", err)
	}
}
