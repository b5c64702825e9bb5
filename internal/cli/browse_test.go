package cli

import (
	"testing"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/manifest"
)

func loadTestManifest(t *testing.T, doc string) *manifest.SceneManifest {
	t.Helper()
	m, err := manifest.Load([]byte(doc))
	if err != nil {
		t.Fatalf("loading manifest: %v", err)
	}
	return m
}

func TestFigureTissues(t *testing.T) {
	m := loadTestManifest(t, kneeDoc)

	subset, err := figureTissues(m, "skeletal")
	if err != nil {
		t.Fatalf("figureTissues() error: %v", err)
	}
	if len(subset) != 1 || subset[0].Name != "bone" {
		t.Errorf("figureTissues(skeletal) = %v, want [bone]", subset)
	}

	all, err := figureTissues(m, "")
	if err != nil {
		t.Fatalf("figureTissues() error: %v", err)
	}
	if all != nil {
		t.Errorf("figureTissues(\"\") = %v, want nil for the whole scene", all)
	}
}

func TestFigureTissuesUnknown(t *testing.T) {
	m := loadTestManifest(t, kneeDoc)

	_, err := figureTissues(m, "muscles")
	if err == nil {
		t.Fatal("figureTissues() should fail for an unknown figure")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFigure) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFigure)
	}
}

func TestTissueFigures(t *testing.T) {
	m := loadTestManifest(t, kneeDoc)

	if got := tissueFigures(m, "bone"); got != "skeletal" {
		t.Errorf("tissueFigures(bone) = %q, want %q", got, "skeletal")
	}
	if got := tissueFigures(m, "skin"); got != "" {
		t.Errorf("tissueFigures(skin) = %q, want empty", got)
	}
}
