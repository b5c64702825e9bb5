package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/segviz/segviz/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defers to pipeline default", "", nil},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"pdf only", "pdf", []string{"pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Errorf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
				return
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid pdf", []string{"pdf"}, false},
		{"valid png", []string{"png"}, false},
		{"valid json", []string{"json"}, false},
		{"valid multiple", []string{"svg", "pdf", "png"}, false},
		{"valid all", []string{"svg", "pdf", "png", "json"}, false},
		{"invalid format", []string{"invalid"}, true},
		{"mixed valid invalid", []string{"svg", "invalid"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestValidFormatsMap(t *testing.T) {
	expected := map[string]bool{
		"svg":  true,
		"pdf":  true,
		"png":  true,
		"json": true,
	}

	for k, v := range expected {
		if pipeline.ValidFormats[k] != v {
			t.Errorf("ValidFormats[%q] = %v, want %v", k, pipeline.ValidFormats[k], v)
		}
	}

	if pipeline.ValidFormats["invalid"] {
		t.Error("ValidFormats[invalid] should be false")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "scenes/frog.json", "scenes/frog"},
		{"remote input drops the directory", "", "https://example.com/scenes/frog.json", "frog"},
		{"explicit base kept", "out/frog", "frog.json", "out/frog"},
		{"format extension stripped", "frog.svg", "frog.json", "frog"},
		{"unknown extension kept", "frog.v2", "frog.json", "frog.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	t.Run("single format with explicit output", func(t *testing.T) {
		out := filepath.Join(dir, "legend.svg")
		err := writeArtifacts(artifactWriteParams{
			artifacts: artifacts,
			formats:   []string{"svg"},
			input:     "frog.json",
			output:    out,
		})
		if err != nil {
			t.Fatalf("writeArtifacts() error: %v", err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if string(data) != "<svg/>" {
			t.Errorf("output = %q, want %q", data, "<svg/>")
		}
	})

	t.Run("multiple formats append extensions", func(t *testing.T) {
		base := filepath.Join(dir, "frog")
		err := writeArtifacts(artifactWriteParams{
			artifacts: artifacts,
			formats:   []string{"svg", "json"},
			input:     "frog.json",
			output:    base,
		})
		if err != nil {
			t.Fatalf("writeArtifacts() error: %v", err)
		}
		for _, format := range []string{"svg", "json"} {
			if _, err := os.Stat(base + "." + format); err != nil {
				t.Errorf("expected %s output: %v", format, err)
			}
		}
	})
}

func TestDefaultConstants(t *testing.T) {
	if pipeline.DefaultScale != 2.0 {
		t.Errorf("pipeline.DefaultScale = %v, want 2.0", pipeline.DefaultScale)
	}
	if pipeline.DefaultArtifact != pipeline.ArtifactLegend {
		t.Errorf("pipeline.DefaultArtifact = %q, want %q", pipeline.DefaultArtifact, pipeline.ArtifactLegend)
	}
}
