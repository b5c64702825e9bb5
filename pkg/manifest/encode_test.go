package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format Format
	}{
		{"volume json", "frog.json", FormatJSON},
		{"surface yaml", "surfaces.yaml", FormatYAML},
		{"volume toml", "brain.toml", FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("read fixture: %v", err)
			}

			first, err := Load(data, WithFormat(tt.format))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			encoded, err := Encode(first, tt.format)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			second, err := Load(encoded, WithFormat(tt.format))
			if err != nil {
				t.Fatalf("reload error = %v\nencoded:\n%s", err, encoded)
			}

			if !Equal(first, second) {
				t.Errorf("round trip changed the manifest\nencoded:\n%s", encoded)
			}
		})
	}
}

func TestRoundTripAcrossFormats(t *testing.T) {
	first, err := LoadFile(filepath.Join("testdata", "frog.json"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			encoded, err := Encode(first, format)
			if err != nil {
				t.Fatalf("Encode(%s) error = %v", format, err)
			}
			second, err := Load(encoded, WithFormat(format))
			if err != nil {
				t.Fatalf("reload error = %v\nencoded:\n%s", err, encoded)
			}
			if !Equal(first, second) {
				t.Errorf("cross-format round trip changed the manifest")
			}
		})
	}
}

func TestRoundTripMinimal(t *testing.T) {
	first, err := Load([]byte(minimalDoc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	encoded, err := EncodeJSON(first)
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	second, err := Load(encoded)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if !Equal(first, second) {
		t.Error("round trip changed the manifest")
	}
}

func TestEncodeCanonical(t *testing.T) {
	doc := `{
		"title": "t", "files": [],
		"tissues": {"names": ["skin"], "colors": {"skin": "flesh"}},
		"tissue_parameters": {
			"parameter_types": {"density": "double"},
			"default": {"density": 1.0}
		}
	}`

	m, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	encoded, err := EncodeJSON(m)
	if err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}

	out := string(encoded)
	if strings.Contains(out, "flesh") {
		t.Error("encoded output still names the color; want numeric components")
	}
	if strings.Contains(out, "double") {
		t.Error("encoded output keeps the type alias; want canonical name")
	}
	if !strings.Contains(out, `"float"`) {
		t.Error("encoded output missing canonical type name float")
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	m, err := Load([]byte(minimalDoc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := Encode(m, Format("ini")); err == nil {
		t.Error("Encode(ini) succeeded, want error")
	}
}
