package colormap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/palette"
)

func TestParseJSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "cool_warm.json"))
	if err != nil {
		t.Fatal(err)
	}
	cm, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}

	if cm.Name != "Cool to Warm" {
		t.Errorf("Name = %q", cm.Name)
	}
	if cm.Creator != "Kenneth Moreland" {
		t.Errorf("Creator = %q", cm.Creator)
	}
	if cm.Space != SpaceDiverging {
		t.Errorf("Space = %q, want diverging", cm.Space)
	}
	if cm.Scale != ScaleLinear {
		t.Errorf("Scale = %q, want linear", cm.Scale)
	}
	if cm.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cm.Len())
	}
	if cm.HasOpacity {
		t.Error("HasOpacity = true, want false for ParaView JSON")
	}

	mid := cm.Points[1]
	if mid.X != 0.5 || mid.Color != palette.RGB(0.865, 0.865, 0.865) {
		t.Errorf("Points[1] = %+v", mid)
	}
	if cm.NaN == nil || *cm.NaN != palette.RGB(1, 1, 0) {
		t.Errorf("NaN = %v, want yellow", cm.NaN)
	}
	if cm.Above != nil || cm.Below != nil {
		t.Error("Above/Below should be unset for ParaView JSON")
	}
}

func TestParseJSONTrailingRun(t *testing.T) {
	doc := `[{"Name": "partial", "RGBPoints": [0, 0, 0, 0, 1, 1, 1, 1, 0.5, 0.5]}]`
	cm, err := ParseJSON([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if cm.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (partial run dropped)", cm.Len())
	}
}

func TestParseJSONUnknownColorSpace(t *testing.T) {
	doc := `[{"ColorSpace": "Sepia", "RGBPoints": [0, 0, 0, 0, 1, 1, 1, 1]}]`
	cm, err := ParseJSON([]byte(doc))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if cm.Space != SpaceRGB {
		t.Errorf("Space = %q, want rgb fallback", cm.Space)
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantCode errors.Code
	}{
		{"syntax", `{not json`, errors.ErrCodeMalformedDocument},
		{"not an array", `{"Name": "x"}`, errors.ErrCodeMalformedDocument},
		{"empty array", `[]`, errors.ErrCodeMalformedDocument},
		{"no points", `[{"Name": "x"}]`, errors.ErrCodeInvalidInput},
		{"points not a list", `[{"RGBPoints": "zzz"}]`, errors.ErrCodeMalformedDocument},
		{"points not numbers", `[{"RGBPoints": [0, "a", 0, 0]}]`, errors.ErrCodeMalformedDocument},
		{"duplicate position", `[{"RGBPoints": [0, 0, 0, 0, 0, 1, 1, 1]}]`, errors.ErrCodeInvalidInput},
		{"color out of range", `[{"RGBPoints": [0, 2, 0, 0, 1, 1, 1, 1]}]`, errors.ErrCodeValueOutOfRange},
		{"short nan color", `[{"NanColor": [1], "RGBPoints": [0, 0, 0, 0, 1, 1, 1, 1]}]`, errors.ErrCodeMalformedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.doc))
			if err == nil {
				t.Fatal("ParseJSON() succeeded, want error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}
