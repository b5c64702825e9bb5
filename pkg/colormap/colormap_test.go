package colormap

import (
	"math"
	"testing"

	"github.com/segviz/segviz/pkg/errors"
	"github.com/segviz/segviz/pkg/palette"
)

func twoPoints() []Point {
	return []Point{
		{X: 0, Color: palette.RGB(0, 0, 0)},
		{X: 1, Color: palette.RGB(1, 1, 1)},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cm := &ColorMap{Points: twoPoints()}
	if err := cm.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if cm.Space != SpaceRGB {
		t.Errorf("Space = %q, want rgb default", cm.Space)
	}
	if cm.Scale != ScaleLinear {
		t.Errorf("Scale = %q, want linear default", cm.Scale)
	}
}

func TestNormalizeSorts(t *testing.T) {
	cm := &ColorMap{Points: []Point{
		{X: 1, Color: palette.RGB(1, 1, 1)},
		{X: 0, Color: palette.RGB(0, 0, 0)},
		{X: 0.5, Color: palette.RGB(0.5, 0.5, 0.5)},
	}}
	if err := cm.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	for i, want := range []float64{0, 0.5, 1} {
		if cm.Points[i].X != want {
			t.Errorf("Points[%d].X = %v, want %v", i, cm.Points[i].X, want)
		}
	}
	lo, hi := cm.Domain()
	if lo != 0 || hi != 1 {
		t.Errorf("Domain() = %v, %v, want 0, 1", lo, hi)
	}
}

func TestNormalizeErrors(t *testing.T) {
	nan := palette.RGBA{R: 2, G: 0, B: 0, A: 1}
	tests := []struct {
		name     string
		cm       *ColorMap
		wantCode errors.Code
	}{
		{
			name:     "too few points",
			cm:       &ColorMap{Points: []Point{{X: 0, Color: palette.RGB(0, 0, 0)}}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name: "duplicate position",
			cm: &ColorMap{Points: []Point{
				{X: 0.5, Color: palette.RGB(0, 0, 0)},
				{X: 0.5, Color: palette.RGB(1, 1, 1)},
			}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name: "non-finite position",
			cm: &ColorMap{Points: []Point{
				{X: math.NaN(), Color: palette.RGB(0, 0, 0)},
				{X: 1, Color: palette.RGB(1, 1, 1)},
			}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown space",
			cm:       &ColorMap{Space: "sepia", Points: twoPoints()},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown scale",
			cm:       &ColorMap{Scale: "log2", Points: twoPoints()},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "log10 with zero position",
			cm:       &ColorMap{Scale: ScaleLog10, Points: twoPoints()},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name: "color out of range",
			cm: &ColorMap{Points: []Point{
				{X: 0, Color: palette.RGB(0, 0, 0)},
				{X: 1, Color: palette.RGB(1.5, 0, 0)},
			}},
			wantCode: errors.ErrCodeValueOutOfRange,
		},
		{
			name: "opacity out of range",
			cm: &ColorMap{HasOpacity: true, Points: []Point{
				{X: 0, Color: palette.RGB(0, 0, 0), Opacity: 1},
				{X: 1, Color: palette.RGB(1, 1, 1), Opacity: 1.5},
			}},
			wantCode: errors.ErrCodeValueOutOfRange,
		},
		{
			name:     "edge color out of range",
			cm:       &ColorMap{Points: twoPoints(), NaN: &nan},
			wantCode: errors.ErrCodeValueOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cm.Normalize()
			if err == nil {
				t.Fatal("Normalize() succeeded, want error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestParseSpace(t *testing.T) {
	tests := []struct {
		in     string
		want   Space
		wantOK bool
	}{
		{"rgb", SpaceRGB, true},
		{"RGB", SpaceRGB, true},
		{"CIELAB", SpaceLab, true},
		{"Lab", SpaceLab, true},
		{"Lab CIEDE2000", SpaceCIEDE2000, true},
		{"diverging", SpaceDiverging, true},
		{"HSV", SpaceHSV, true},
		{"step", SpaceStep, true},
		{"sepia", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSpace(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSpace(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseScale(t *testing.T) {
	if got := ParseScale("Log10"); got != ScaleLog10 {
		t.Errorf("ParseScale(Log10) = %q", got)
	}
	if got := ParseScale("anything"); got != ScaleLinear {
		t.Errorf("ParseScale(anything) = %q, want linear", got)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"cool_warm.json", FormatJSON, false},
		{"maps/Fast.XML", FormatXML, false},
		{"notes.txt", "", true},
		{"bare", "", true},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("DetectFormat(%q) succeeded, want error", tt.path)
			} else if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("DetectFormat(%q) code = %v", tt.path, errors.GetCode(err))
			}
			continue
		}
		if err != nil {
			t.Errorf("DetectFormat(%q) error = %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile("testdata/absent.json"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ParseFile(absent) code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
