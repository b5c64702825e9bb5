package palette

import (
	"math"
	"testing"

	"github.com/segviz/segviz/pkg/errors"
)

func almostEqual(a, b RGBA) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps &&
		math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps &&
		math.Abs(a.A-b.A) < eps
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGBA
		wantErr bool
	}{
		{"six digit", "#6495ed", FromBytes(0x64, 0x95, 0xed, 0xff), false},
		{"six digit no hash", "6495ed", FromBytes(0x64, 0x95, 0xed, 0xff), false},
		{"three digit", "#fff", RGB(1, 1, 1), false},
		{"eight digit", "#ff000080", FromBytes(0xff, 0x00, 0x00, 0x80), false},
		{"four digit", "#f00f", RGB(1, 0, 0), false},
		{"uppercase", "#FF7D40", FromBytes(0xff, 0x7d, 0x40, 0xff), false},

		{"empty", "", RGBA{}, true},
		{"wrong length", "#ff00", RGBA{}, true},
		{"non-hex digits", "#gg0000", RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && !almostEqual(got, tt.want) {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		name  string
		color RGBA
		want  string
	}{
		{"opaque", FromBytes(0x64, 0x95, 0xed, 0xff), "#6495ed"},
		{"translucent", FromBytes(0xff, 0x00, 0x00, 0x80), "#ff000080"},
		{"clamped", RGBA{R: 2, G: -1, B: 0.5, A: 1}, "#ff0080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComponents(t *testing.T) {
	opaque := RGB(0.5, 0.25, 1)
	if got := opaque.Components(); len(got) != 3 {
		t.Errorf("opaque Components() has %d elements, want 3", len(got))
	}

	translucent := RGBA{R: 0.5, G: 0.25, B: 1, A: 0.5}
	if got := translucent.Components(); len(got) != 4 {
		t.Errorf("translucent Components() has %d elements, want 4", len(got))
	}
}

func TestInRange(t *testing.T) {
	if !RGB(0, 0.5, 1).InRange() {
		t.Error("RGB(0, 0.5, 1).InRange() = false, want true")
	}
	if (RGBA{R: 1.2, G: 0, B: 0, A: 1}).InRange() {
		t.Error("out-of-range red accepted")
	}
	if (RGBA{R: 0, G: 0, B: 0, A: -0.1}).InRange() {
		t.Error("negative alpha accepted")
	}
}

func TestDefaultPalette(t *testing.T) {
	p := Default()

	// CSS names and toolkit names both resolve.
	for _, name := range []string{"cornflowerblue", "black", "tomato", "banana", "peacock", "flesh"} {
		if _, ok := p.Lookup(name); !ok {
			t.Errorf("Lookup(%q) not found in default palette", name)
		}
	}

	if p.Len() < 150 {
		t.Errorf("default palette has %d colors, want at least 150", p.Len())
	}
}

func TestLookupNormalization(t *testing.T) {
	p := Default()

	want, ok := p.Lookup("coldgrey")
	if !ok {
		t.Fatal("coldgrey missing from default palette")
	}

	for _, name := range []string{"Cold Grey", "cold_grey", "COLD-GREY"} {
		got, ok := p.Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q) not found", name)
			continue
		}
		if got != want {
			t.Errorf("Lookup(%q) = %+v, want %+v", name, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	p := Default()

	t.Run("hex literal", func(t *testing.T) {
		got, err := p.Parse("#e3cf57")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got != FromBytes(0xe3, 0xcf, 0x57, 0xff) {
			t.Errorf("Parse(#e3cf57) = %+v", got)
		}
	})

	t.Run("named color", func(t *testing.T) {
		got, err := p.Parse("banana")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got != FromBytes(0xe3, 0xcf, 0x57, 0xff) {
			t.Errorf("Parse(banana) = %+v", got)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := p.Parse("notacolor")
		if !errors.Is(err, errors.ErrCodeUnknownColor) {
			t.Errorf("Parse(notacolor) error = %v, want UNKNOWN_COLOR", err)
		}
	})
}

func TestNewCopiesInput(t *testing.T) {
	src := map[string]RGBA{"bone": RGB(1, 1, 0.94)}
	p := New("custom", src)

	src["bone"] = RGB(0, 0, 0)

	got, ok := p.Lookup("bone")
	if !ok {
		t.Fatal("bone missing after New")
	}
	if got != RGB(1, 1, 0.94) {
		t.Errorf("palette entry mutated through source map: %+v", got)
	}
}

func TestSet(t *testing.T) {
	p := New("custom", nil)
	p.Set("L Kidney", RGB(0.5, 0.2, 0.2))

	if _, ok := p.Lookup("l_kidney"); !ok {
		t.Error("Set name not found under normalized key")
	}
}
