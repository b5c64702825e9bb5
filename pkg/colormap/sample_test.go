package colormap

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/segviz/segviz/pkg/palette"
)

func mustRead(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func almostEqualColor(a, b palette.RGBA) bool {
	return almostEqual(a.R, b.R) && almostEqual(a.G, b.G) && almostEqual(a.B, b.B) && almostEqual(a.A, b.A)
}

func greyscale(space Space) *ColorMap {
	cm := &ColorMap{Space: space, Points: twoPoints()}
	if err := cm.Normalize(); err != nil {
		panic(err)
	}
	return cm
}

func TestSampleRGB(t *testing.T) {
	cm := greyscale(SpaceRGB)
	if got := cm.Sample(0.5); !almostEqualColor(got, palette.RGB(0.5, 0.5, 0.5)) {
		t.Errorf("Sample(0.5) = %v, want mid grey", got)
	}
	if got := cm.Sample(0); !almostEqualColor(got, palette.RGB(0, 0, 0)) {
		t.Errorf("Sample(0) = %v, want black", got)
	}
	if got := cm.Sample(1); !almostEqualColor(got, palette.RGB(1, 1, 1)) {
		t.Errorf("Sample(1) = %v, want white", got)
	}
}

func TestSampleHSV(t *testing.T) {
	cm := &ColorMap{Space: SpaceHSV, Points: []Point{
		{X: 0, Color: palette.RGB(1, 0, 0)},
		{X: 1, Color: palette.RGB(0, 1, 0)},
	}}
	if err := cm.Normalize(); err != nil {
		t.Fatal(err)
	}
	// Halfway between red and green around the hue wheel is yellow.
	if got := cm.Sample(0.5); !almostEqualColor(got, palette.RGB(1, 1, 0)) {
		t.Errorf("Sample(0.5) = %v, want yellow", got)
	}
}

func TestSampleStep(t *testing.T) {
	cm := greyscale(SpaceStep)
	if got := cm.Sample(0.999); !almostEqualColor(got, palette.RGB(0, 0, 0)) {
		t.Errorf("Sample(0.999) = %v, want black before the boundary", got)
	}
	if got := cm.Sample(1); !almostEqualColor(got, palette.RGB(1, 1, 1)) {
		t.Errorf("Sample(1) = %v, want white at the node", got)
	}
}

func TestSampleLog10(t *testing.T) {
	cm := &ColorMap{Scale: ScaleLog10, Points: []Point{
		{X: 1, Color: palette.RGB(0, 0, 0)},
		{X: 100, Color: palette.RGB(1, 1, 1)},
	}}
	if err := cm.Normalize(); err != nil {
		t.Fatal(err)
	}
	// x=10 is the midpoint of [1, 100] on a log axis.
	if got := cm.Sample(10); !almostEqualColor(got, palette.RGB(0.5, 0.5, 0.5)) {
		t.Errorf("Sample(10) = %v, want mid grey", got)
	}
}

func TestSampleOutsideDomain(t *testing.T) {
	cm := greyscale(SpaceRGB)
	if got := cm.Sample(-1); !almostEqualColor(got, palette.RGB(0, 0, 0)) {
		t.Errorf("Sample(-1) = %v, want clamp to first point", got)
	}
	if got := cm.Sample(2); !almostEqualColor(got, palette.RGB(1, 1, 1)) {
		t.Errorf("Sample(2) = %v, want clamp to last point", got)
	}

	below := palette.RGB(0, 0, 1)
	above := palette.RGB(1, 0, 0)
	cm.Below = &below
	cm.Above = &above
	if got := cm.Sample(-1); got != below {
		t.Errorf("Sample(-1) = %v, want below color", got)
	}
	if got := cm.Sample(2); got != above {
		t.Errorf("Sample(2) = %v, want above color", got)
	}
}

func TestSampleNaN(t *testing.T) {
	cm := greyscale(SpaceRGB)
	if got := cm.Sample(math.NaN()); !almostEqualColor(got, palette.RGB(0.5, 0, 0)) {
		t.Errorf("Sample(NaN) = %v, want dark red marker", got)
	}
	yellow := palette.RGB(1, 1, 0)
	cm.NaN = &yellow
	if got := cm.Sample(math.NaN()); got != yellow {
		t.Errorf("Sample(NaN) = %v, want NaN color", got)
	}
}

func TestSampleOpacity(t *testing.T) {
	cm := &ColorMap{HasOpacity: true, Points: []Point{
		{X: 0, Color: palette.RGB(0, 0, 0), Opacity: 0},
		{X: 1, Color: palette.RGB(1, 1, 1), Opacity: 1},
	}}
	if err := cm.Normalize(); err != nil {
		t.Fatal(err)
	}
	if got := cm.Sample(0.25).A; !almostEqual(got, 0.25) {
		t.Errorf("Sample(0.25).A = %v, want 0.25", got)
	}
	if got := cm.Sample(0).A; got != 0 {
		t.Errorf("Sample(0).A = %v, want 0", got)
	}
}

func TestSampleDiverging(t *testing.T) {
	data := mustRead(t, "cool_warm.json")
	cm, err := ParseJSON(data)
	if err != nil {
		t.Fatal(err)
	}

	// The middle control point is hit exactly.
	if got := cm.Sample(0.5); !almostEqualColor(got, palette.RGB(0.865, 0.865, 0.865)) {
		t.Errorf("Sample(0.5) = %v, want the middle point", got)
	}

	cool := cm.Sample(0.25)
	warm := cm.Sample(0.75)
	for _, c := range []palette.RGBA{cool, warm} {
		if !c.InRange() {
			t.Fatalf("sample %v outside [0, 1]", c)
		}
	}
	if cool.B <= cool.R {
		t.Errorf("Sample(0.25) = %v, want blue dominant", cool)
	}
	if warm.R <= warm.B {
		t.Errorf("Sample(0.75) = %v, want red dominant", warm)
	}
}

func TestTable(t *testing.T) {
	cm := greyscale(SpaceRGB)

	table := cm.Table(3)
	want := []palette.RGBA{
		palette.RGB(0, 0, 0),
		palette.RGB(0.5, 0.5, 0.5),
		palette.RGB(1, 1, 1),
	}
	if len(table) != len(want) {
		t.Fatalf("len(Table(3)) = %d", len(table))
	}
	for i := range want {
		if !almostEqualColor(table[i], want[i]) {
			t.Errorf("Table(3)[%d] = %v, want %v", i, table[i], want[i])
		}
	}

	if got := cm.Table(1); len(got) != 1 || !almostEqualColor(got[0], palette.RGB(0, 0, 0)) {
		t.Errorf("Table(1) = %v, want just the first point", got)
	}
	if got := cm.Table(0); got != nil {
		t.Errorf("Table(0) = %v, want nil", got)
	}
}

func TestTableLog10(t *testing.T) {
	cm := &ColorMap{Scale: ScaleLog10, Points: []Point{
		{X: 1, Color: palette.RGB(0, 0, 0)},
		{X: 100, Color: palette.RGB(1, 1, 1)},
	}}
	if err := cm.Normalize(); err != nil {
		t.Fatal(err)
	}
	// Geometric spacing: 1, 10, 100.
	table := cm.Table(3)
	if !almostEqualColor(table[1], palette.RGB(0.5, 0.5, 0.5)) {
		t.Errorf("Table(3)[1] = %v, want mid grey", table[1])
	}
}
