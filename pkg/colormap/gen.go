package colormap

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/segviz/segviz/pkg/palette"
)

var spaceIdents = map[Space]string{
	SpaceRGB:       "SpaceRGB",
	SpaceHSV:       "SpaceHSV",
	SpaceLab:       "SpaceLab",
	SpaceCIEDE2000: "SpaceCIEDE2000",
	SpaceDiverging: "SpaceDiverging",
	SpaceStep:      "SpaceStep",
}

var scaleIdents = map[Scale]string{
	ScaleLinear: "ScaleLinear",
	ScaleLog10:  "ScaleLog10",
}

// GenerateGo writes Go source for a function reconstructing cm as a
// literal. The output is a single gofmt-clean function that references
// the colormap and palette packages; the caller supplies the enclosing
// file and imports.
func GenerateGo(w io.Writer, cm *ColorMap) error {
	var buf bytes.Buffer

	name := funcName(cm.Name)
	fmt.Fprintf(&buf, "// %s returns the %q color transfer function", name, cm.Name)
	if cm.Creator != "" {
		fmt.Fprintf(&buf, " by %s", cm.Creator)
	}
	buf.WriteString(".\n")
	fmt.Fprintf(&buf, "func %s() *colormap.ColorMap {\n", name)

	for _, edge := range []struct {
		ident string
		color *palette.RGBA
	}{
		{"nan", cm.NaN},
		{"above", cm.Above},
		{"below", cm.Below},
	} {
		if edge.color != nil {
			fmt.Fprintf(&buf, "\t%s := %s\n", edge.ident, colorExpr(*edge.color))
		}
	}

	buf.WriteString("\treturn &colormap.ColorMap{\n")
	fmt.Fprintf(&buf, "\t\tName: %q,\n", cm.Name)
	if cm.Creator != "" {
		fmt.Fprintf(&buf, "\t\tCreator: %q,\n", cm.Creator)
	}
	fmt.Fprintf(&buf, "\t\tSpace: colormap.%s,\n", spaceIdents[cm.Space])
	fmt.Fprintf(&buf, "\t\tScale: colormap.%s,\n", scaleIdents[cm.Scale])
	if cm.HasOpacity {
		buf.WriteString("\t\tHasOpacity: true,\n")
	}

	buf.WriteString("\t\tPoints: []colormap.Point{\n")
	for _, p := range cm.Points {
		fmt.Fprintf(&buf, "\t\t\t{X: %s, Color: %s", goFloat(p.X), colorExpr(p.Color))
		if cm.HasOpacity {
			fmt.Fprintf(&buf, ", Opacity: %s", goFloat(p.Opacity))
		}
		buf.WriteString("},\n")
	}
	buf.WriteString("\t\t},\n")

	if cm.NaN != nil {
		buf.WriteString("\t\tNaN: &nan,\n")
	}
	if cm.Above != nil {
		buf.WriteString("\t\tAbove: &above,\n")
	}
	if cm.Below != nil {
		buf.WriteString("\t\tBelow: &below,\n")
	}
	buf.WriteString("\t}\n}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func colorExpr(c palette.RGBA) string {
	if c.A == 1 {
		return fmt.Sprintf("palette.RGB(%s, %s, %s)", goFloat(c.R), goFloat(c.G), goFloat(c.B))
	}
	return fmt.Sprintf("palette.RGBA{R: %s, G: %s, B: %s, A: %s}", goFloat(c.R), goFloat(c.G), goFloat(c.B), goFloat(c.A))
}

func goFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// funcName derives a Go identifier from a colormap name, e.g.
// "Cool to Warm" becomes coolToWarmColorMap.
func funcName(name string) string {
	var b strings.Builder
	upper := false
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		switch {
		case b.Len() == 0:
			r = unicode.ToLower(r)
		case upper:
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		upper = false
	}
	s := b.String()
	if s == "" || !unicode.IsLetter(rune(s[0])) {
		return "newColorMap"
	}
	return s + "ColorMap"
}
