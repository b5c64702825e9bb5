package colormap

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/segviz/segviz/pkg/palette"
)

// Sample evaluates the transfer function at position x. The alpha
// channel carries the interpolated per-point opacity when the map has
// one. Positions outside the domain clamp to the nearest control point
// unless Below or Above colors are set; NaN input maps to the NaN color,
// defaulting to a dark red marker. The map must be normalized.
func (cm *ColorMap) Sample(x float64) palette.RGBA {
	if math.IsNaN(x) {
		if cm.NaN != nil {
			return *cm.NaN
		}
		return palette.RGB(0.5, 0, 0)
	}
	pts := cm.Points
	if len(pts) == 0 {
		return palette.RGB(0, 0, 0)
	}
	if x < pts[0].X {
		if cm.Below != nil {
			return *cm.Below
		}
		return cm.pointColor(0)
	}
	if x > pts[len(pts)-1].X {
		if cm.Above != nil {
			return *cm.Above
		}
		return cm.pointColor(len(pts) - 1)
	}

	idx := sort.Search(len(pts), func(i int) bool { return pts[i].X >= x })
	if pts[idx].X == x {
		return cm.pointColor(idx)
	}
	return cm.blend(pts[idx-1], pts[idx], cm.segmentT(pts[idx-1].X, pts[idx].X, x))
}

// Table discretizes the map into n colors evenly spaced across the
// domain, geometrically spaced when the scale is log10.
func (cm *ColorMap) Table(n int) []palette.RGBA {
	if n <= 0 {
		return nil
	}
	lo, hi := cm.Domain()
	out := make([]palette.RGBA, n)
	if n == 1 {
		out[0] = cm.Sample(lo)
		return out
	}
	for i := range out {
		frac := float64(i) / float64(n-1)
		x := lo + frac*(hi-lo)
		if cm.Scale == ScaleLog10 {
			x = lo * math.Pow(hi/lo, frac)
		}
		out[i] = cm.Sample(x)
	}
	return out
}

func (cm *ColorMap) pointColor(i int) palette.RGBA {
	c := cm.Points[i].Color
	if cm.HasOpacity {
		c.A = cm.Points[i].Opacity
	}
	return c
}

// segmentT maps x into [0, 1] between two control point positions.
func (cm *ColorMap) segmentT(x1, x2, x float64) float64 {
	if cm.Scale == ScaleLog10 {
		return (math.Log10(x) - math.Log10(x1)) / (math.Log10(x2) - math.Log10(x1))
	}
	return (x - x1) / (x2 - x1)
}

func (cm *ColorMap) blend(p1, p2 Point, t float64) palette.RGBA {
	c1 := colorful.Color{R: p1.Color.R, G: p1.Color.G, B: p1.Color.B}
	c2 := colorful.Color{R: p2.Color.R, G: p2.Color.G, B: p2.Color.B}

	var out colorful.Color
	switch cm.Space {
	case SpaceHSV:
		out = c1.BlendHsv(c2, t)
	case SpaceLab, SpaceCIEDE2000:
		out = c1.BlendLab(c2, t).Clamped()
	case SpaceDiverging:
		out = blendDiverging(c1, c2, t)
	case SpaceStep:
		out = c1
	default:
		out = c1.BlendRgb(c2, t)
	}

	alpha := p1.Color.A + t*(p2.Color.A-p1.Color.A)
	if cm.HasOpacity {
		alpha = p1.Opacity + t*(p2.Opacity-p1.Opacity)
	}
	return palette.RGBA{R: out.R, G: out.G, B: out.B, A: alpha}
}

// ===== Diverging interpolation =====

// Diverging maps interpolate through Msh space, the polar form of Lab,
// inserting an unsaturated point between hues so that both halves pass
// through white. Magnitudes follow go-colorful's Lab scaling, where
// white sits near M=0.88 rather than the conventional 88.

type msh struct{ m, s, h float64 }

func labToMsh(l, a, b float64) msh {
	m := math.Sqrt(l*l + a*a + b*b)
	var s, h float64
	if m > 0.001 {
		s = math.Acos(l / m)
	}
	if s > 0.001 {
		h = math.Atan2(b, a)
	}
	return msh{m: m, s: s, h: h}
}

func mshToLab(c msh) (l, a, b float64) {
	return c.m * math.Cos(c.s),
		c.m * math.Sin(c.s) * math.Cos(c.h),
		c.m * math.Sin(c.s) * math.Sin(c.h)
}

func hueDiff(h1, h2 float64) float64 {
	d := math.Abs(h2 - h1)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// adjustHue picks a hue for an unsaturated endpoint that keeps the path
// from the saturated color smooth.
func adjustHue(sat msh, unsatM float64) float64 {
	if sat.m >= unsatM {
		return sat.h
	}
	spin := sat.s * math.Sqrt(unsatM*unsatM-sat.m*sat.m) / (sat.m * math.Sin(sat.s))
	if sat.h > -math.Pi/3 {
		return sat.h + spin
	}
	return sat.h - spin
}

func blendDiverging(c1, c2 colorful.Color, t float64) colorful.Color {
	l1, a1, b1 := c1.Lab()
	l2, a2, b2 := c2.Lab()
	m1 := labToMsh(l1, a1, b1)
	m2 := labToMsh(l2, a2, b2)

	// Saturated endpoints with distinct hues get a white midpoint, and t
	// is refitted to the half being evaluated.
	if m1.s > 0.05 && m2.s > 0.05 && hueDiff(m1.h, m2.h) > math.Pi/3 {
		white := math.Max(math.Max(m1.m, m2.m), 0.88)
		if t < 0.5 {
			m2 = msh{m: white}
			t *= 2
		} else {
			m1 = msh{m: white}
			t = 2*t - 1
		}
	}

	if m1.s < 0.05 && m2.s > 0.05 {
		m1.h = adjustHue(m2, m1.m)
	} else if m2.s < 0.05 && m1.s > 0.05 {
		m2.h = adjustHue(m1, m2.m)
	}

	mid := msh{
		m: m1.m + t*(m2.m-m1.m),
		s: m1.s + t*(m2.s-m1.s),
		h: m1.h + t*(m2.h-m1.h),
	}
	return colorful.Lab(mshToLab(mid)).Clamped()
}
