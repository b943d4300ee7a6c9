package coord

import (
	"math"

	"golang.org/x/image/math/f64"

	"gochart/internal/errs"
	"gochart/internal/geom"
)

const twoPi = 2 * math.Pi

// Transform is a Coordinate bound to a plot rectangle.
type Transform struct {
	typ        Type
	transposed bool
	plot       geom.Rect
	center     geom.Point

	// x and y are the pixel ranges for rect, and the angle and radius
	// ranges for the polar family.
	x, y geom.Range

	// helix: radius gained per radian, and the width of one turn's band.
	a, d float64

	m, inv f64.Aff3
}

// Build validates c and binds it to plot.
func (c *Coordinate) Build(plot geom.Rect) (*Transform, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if plot.Empty() {
		return nil, errs.Config("coord", errs.ErrNoPlotArea)
	}
	t := &Transform{
		typ:        c.typ,
		transposed: c.Transposed(),
		plot:       plot,
		center:     plot.Center(),
		m:          identity,
		inv:        identity,
	}
	switch c.typ {
	case TypeRect:
		t.x = geom.Range{Start: plot.X, End: plot.X + plot.Width}
		t.y = geom.Range{Start: plot.Y + plot.Height, End: plot.Y}
	default:
		r := math.Min(plot.Width, plot.Height) / 2
		outer, inner := c.radii()
		start, end := c.angles()
		t.x = geom.Range{Start: start, End: end}
		t.y = geom.Range{Start: inner * r, End: outer * r}
		if c.typ == TypeHelix {
			turns := math.Abs(end-start) / twoPi
			t.d = (outer - inner) * r / (turns + 1)
			t.a = t.d / twoPi
			t.y.End = t.y.Start + t.d
		}
	}
	for _, op := range c.ops {
		fwd, inv, ok := opMatrices(op)
		if !ok {
			continue
		}
		t.m = mul(about(t.center, fwd), t.m)
		t.inv = mul(t.inv, about(t.center, inv))
	}
	return t, nil
}

func (t *Transform) Type() Type { return t.typ }

// Plot returns the plot rectangle the transform was built for.
func (t *Transform) Plot() geom.Rect { return t.plot }

// Center returns the plot centre, the pivot of every operation.
func (t *Transform) Center() geom.Point { return t.center }

// X returns the pixel range of rect x, or the angle range.
func (t *Transform) X() geom.Range { return t.x }

// Y returns the pixel range of rect y, or the radius range.
func (t *Transform) Y() geom.Range { return t.y }

// IsPolar reports whether x is an angle.
func (t *Transform) IsPolar() bool { return t.typ != TypeRect }

func (t *Transform) Transposed() bool { return t.transposed }

// FullCircle reports whether the angle sweeps exactly one turn, so that
// normalized x=0 and x=1 coincide.
func (t *Transform) FullCircle() bool {
	return t.IsPolar() && t.typ != TypeHelix && math.Abs(math.Abs(t.x.Span())-twoPi) < 1e-9
}

// Matrix returns the composed operation matrix.
func (t *Transform) Matrix() f64.Aff3 { return t.m }

// Convert maps a normalized point to pixels: transpose, base topology,
// then the operations in call order.
func (t *Transform) Convert(p geom.Point) geom.Point {
	if t.transposed {
		p.X, p.Y = p.Y, p.X
	}
	return apply(t.m, t.base(p))
}

// Invert maps pixels back to a normalized point.
func (t *Transform) Invert(p geom.Point) geom.Point {
	n := t.unbase(apply(t.inv, p))
	if t.transposed {
		n.X, n.Y = n.Y, n.X
	}
	return n
}

func (t *Transform) base(p geom.Point) geom.Point {
	switch t.typ {
	case TypeRect:
		return geom.Point{X: t.x.At(p.X), Y: t.y.At(p.Y)}
	case TypeHelix:
		theta := t.x.At(p.X)
		r := t.y.Start + t.a*math.Abs(theta-t.x.Start) + p.Y*t.d
		return t.polar(theta, r)
	}
	return t.polar(t.x.At(p.X), t.y.At(p.Y))
}

func (t *Transform) polar(theta, r float64) geom.Point {
	sin, cos := math.Sincos(theta)
	return geom.Point{X: t.center.X + r*cos, Y: t.center.Y + r*sin}
}

func (t *Transform) unbase(p geom.Point) geom.Point {
	if t.typ == TypeRect {
		return geom.Point{
			X: (p.X - t.x.Start) / t.x.Span(),
			Y: (p.Y - t.y.Start) / t.y.Span(),
		}
	}
	v := p.Sub(t.center)
	rho := v.Len()
	phi := math.Atan2(v.Y, v.X)
	span := t.x.Span()
	if t.typ == TypeHelix {
		return t.unhelix(phi, rho, span)
	}
	return geom.Point{
		X: unwrap(phi, t.x.Start, span) / span,
		Y: (rho - t.y.Start) / t.y.Span(),
	}
}

// unhelix finds the turn whose band contains rho at angle phi.
func (t *Transform) unhelix(phi, rho, span float64) geom.Point {
	sign := 1.0
	if span < 0 {
		sign = -1
	}
	u := angleMod(sign * (phi - t.x.Start))
	y := (rho - t.y.Start - t.a*u) / t.d
	k := math.Floor(y)
	if maxK := math.Floor((math.Abs(span) - u) / twoPi); k > maxK {
		k = maxK
	}
	if k < 0 {
		k = 0
	}
	off := u + k*twoPi
	return geom.Point{X: sign * off / span, Y: y - k}
}

// unwrap returns the signed angular offset of phi from start, following the
// direction of span. Angles past the end are attributed to whichever end
// of the arc is closer.
func unwrap(phi, start, span float64) float64 {
	sign := 1.0
	if span < 0 {
		sign = -1
	}
	u := angleMod(sign * (phi - start))
	if abs := math.Abs(span); u > abs && u-abs > twoPi-u {
		u -= twoPi
	}
	return sign * u
}

// angleMod reduces a to [0, 2π), snapping values a rounding error below 2π
// back to 0.
func angleMod(a float64) float64 {
	u := math.Mod(a, twoPi)
	if u < 0 {
		u += twoPi
	}
	if twoPi-u < 1e-12 {
		u = 0
	}
	return u
}

// arcSteps is the number of segments used for a full sweep of the angle.
const arcSteps = 64

// Line maps the normalized segment a-b to a pixel path. Segments that sweep
// the angle of a polar base are sampled; a full turn at one radius is
// returned closed.
func (t *Transform) Line(a, b geom.Point) geom.Path {
	ba, bb := a, b
	if t.transposed {
		ba.X, ba.Y = ba.Y, ba.X
		bb.X, bb.Y = bb.Y, bb.X
	}
	if !t.IsPolar() || ba.X == bb.X {
		return geom.Path{Points: []geom.Point{t.Convert(a), t.Convert(b)}}
	}
	n := int(math.Ceil(math.Abs(bb.X-ba.X) * arcSteps))
	if n < 2 {
		n = 2
	}
	closed := t.FullCircle() && ba.Y == bb.Y && math.Abs(bb.X-ba.X) == 1
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		if closed && i == n {
			break
		}
		f := float64(i) / float64(n)
		pts = append(pts, t.Convert(geom.Point{X: a.X + f*(b.X-a.X), Y: a.Y + f*(b.Y-a.Y)}))
	}
	return geom.Path{Points: pts, Closed: closed}
}
