package geom

import "math"

// Point is a position in either normalized or pixel space.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Len returns the distance of p from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Rect is an axis aligned rectangle in pixel space. Y grows downwards.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether r has no positive area.
func (r Rect) Empty() bool { return !(r.Width > 0 && r.Height > 0) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Range is an interval given by its start and end; End may be below Start.
type Range struct {
	Start float64
	End   float64
}

// At linearly interpolates the range at t.
func (r Range) At(t float64) float64 { return r.Start + t*(r.End-r.Start) }

// Span returns End-Start.
func (r Range) Span() float64 { return r.End - r.Start }

// Padding is the space kept free inside the container, clockwise from Top.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns the same padding on all sides.
func Uniform(v float64) Padding { return Padding{v, v, v, v} }

// Extent accumulates the min and max of a stream of values.
type Extent struct {
	Min, Max float64
	n        int
}

// Add grows the extent to include v. NaN and Inf are ignored.
func (e *Extent) Add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if e.n == 0 {
		e.Min, e.Max = v, v
	} else {
		if v < e.Min {
			e.Min = v
		}
		if v > e.Max {
			e.Max = v
		}
	}
	e.n++
}

// Valid reports whether at least one value was added.
func (e Extent) Valid() bool { return e.n > 0 }

// Path is a polyline in pixel space. Closed paths join the last point back
// to the first.
type Path struct {
	Points []Point
	Closed bool
}
