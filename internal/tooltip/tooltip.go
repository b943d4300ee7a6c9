// Package tooltip resolves a pointer position to the nearest data records
// by inverting the coordinate transform and the bound scales.
package tooltip

import (
	"math"
	"sort"

	"gochart/internal/coord"
	"gochart/internal/errs"
	"gochart/internal/geom"
	"gochart/internal/scale"
)

// Trigger selects the pointer event that resolves a tooltip.
type Trigger string

const (
	OnMouseMove Trigger = "mousemove"
	OnClick     Trigger = "click"
	OnNone      Trigger = "none"
)

// Crosshair names a guide geometry.
type Crosshair string

const (
	CrosshairNone  Crosshair = ""
	CrosshairRect  Crosshair = "rect"
	CrosshairX     Crosshair = "x" // horizontal line
	CrosshairY     Crosshair = "y" // vertical line
	CrosshairCross Crosshair = "cross"
)

// Config configures the tooltip.
type Config struct {
	TriggerOn  Trigger
	Shared     bool
	Crosshairs Crosshair
	ShowTitle  bool
	// TitleField names the field shown as the title; the x field when empty.
	TitleField string
}

// Validate reports unknown option values.
func (c Config) Validate() error {
	switch c.TriggerOn {
	case "", OnMouseMove, OnClick, OnNone:
	default:
		return errs.Config("tooltip", errs.ErrUnsupported, "triggerOn ", c.TriggerOn)
	}
	switch c.Crosshairs {
	case CrosshairNone, CrosshairRect, CrosshairX, CrosshairY, CrosshairCross:
	default:
		return errs.Config("tooltip", errs.ErrUnsupported, "crosshairs type ", c.Crosshairs)
	}
	return nil
}

func (c Config) trigger() Trigger {
	if c.TriggerOn == "" {
		return OnMouseMove
	}
	return c.TriggerOn
}

// Point is a placed record the resolver searches.
type Point struct {
	Index  int
	Record map[string]any
	Series string
	Color  string
	Norm   geom.Point
	Pixel  geom.Point
}

// Item is one resolved record.
type Item struct {
	Point
	Name  string
	Value string
}

// Result is a resolved tooltip. Anchor is in pixels.
type Result struct {
	Title      string
	Items      []Item
	Anchor     geom.Point
	Crosshairs []geom.Path
}

// Resolver looks up records under the pointer for one rendered frame.
type Resolver struct {
	tr     *coord.Transform
	x, y   scale.Scale
	points []Point
	cfg    Config
	band   float64
}

// NewResolver searches points, placed by tr through the x and y scales.
func NewResolver(tr *coord.Transform, x, y scale.Scale, points []Point, cfg Config) *Resolver {
	r := &Resolver{tr: tr, x: x, y: y, points: points, cfg: cfg}
	r.band = bandWidth(x, points)
	return r
}

// Config returns the tooltip configuration.
func (r *Resolver) Config() Config { return r.cfg }

// Resolve returns the records nearest to the pixel p, or nil when p lies
// outside the plot rectangle or nothing is plotted.
func (r *Resolver) Resolve(p geom.Point) *Result {
	if r == nil || !r.tr.Plot().Contains(p) || len(r.points) == 0 {
		return nil
	}
	n := r.tr.Invert(p)
	target := n.X
	if o, ok := r.x.(*scale.Ordinal); ok {
		v := o.Invert(n.X)
		if v == nil {
			return nil
		}
		t, err := o.Map(v)
		if err != nil {
			return nil
		}
		target = t
	}

	best := math.Inf(1)
	for _, pt := range r.points {
		best = math.Min(best, math.Abs(pt.Norm.X-target))
	}
	var cands []Point
	for _, pt := range r.points {
		if math.Abs(pt.Norm.X-target)-best <= 1e-9 {
			cands = append(cands, pt)
		}
	}

	var picked []Point
	if r.cfg.Shared {
		bySeries := map[string]int{}
		for _, pt := range cands {
			i, ok := bySeries[pt.Series]
			if !ok {
				bySeries[pt.Series] = len(picked)
				picked = append(picked, pt)
				continue
			}
			if closer(pt, picked[i], n.Y) {
				picked[i] = pt
			}
		}
	} else {
		one := cands[0]
		for _, pt := range cands[1:] {
			if closer(pt, one, n.Y) {
				one = pt
			}
		}
		picked = []Point{one}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Index < picked[j].Index })

	res := &Result{Anchor: picked[0].Pixel}
	for _, pt := range picked {
		name := pt.Series
		if name == "" {
			name = r.y.Alias()
		}
		res.Items = append(res.Items, Item{Point: pt, Name: name, Value: r.y.Text(pt.Record[r.y.Field()])})
	}
	if r.cfg.ShowTitle {
		res.Title = r.title(picked[0])
	}
	res.Crosshairs = Crosshairs(r.cfg.Crosshairs, r.tr, geom.Pt(picked[0].Norm.X, picked[0].Norm.Y), r.band)
	return res
}

func (r *Resolver) title(pt Point) string {
	if f := r.cfg.TitleField; f != "" && f != r.x.Field() {
		return scale.Key(pt.Record[f])
	}
	return r.x.Text(pt.Record[r.x.Field()])
}

// closer reports whether a is nearer than b to y along the value axis,
// ties going to the earlier record.
func closer(a, b Point, y float64) bool {
	da, db := math.Abs(a.Norm.Y-y), math.Abs(b.Norm.Y-y)
	if da != db {
		return da < db
	}
	return a.Index < b.Index
}

// bandWidth is the unit width a rect crosshair covers: the band of an
// ordinal scale, or the smallest gap between distinct x positions.
func bandWidth(x scale.Scale, points []Point) float64 {
	if o, ok := x.(*scale.Ordinal); ok {
		return o.Step()
	}
	xs := make([]float64, 0, len(points))
	for _, pt := range points {
		xs = append(xs, pt.Norm.X)
	}
	sort.Float64s(xs)
	gap := math.Inf(1)
	for i := 1; i < len(xs); i++ {
		if d := xs[i] - xs[i-1]; d > 1e-9 && d < gap {
			gap = d
		}
	}
	if math.IsInf(gap, 1) {
		return 0.1
	}
	return gap
}

// Crosshairs returns the guide paths for typ anchored at the normalized
// point at. band is the unit width of a rect crosshair.
func Crosshairs(typ Crosshair, tr *coord.Transform, at geom.Point, band float64) []geom.Path {
	horizontal := func() geom.Path { return tr.Line(geom.Pt(0, at.Y), geom.Pt(1, at.Y)) }
	vertical := func() geom.Path { return tr.Line(geom.Pt(at.X, 0), geom.Pt(at.X, 1)) }
	switch typ {
	case CrosshairX:
		return []geom.Path{horizontal()}
	case CrosshairY:
		return []geom.Path{vertical()}
	case CrosshairCross:
		return []geom.Path{horizontal(), vertical()}
	case CrosshairRect:
		x0 := math.Max(0, at.X-band/2)
		x1 := math.Min(1, at.X+band/2)
		corners := []geom.Point{geom.Pt(x0, 0), geom.Pt(x1, 0), geom.Pt(x1, 1), geom.Pt(x0, 1), geom.Pt(x0, 0)}
		var pts []geom.Point
		for i := 0; i+1 < len(corners); i++ {
			seg := tr.Line(corners[i], corners[i+1]).Points
			pts = append(pts, seg[:len(seg)-1]...)
		}
		return []geom.Path{{Points: pts, Closed: true}}
	}
	return nil
}
