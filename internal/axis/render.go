package axis

import (
	"math"
	"sort"

	"gochart/internal/coord"
	"gochart/internal/geom"
	"gochart/internal/layout"
	"gochart/internal/scale"
	"gochart/internal/style"
)

// Rendered is the resolved geometry of one axis in pixel space.
type Rendered struct {
	Field    string
	Dim      Dim
	Position layout.Position
	Line     *geom.Path
	Ticks    []TickMark
	SubTicks []Segment
	Grid     []geom.Path
	Labels   []Text
	Title    *Text
	// Rotate is the label rotation in degrees after auto-rotation.
	Rotate float64
	// Overlap reports labels still colliding at the chosen rotation.
	Overlap bool
}

// TickMark is one tick: From lies on the axis line, To points away from
// the plot.
type TickMark struct {
	Value any
	Text  string
	T     float64
	From  geom.Point
	To    geom.Point
}

type Segment struct {
	From, To geom.Point
}

// Text is a placed label. Align is "start", "center" or "end" relative to
// At along the text baseline.
type Text struct {
	Text   string
	At     geom.Point
	Rotate float64
	Align  string
	Style  style.Text
}

const delta = 1e-3

// autoRotations is the fallback order tried while labels overlap.
var autoRotations = []float64{0, 45, 90}

// Extent returns what the layout needs to reserve for this axis given a
// label rotation.
func (c Config) Extent(s scale.Scale, rotate float64) layout.AxisExtent {
	e := layout.AxisExtent{
		Rotate:     rotate,
		TickLength: c.tickLength(),
		Offset:     c.labelOffset(),
	}
	if c.Label != nil {
		for i, tk := range s.Ticks() {
			e.Labels = append(e.Labels, c.labelText(tk, i))
		}
	}
	if c.Title != nil {
		e.Title = c.titleText(s)
		e.TitleGap = c.Title.Offset
	}
	return e
}

// InitialRotate is the label rotation assumed before the first render.
func (c Config) InitialRotate() float64 {
	if c.Label == nil || c.Label.AutoRotate {
		return 0
	}
	return c.Label.Rotate
}

func (c Config) labelText(tk scale.Tick, i int) string {
	if c.Label != nil && c.Label.Formatter != nil {
		return c.Label.Formatter(tk.Text, i)
	}
	return tk.Text
}

func (c Config) titleText(s scale.Scale) string {
	if c.Title.Text != "" {
		return c.Title.Text
	}
	return s.Alias()
}

// Render places the axis for field along dim.
func Render(field string, dim Dim, s scale.Scale, tr *coord.Transform, cfg Config, m layout.Metrics) Rendered {
	a := placer{dim: dim, tr: tr}
	angular := tr.IsPolar() && (dim == X) != tr.Transposed()
	switch {
	case tr.IsPolar():
		// the angle runs around the outer circle, the radius along the
		// start angle
		if angular {
			a.side = 1
		}
	default:
		if p := cfg.Side(dim, tr.Transposed()); p == layout.Top || p == layout.Right {
			a.side = 1
		}
	}

	r := Rendered{Field: field, Dim: dim, Position: cfg.Side(dim, tr.Transposed())}
	if cfg.Line != nil {
		p := tr.Line(a.norm(0), a.norm(1))
		r.Line = &p
	}

	ticks := s.Ticks()
	sort.SliceStable(ticks, func(i, j int) bool { return ticks[i].T < ticks[j].T })
	if n := len(ticks); angular && tr.FullCircle() && n > 1 && ticks[n-1].T-ticks[0].T > 1-1e-9 {
		ticks = ticks[:n-1]
	}
	tl := cfg.tickLength()
	for i, tk := range ticks {
		from, out := a.at(tk.T)
		r.Ticks = append(r.Ticks, TickMark{
			Value: tk.Value,
			Text:  cfg.labelText(tk, i),
			T:     tk.T,
			From:  from,
			To:    add(from, out, tl),
		})
	}

	if cfg.SubTickCount > 0 && len(ticks) > 1 {
		sl := tl / 2
		if cfg.SubTickLine != nil {
			sl = cfg.SubTickLine.Length
		}
		n := cfg.SubTickCount
		for i := 0; i+1 < len(ticks); i++ {
			step := (ticks[i+1].T - ticks[i].T) / float64(n+1)
			for k := 1; k <= n; k++ {
				from, out := a.at(ticks[i].T + float64(k)*step)
				r.SubTicks = append(r.SubTicks, Segment{From: from, To: add(from, out, sl)})
			}
		}
	}

	if cfg.Grid != nil {
		for _, t := range gridPositions(ticks, *cfg.Grid) {
			r.Grid = append(r.Grid, a.gridLine(t))
		}
	}

	var across float64
	if cfg.Label != nil {
		r.Labels, r.Rotate, r.Overlap = a.labels(field, r.Ticks, cfg, m)
		for i, l := range r.Labels {
			_, out := a.at(r.Ticks[i].T)
			across = math.Max(across, extent(l, out, m))
		}
	}

	if cfg.Title != nil {
		t := 0.5
		switch cfg.Title.Position {
		case "start":
			t = 0
		case "end":
			t = 1
		}
		from, out := a.at(t)
		dist := tl + cfg.Title.Offset + m.LineHeight/2
		if across > 0 {
			dist += cfg.labelOffset() + across
		}
		text := cfg.titleText(s)
		rot := 0.0
		if math.Abs(out.X) > math.Abs(out.Y) {
			rot = -90
		}
		r.Title = &Text{
			Text:   text,
			At:     add(from, out, dist),
			Rotate: rot,
			Align:  "center",
			Style:  cfg.Title.TextStyle.Resolve(style.Context{Field: field, Text: text}),
		}
	}
	return r
}

func (a placer) labels(field string, ticks []TickMark, cfg Config, m layout.Metrics) ([]Text, float64, bool) {
	rotations := []float64{cfg.Label.Rotate}
	if cfg.Label.AutoRotate {
		rotations = autoRotations
	}
	dist := cfg.tickLength() + cfg.Label.Offset
	var (
		out     []Text
		rot     float64
		overlap bool
	)
	for _, rot = range rotations {
		out = out[:0]
		for i, tk := range ticks {
			_, dir := a.at(tk.T)
			out = append(out, Text{
				Text:   tk.Text,
				At:     add(tk.From, dir, dist),
				Rotate: rot,
				Align:  align(dir),
				Style: cfg.Label.TextStyle.Resolve(style.Context{
					Field: field, Value: tk.Value, Text: tk.Text, Index: i,
				}),
			})
		}
		if overlap = overlaps(out, m); !overlap {
			break
		}
	}
	return out, rot, overlap
}

// overlaps reports whether any two neighbouring labels collide along the
// line joining their anchors.
func overlaps(labels []Text, m layout.Metrics) bool {
	for i := 0; i+1 < len(labels); i++ {
		d := labels[i+1].At.Sub(labels[i].At)
		dist := d.Len()
		if dist == 0 {
			return true
		}
		u := geom.Pt(d.X/dist, d.Y/dist)
		if (extent(labels[i], u, m)+extent(labels[i+1], u, m))/2 > dist {
			return true
		}
	}
	return false
}

// extent is the length of a label's box projected on the unit vector u.
func extent(l Text, u geom.Point, m layout.Metrics) float64 {
	w, h := m.Text(l.Text)
	sin, cos := math.Sincos(l.Rotate * math.Pi / 180)
	along := math.Abs(cos*u.X + sin*u.Y)
	perp := math.Abs(-sin*u.X + cos*u.Y)
	return w*along + h*perp
}

func align(out geom.Point) string {
	switch {
	case out.X > 0.5:
		return "start"
	case out.X < -0.5:
		return "end"
	}
	return "center"
}

// gridPositions returns the unit positions of grid lines.
func gridPositions(ticks []scale.Tick, g Grid) []float64 {
	var ts []float64
	if g.Align == "center" {
		switch len(ticks) {
		case 0:
		case 1:
			ts = []float64{0, 1}
		default:
			first := ticks[0].T - (ticks[1].T-ticks[0].T)/2
			ts = append(ts, math.Max(0, first))
			for i := 0; i+1 < len(ticks); i++ {
				ts = append(ts, (ticks[i].T+ticks[i+1].T)/2)
			}
			n := len(ticks)
			last := ticks[n-1].T + (ticks[n-1].T-ticks[n-2].T)/2
			ts = append(ts, math.Min(1, last))
		}
	} else {
		for _, tk := range ticks {
			ts = append(ts, tk.T)
		}
	}
	if g.HideFirstLine && len(ts) > 0 {
		ts = ts[1:]
	}
	if g.HideLastLine && len(ts) > 0 {
		ts = ts[:len(ts)-1]
	}
	return ts
}

// placer locates points on the axis line in normalized space.
type placer struct {
	dim  Dim
	side float64
	tr   *coord.Transform
}

// norm is the normalized point at unit position t along the axis.
func (a placer) norm(t float64) geom.Point {
	if a.dim == X {
		return geom.Pt(t, a.side)
	}
	return geom.Pt(a.side, t)
}

func (a placer) gridLine(t float64) geom.Path {
	if a.dim == X {
		return a.tr.Line(geom.Pt(t, 0), geom.Pt(t, 1))
	}
	return a.tr.Line(geom.Pt(0, t), geom.Pt(1, t))
}

// at returns the pixel position of t and the unit vector pointing away
// from the plot.
func (a placer) at(t float64) (geom.Point, geom.Point) {
	p := a.tr.Convert(a.norm(t))
	out := a.outward(t)
	if out.Len() < 1e-9 {
		// degenerate at the pole; borrow the direction of a neighbour
		if t < 0.5 {
			out = a.outward(t + delta)
		} else {
			out = a.outward(t - delta)
		}
	}
	l := out.Len()
	if l == 0 {
		return p, geom.Point{}
	}
	return p, geom.Pt(out.X/l, out.Y/l)
}

func (a placer) outward(t float64) geom.Point {
	in := a.norm(t)
	step := delta
	if a.side == 1 {
		step = -delta
	}
	if a.dim == X {
		in.Y += step
	} else {
		in.X += step
	}
	return a.tr.Convert(a.norm(t)).Sub(a.tr.Convert(in))
}

func add(p, dir geom.Point, d float64) geom.Point {
	return geom.Pt(p.X+dir.X*d, p.Y+dir.Y*d)
}
