package chart

import (
	"errors"

	"go.uber.org/zap"

	"gochart/internal/axis"
	"gochart/internal/coord"
	"gochart/internal/errs"
	"gochart/internal/geom"
	"gochart/internal/layout"
	"gochart/internal/legend"
	"gochart/internal/scale"
	"gochart/internal/tooltip"
)

// Frame is one rendered state of the chart in pixel space.
type Frame struct {
	Width, Height float64
	Layout        layout.Layout
	Transform     *coord.Transform
	Axes          []axis.Rendered
	Legends       []Legend
	// Points holds one placed mark per plotted record, in record order.
	Points []tooltip.Point
	// Warnings lists the records that could not be placed.
	Warnings []error

	resolver *tooltip.Resolver
}

// Legend is a placed legend.
type Legend struct {
	Field    string
	Position layout.Position
	Region   geom.Rect
	Items    []legend.Placed
}

// Resolver returns the tooltip resolver of the frame.
func (f *Frame) Resolver() *tooltip.Resolver { return f.resolver }

type frameKey struct {
	rev      uint64
	coordRev uint64
	scaleRev uint64
	w, h     float64
}

func (c *Chart) frameKey() frameKey {
	k := frameKey{rev: c.rev, coordRev: c.coord.Revision(), w: c.opts.Width, h: c.opts.Height}
	for _, s := range c.scales {
		k.scaleRev += s.Revision()
	}
	return k
}

type axisSlot struct {
	field  string
	dim    axis.Dim
	cfg    axis.Config
	rotate float64
}

func (c *Chart) axisSlots() []axisSlot {
	if c.axesOff {
		return nil
	}
	var out []axisSlot
	for _, b := range []struct {
		field string
		dim   axis.Dim
	}{{c.x, axis.X}, {c.y, axis.Y}} {
		if b.field == "" || c.axisOff[b.field] {
			continue
		}
		cfg, ok := c.axisCfg[b.field]
		if !ok {
			cfg = axis.Default(b.dim)
		}
		out = append(out, axisSlot{field: b.field, dim: b.dim, cfg: cfg, rotate: cfg.InitialRotate()})
	}
	return out
}

// Render lays the chart out and places every record. A configuration
// problem is returned as an error; records that cannot be placed are
// skipped, logged and listed in Frame.Warnings.
func (c *Chart) Render() (*Frame, error) {
	if c.x == "" || c.y == "" {
		return nil, errs.Config("chart", errs.ErrUnsupported, "position fields are not bound")
	}
	if err := c.ensureScales(); err != nil {
		return nil, err
	}
	if err := c.coord.Validate(); err != nil {
		return nil, err
	}
	key := c.frameKey()
	if c.frame != nil && key == c.key {
		return c.frame, nil
	}

	m := c.opts.Metrics
	pad := c.opts.Padding
	legendFields := sortedKeys(c.legends)
	legendBoxes := make([]layout.Box, 0, len(legendFields))
	for _, f := range legendFields {
		ctl := c.legends[f]
		avail := c.opts.Width - pad.Left - pad.Right
		if !ctl.Position().Horizontal() {
			avail = c.opts.Height - pad.Top - pad.Bottom
		}
		legendBoxes = append(legendBoxes, ctl.Measure(m, avail))
	}

	slots := c.axisSlots()
	rect := c.coord.Type() == coord.TypeRect
	var (
		lay  layout.Layout
		tr   *coord.Transform
		axes []axis.Rendered
		err  error
	)
	// Labels may auto-rotate once the real plot width is known; the second
	// pass reserves space for the rotation the first pass settled on.
	for pass := 0; pass < 2; pass++ {
		var axisBoxes []layout.Box
		if rect {
			for _, s := range slots {
				side := s.cfg.Side(s.dim, c.coord.Transposed())
				t := m.AxisThickness(side, s.cfg.Extent(c.scales[s.field], s.rotate))
				b := layout.Box{Position: side}
				if side.Horizontal() {
					b.Height = t
				} else {
					b.Width = t
				}
				axisBoxes = append(axisBoxes, b)
			}
		}
		lay, err = layout.Compute(c.opts.Width, c.opts.Height, pad, axisBoxes, legendBoxes)
		if err != nil {
			return nil, err
		}
		tr, err = c.coord.Build(lay.Plot)
		if err != nil {
			return nil, err
		}
		axes = axes[:0]
		again := false
		for i, s := range slots {
			r := axis.Render(s.field, s.dim, c.scales[s.field], tr, s.cfg, m)
			if r.Rotate != s.rotate {
				slots[i].rotate = r.Rotate
				again = true
			}
			axes = append(axes, r)
		}
		if !again || !rect {
			break
		}
	}

	f := &Frame{
		Width:     c.opts.Width,
		Height:    c.opts.Height,
		Layout:    lay,
		Transform: tr,
		Axes:      axes,
	}
	for i, field := range legendFields {
		ctl := c.legends[field]
		region := lay.Legends[i]
		f.Legends = append(f.Legends, Legend{
			Field:    field,
			Position: ctl.Position(),
			Region:   region,
			Items:    ctl.Place(region, m),
		})
	}
	c.placeMarks(f)
	f.resolver = tooltip.NewResolver(tr, c.scales[c.x], c.scales[c.y], f.Points, c.tooltipCfg)
	c.session.SetResolver(f.resolver)

	c.frame, c.key = f, key
	c.log.Debug("frame rendered",
		zap.String("coord", string(c.coord.Type())),
		zap.Float64("width", c.opts.Width),
		zap.Float64("height", c.opts.Height),
		zap.Int("points", len(f.Points)),
		zap.Int("skipped", len(f.Warnings)))
	return f, nil
}

// placeMarks maps every record through the position scales. Records whose
// category is hidden by a legend are left out silently.
func (c *Chart) placeMarks(f *Frame) {
	xs, ys := c.scales[c.x], c.scales[c.y]
	for i, rec := range c.records {
		if c.filtered(rec) {
			continue
		}
		nx, err := xs.Map(rec[c.x])
		if err == nil {
			var ny float64
			ny, err = ys.Map(rec[c.y])
			if err == nil {
				n := geom.Pt(nx, ny)
				series, color := c.series(rec)
				f.Points = append(f.Points, tooltip.Point{
					Index:  i,
					Record: rec,
					Series: series,
					Color:  color,
					Norm:   n,
					Pixel:  f.Transform.Convert(n),
				})
				continue
			}
		}
		var me *errs.DataMismatchError
		if errors.As(err, &me) {
			c.log.Warn("record skipped",
				zap.Int("index", i),
				zap.String("field", me.Field),
				zap.Any("value", me.Value),
				zap.Error(me.Err))
		} else {
			c.log.Warn("record skipped", zap.Int("index", i), zap.Error(err))
		}
		f.Warnings = append(f.Warnings, err)
	}
}

// filtered reports whether a legend hides rec.
func (c *Chart) filtered(rec map[string]any) bool {
	for field := range c.legends {
		o := c.scales[field].(*scale.Ordinal)
		v := rec[field]
		if !o.Contains(v) {
			continue
		}
		if _, err := o.Map(v); err != nil {
			return true
		}
	}
	return false
}

// series returns the colour category of rec and its colour.
func (c *Chart) series(rec map[string]any) (string, string) {
	if c.color == "" {
		return "", legend.Palette(1)[0]
	}
	v := rec[c.color]
	if v == nil {
		return "", legend.Palette(1)[0]
	}
	key := scale.Key(v)
	if ctl, ok := c.legends[c.color]; ok {
		if col := ctl.Color(key); col != "" {
			return key, col
		}
	}
	if o, ok := c.scales[c.color].(*scale.Ordinal); ok {
		values := o.Values()
		for i, cat := range values {
			if cat == key {
				return key, legend.Palette(len(values))[i]
			}
		}
	}
	return key, legend.Palette(1)[0]
}
