// Package chart binds records, scales, a coordinate and the guide
// components (axes, legends, tooltip) into frames that a renderer draws.
//
// A Chart is configured through its setters and rendered on demand. Render
// caches the last frame and rebuilds it only when the data, a scale
// revision, the coordinate or the size has changed.
package chart

import (
	"sort"

	"go.uber.org/zap"

	"gochart/internal/axis"
	"gochart/internal/coord"
	"gochart/internal/errs"
	"gochart/internal/geom"
	"gochart/internal/layout"
	"gochart/internal/legend"
	"gochart/internal/scale"
	"gochart/internal/source"
	"gochart/internal/tooltip"
)

// Options sizes a chart. Zero Metrics measure text for a 12px font.
type Options struct {
	Width, Height float64
	Padding       geom.Padding
	Metrics       layout.Metrics
	Logger        *zap.Logger
}

// Chart is a configured chart.
type Chart struct {
	opts Options
	log  *zap.Logger

	records   []source.Record
	scaleOpts map[string]scale.Options
	scales    map[string]scale.Scale
	legends   map[string]*legend.Controller
	dirty     bool

	x, y, color string
	coord       *coord.Coordinate

	axisCfg map[string]axis.Config
	axisOff map[string]bool
	axesOff bool

	legendCfg map[string]legend.Config
	legendOff bool

	tooltipCfg tooltip.Config
	tooltipOff bool
	session    *tooltip.Session

	rev   uint64
	frame *Frame
	key   frameKey
}

// New returns an empty chart on a rectangular coordinate.
func New(opts Options) *Chart {
	if opts.Metrics == (layout.Metrics{}) {
		opts.Metrics = layout.ForFont(12)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Chart{
		opts:      opts,
		log:       log,
		scaleOpts: map[string]scale.Options{},
		coord:     coord.New(coord.TypeRect, coord.Config{}),
		axisCfg:   map[string]axis.Config{},
		axisOff:   map[string]bool{},
		legendCfg: map[string]legend.Config{},
		session:   tooltip.NewSession(tooltip.Config{}),
		dirty:     true,
	}
}

func (c *Chart) changed(rescale bool) {
	c.rev++
	if rescale {
		c.dirty = true
	}
}

// Source replaces the records. scales, which may be nil, sets the options of
// the fields it names.
func (c *Chart) Source(records []source.Record, scales map[string]scale.Options) {
	c.records = records
	for f, o := range scales {
		c.scaleOpts[f] = o
	}
	c.changed(true)
}

// Records returns the bound records.
func (c *Chart) Records() []source.Record { return c.records }

// Scale sets the options of the scale of field.
func (c *Chart) Scale(field string, opts scale.Options) {
	c.scaleOpts[field] = opts
	c.changed(true)
}

// Position binds the fields placed along x and y.
func (c *Chart) Position(x, y string) {
	c.x, c.y = x, y
	c.changed(true)
}

// Color binds the field that picks mark colours and series.
func (c *Chart) Color(field string) {
	c.color = field
	c.changed(true)
}

// Fields returns the position and colour bindings.
func (c *Chart) Fields() (x, y, color string) { return c.x, c.y, c.color }

// Coord replaces the coordinate and returns it for chaining operations.
func (c *Chart) Coord(typ coord.Type, cfg coord.Config) *coord.Coordinate {
	c.coord = coord.New(typ, cfg)
	c.changed(false)
	return c.coord
}

// Coordinate returns the live coordinate.
func (c *Chart) Coordinate() *coord.Coordinate { return c.coord }

// Axis enables the axis of field, replacing its configuration when cfg is
// given.
func (c *Chart) Axis(field string, cfg ...axis.Config) error {
	if len(cfg) > 0 {
		if err := cfg[0].Validate(); err != nil {
			return err
		}
		c.axisCfg[field] = cfg[0]
	}
	delete(c.axisOff, field)
	c.axesOff = false
	c.changed(false)
	return nil
}

// DisableAxis hides the axis of field.
func (c *Chart) DisableAxis(field string) {
	c.axisOff[field] = true
	c.changed(false)
}

// DisableAxes hides every axis.
func (c *Chart) DisableAxes() {
	c.axesOff = true
	c.changed(false)
}

// Legend configures the legend of field. The colour field gets a legend
// with default options unless legends are disabled.
func (c *Chart) Legend(field string, cfg ...legend.Config) {
	var lc legend.Config
	if len(cfg) > 0 {
		lc = cfg[0]
	}
	c.legendCfg[field] = lc
	c.legendOff = false
	c.changed(true)
}

// DisableLegend removes every legend and its filtering.
func (c *Chart) DisableLegend() {
	c.legendOff = true
	c.changed(true)
}

// Tooltip enables the tooltip with cfg.
func (c *Chart) Tooltip(cfg tooltip.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.tooltipCfg = cfg
	c.tooltipOff = false
	c.session = tooltip.NewSession(cfg)
	c.changed(false)
	return nil
}

// DisableTooltip stops pointer events from resolving.
func (c *Chart) DisableTooltip() {
	c.tooltipOff = true
	c.session.Leave()
}

// Resize changes the container size.
func (c *Chart) Resize(width, height float64) {
	c.opts.Width, c.opts.Height = width, height
}

// Size returns the container size.
func (c *Chart) Size() (width, height float64) { return c.opts.Width, c.opts.Height }

// Metrics returns the text metrics used for layout.
func (c *Chart) Metrics() layout.Metrics { return c.opts.Metrics }

// SetMetrics changes the text metrics, e.g. when a chart built for pixels
// is drawn on a terminal grid.
func (c *Chart) SetMetrics(m layout.Metrics) {
	c.opts.Metrics = m
	c.changed(false)
}

// ScaleFor returns the scale of field, building scales if needed.
func (c *Chart) ScaleFor(field string) (scale.Scale, error) {
	if err := c.ensureScales(); err != nil {
		return nil, err
	}
	s, ok := c.scales[field]
	if !ok {
		return nil, errs.Mismatch(field, nil, errs.ErrMissingField)
	}
	return s, nil
}

// LegendFor returns the legend controller of field, nil when there is none.
func (c *Chart) LegendFor(field string) *legend.Controller {
	if err := c.ensureScales(); err != nil {
		return nil
	}
	return c.legends[field]
}

// LegendFields returns the fields carrying a legend, sorted.
func (c *Chart) LegendFields() []string {
	if err := c.ensureScales(); err != nil {
		return nil
	}
	return sortedKeys(c.legends)
}

// fields lists every field that needs a scale.
func (c *Chart) fields() []string {
	seen := map[string]bool{}
	var out []string
	add := func(f string) {
		if f != "" && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	add(c.x)
	add(c.y)
	add(c.color)
	if !c.legendOff {
		for _, f := range sortedKeys(c.legendCfg) {
			add(f)
		}
	}
	return out
}

func (c *Chart) column(field string) []any {
	out := make([]any, len(c.records))
	for i, r := range c.records {
		out[i] = r[field]
	}
	return out
}

// ensureScales rebuilds scales and legends after a data or binding change.
func (c *Chart) ensureScales() error {
	if !c.dirty {
		return nil
	}
	scales := map[string]scale.Scale{}
	for _, f := range c.fields() {
		s, err := scale.New(f, c.column(f), c.scaleOpts[f])
		if err != nil {
			return err
		}
		scales[f] = s
	}

	legends := map[string]*legend.Controller{}
	if !c.legendOff {
		for _, f := range c.fields() {
			cfg, explicit := c.legendCfg[f]
			if !explicit && f != c.color {
				continue
			}
			o, ordinal := scales[f].(*scale.Ordinal)
			if !ordinal {
				if explicit {
					return errs.Config("legend", errs.ErrUnsupported, "field ", f, " is not categorical")
				}
				continue
			}
			ctl, err := legend.New(f, o, cfg)
			if err != nil {
				return err
			}
			legends[f] = ctl
		}
	}
	c.scales, c.legends = scales, legends
	c.dirty = false
	c.log.Debug("scales built", zap.Int("fields", len(scales)), zap.Int("legends", len(legends)), zap.Int("records", len(c.records)))
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
