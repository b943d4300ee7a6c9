package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"gochart/internal/axis"
	"gochart/internal/chart"
	"gochart/internal/coord"
	"gochart/internal/errs"
	"gochart/internal/layout"
	"gochart/internal/legend"
	"gochart/internal/scale"
	"gochart/internal/source"
	"gochart/internal/style"
	"gochart/internal/tooltip"
)

const (
	defaultWidth  = 640
	defaultHeight = 400
)

// Build creates the chart described by f.
func Build(f *File, log *zap.Logger) (*chart.Chart, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pad, err := f.padding()
	if err != nil {
		return nil, err
	}
	opts := chart.Options{
		Width:   f.Width,
		Height:  f.Height,
		Padding: pad,
		Logger:  log,
	}
	if opts.Width == 0 {
		opts.Width = defaultWidth
	}
	if opts.Height == 0 {
		opts.Height = defaultHeight
	}
	if f.FontSize > 0 {
		opts.Metrics = layout.ForFont(f.FontSize)
	}
	c := chart.New(opts)

	records, err := f.records()
	if err != nil {
		return nil, err
	}
	scales := map[string]scale.Options{}
	for field, spec := range f.Scales {
		o, err := spec.options()
		if err != nil {
			return nil, fmt.Errorf("scale %q: %w", field, err)
		}
		scales[field] = o
	}
	c.Source(records, scales)
	c.Position(f.Position.X, f.Position.Y)
	if f.Position.Color != "" {
		c.Color(f.Position.Color)
	}

	if err := f.Coord.apply(c); err != nil {
		return nil, err
	}
	if err := f.applyAxes(c); err != nil {
		return nil, err
	}
	if err := f.applyLegend(c); err != nil {
		return nil, err
	}
	if t := f.Tooltip; t != nil {
		if !enabled(t.Enabled) {
			c.DisableTooltip()
		} else if err := c.Tooltip(tooltip.Config{
			TriggerOn:  tooltip.Trigger(t.TriggerOn),
			Shared:     t.Shared,
			Crosshairs: tooltip.Crosshair(t.Crosshairs),
			ShowTitle:  t.ShowTitle,
			TitleField: t.TitleField,
		}); err != nil {
			return nil, err
		}
	}
	log.Debug("chart built",
		zap.String("x", f.Position.X),
		zap.String("y", f.Position.Y),
		zap.String("color", f.Position.Color),
		zap.Int("records", len(records)))
	return c, nil
}

// records loads the data file, then appends inline rows.
func (f *File) records() ([]source.Record, error) {
	var out []source.Record
	if f.Data != "" {
		path := f.Data
		if !filepath.IsAbs(path) {
			path = filepath.Join(f.Dir, path)
		}
		d, err := source.LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, d.Records...)
	}
	for _, row := range f.Rows {
		rec := make(source.Record, len(row))
		for k, v := range row {
			rec[k] = normalize(v)
		}
		out = append(out, rec)
	}
	return out, nil
}

// normalize brings decoded YAML and TOML values to the types the scales
// expect: float64 numbers and time.Time dates.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case string:
		if t, ok := scale.ParseTime(x); ok {
			return t
		}
		return x
	case toml.LocalDate:
		return x.AsTime(time.UTC)
	case toml.LocalDateTime:
		return x.AsTime(time.UTC)
	}
	return v
}

func (s ScaleSpec) options() (scale.Options, error) {
	typ, err := scale.ParseType(s.Type)
	if err != nil {
		return scale.Options{}, err
	}
	o := scale.Options{
		Type:      typ,
		Alias:     s.Alias,
		Min:       s.Min,
		Max:       s.Max,
		Values:    s.Values,
		Nice:      s.Nice,
		TickCount: s.TickCount,
		Band:      s.Band,
	}
	if s.Format != "" {
		format := s.Format
		o.Formatter = func(v any) string {
			if f, ok := scale.ToFloat(v); ok {
				return fmt.Sprintf(format, f)
			}
			return scale.Key(v)
		}
	}
	return o, nil
}

func degrees(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := coord.DegToRad(*v)
	return &r
}

func (s CoordSpec) apply(c *chart.Chart) error {
	typ, err := coord.ParseType(s.Type)
	if err != nil {
		return err
	}
	cfg := coord.Config{StartAngle: degrees(s.StartAngle), EndAngle: degrees(s.EndAngle)}
	if s.Radius != nil {
		cfg.Radius = *s.Radius
	}
	if s.InnerRadius != nil {
		cfg.InnerRadius = *s.InnerRadius
	}
	co := c.Coord(typ, cfg)
	for i, t := range s.Transforms {
		switch coord.OpKind(t.Op) {
		case coord.OpRotate:
			co.Rotate(t.Angle)
		case coord.OpScale:
			co.Scale(t.X, t.Y)
		case coord.OpReflect:
			co.Reflect(t.Axis)
		case coord.OpTranspose:
			co.Transpose()
		default:
			return errs.Config("coord", errs.ErrUnsupported, fmt.Sprintf("transform %d: op %q", i, t.Op))
		}
	}
	return co.Validate()
}

func (f *File) applyAxes(c *chart.Chart) error {
	if f.HideAxes {
		c.DisableAxes()
		return nil
	}
	for field, spec := range f.Axes {
		if !enabled(spec.Enabled) {
			c.DisableAxis(field)
			continue
		}
		dim := axis.X
		if field == f.Position.Y && field != f.Position.X {
			dim = axis.Y
		}
		cfg, err := spec.config(dim)
		if err != nil {
			return fmt.Errorf("axis %q: %w", field, err)
		}
		if err := c.Axis(field, cfg); err != nil {
			return fmt.Errorf("axis %q: %w", field, err)
		}
	}
	return nil
}

// config overrides the default axis of dim with the spec.
func (s AxisSpec) config(dim axis.Dim) (axis.Config, error) {
	cfg := axis.Default(dim)
	if s.Position != "" {
		p, err := layout.ParsePosition(s.Position)
		if err != nil {
			return cfg, err
		}
		cfg.Position = p
	}
	if s.Title != nil {
		cfg.Title = &axis.Title{Text: s.Title.Text, Position: s.Title.Position, Offset: s.Title.Offset}
	}
	if l := s.Label; l != nil {
		label := *cfg.Label
		if l.Offset != nil {
			label.Offset = *l.Offset
		}
		label.Rotate = l.Rotate
		if l.AutoRotate != nil {
			label.AutoRotate = *l.AutoRotate
		}
		cfg.Label = &label
	}
	if s.Line != nil {
		cfg.Line = nil
		if *s.Line {
			cfg.Line = &axis.Line{}
		}
	}
	if s.TickLength != nil {
		cfg.TickLine = nil
		if *s.TickLength > 0 {
			cfg.TickLine = &axis.TickLine{Length: *s.TickLength}
		}
	}
	cfg.SubTickCount = s.SubTickCount
	if s.SubTickCount > 0 {
		cfg.SubTickLine = &axis.TickLine{Length: 2}
	}
	if g := s.Grid; g != nil {
		cfg.Grid = nil
		if enabled(g.Enabled) {
			cfg.Grid = &axis.Grid{Align: g.Align, HideFirstLine: g.HideFirstLine, HideLastLine: g.HideLastLine}
		}
	}
	return cfg, cfg.Validate()
}

func (f *File) applyLegend(c *chart.Chart) error {
	l := f.Legend
	if l == nil {
		return nil
	}
	if !enabled(l.Enabled) {
		c.DisableLegend()
		return nil
	}
	field := l.Field
	if field == "" {
		field = f.Position.Color
	}
	if field == "" {
		return errs.Config("legend", errs.ErrUnsupported, "no field to describe")
	}
	cfg := legend.Config{
		SelectedMode:     legend.SelectedMode(l.SelectedMode),
		AllowAllCanceled: l.AllowAllCanceled,
		UnCheckColor:     l.UnCheckColor,
		Colors:           l.Colors,
	}
	if l.Position != "" {
		p, err := layout.ParsePosition(l.Position)
		if err != nil {
			return err
		}
		cfg.Position = p
	}
	if l.Marker != "" {
		cfg.Marker = style.Static(l.Marker)
	}
	for _, it := range l.Items {
		cfg.Items = append(cfg.Items, legend.Item{Value: it.Value, Name: it.Name, Color: it.Color, Marker: it.Marker})
	}
	c.Legend(field, cfg)
	if len(l.Unchecked) == 0 {
		return nil
	}
	ctl := c.LegendFor(field)
	if ctl == nil {
		_, err := c.ScaleFor(field)
		if err == nil {
			err = errs.Config("legend", errs.ErrUnsupported, "field ", field, " is not categorical")
		}
		return err
	}
	for _, v := range l.Unchecked {
		if _, err := ctl.SetChecked(v, false); err != nil {
			return err
		}
	}
	return nil
}
