package scale

import (
	"math"

	mscale "github.com/aclements/go-moremath/scale"

	"gochart/internal/errs"
	"gochart/internal/geom"
)

// Linear is a continuous scale over numbers.
type Linear struct {
	common
	s mscale.Linear
}

// NewLinear derives the domain [min, max] of values, applies the Min/Max
// overrides and, when requested, nices the bounds that were not fixed.
func NewLinear(field string, values []any, opts Options) (*Linear, error) {
	var ext geom.Extent
	for _, v := range values {
		if f, ok := ToFloat(v); ok {
			ext.Add(f)
		}
	}
	min, max, err := continuousDomain(field, ext, opts)
	if err != nil {
		return nil, err
	}
	l := &Linear{common: common{field: field, opts: opts}, s: mscale.Linear{Min: min, Max: max}}
	if opts.Nice {
		// Nice needs room for both rounded bounds.
		n := opts.tickCount()
		if n < 2 {
			n = 2
		}
		l.s.Nice(mscale.TickOptions{Max: n})
		if opts.Min != nil {
			l.s.Min = *opts.Min
		}
		if opts.Max != nil {
			l.s.Max = *opts.Max
		}
	}
	return l, nil
}

// continuousDomain resolves the domain shared by linear and time scales.
// A single distinct value is widened by one unit each side so that it maps
// to the middle of the range.
func continuousDomain(field string, ext geom.Extent, opts Options) (min, max float64, err error) {
	if !ext.Valid() && (opts.Min == nil || opts.Max == nil) {
		return 0, 0, errs.Mismatch(field, nil, errs.ErrEmptyDomain)
	}
	min, max = ext.Min, ext.Max
	if opts.Min != nil {
		min = *opts.Min
	}
	if opts.Max != nil {
		max = *opts.Max
	}
	if min > max {
		return 0, 0, errs.Config("scale", errs.ErrInvertedDomain, field)
	}
	if min == max {
		if opts.Min == nil {
			min--
		}
		if opts.Max == nil {
			max++
		}
		if min == max {
			return 0, 0, errs.Config("scale", errs.ErrEmptyDomain, field, ": min equals max")
		}
	}
	return min, max, nil
}

func (l *Linear) Type() Type       { return TypeLinear }
func (l *Linear) Revision() uint64 { return 0 }

// Domain returns the effective bounds after niceing.
func (l *Linear) Domain() (float64, float64) {
	return l.s.Min, l.s.Max
}

// Map interpolates v; values outside the domain extrapolate.
func (l *Linear) Map(v any) (float64, error) {
	if err := l.missing(v); err != nil {
		return 0, err
	}
	f, ok := ToFloat(v)
	if !ok {
		return 0, errs.Mismatch(l.field, v, errs.ErrNotNumeric)
	}
	return l.s.Map(f), nil
}

// Invert returns the float64 at unit position t.
func (l *Linear) Invert(t float64) any {
	return l.s.Unmap(t)
}

func (l *Linear) Ticks() []Tick {
	major, _ := l.s.Ticks(mscale.TickOptions{Max: l.opts.tickCount()})
	return l.ticksFrom(major)
}

func (l *Linear) ticksFrom(major []float64) []Tick {
	eps := (l.s.Max - l.s.Min) * 1e-9
	ticks := make([]Tick, 0, len(major))
	for _, v := range major {
		if v < l.s.Min-eps || v > l.s.Max+eps {
			continue
		}
		// Snap float noise such as 0.30000000000000004.
		if math.Abs(v) < eps {
			v = 0
		}
		ticks = append(ticks, Tick{Value: v, Text: l.Text(v), T: l.s.Map(v)})
	}
	return ticks
}

func (l *Linear) Text(v any) string {
	if l.opts.Formatter != nil {
		return l.opts.Formatter(v)
	}
	if f, ok := ToFloat(v); ok {
		return formatNumber(f)
	}
	return Key(v)
}
