// Package scale maps the values of one data field onto the unit range
// [0, 1] and back.
//
// Continuous scales (linear, time) interpolate and extrapolate. Discrete
// (ordinal) scales place each category on a point or at the centre of a
// band. A Scale is shared by pointer between the chart, its axes, legends
// and tooltip; only the legend mutates it, through Ordinal.SetActive.
package scale

import (
	"strings"
	"time"

	"gochart/internal/errs"
)

// Type names a scale variant.
type Type string

const (
	TypeLinear   Type = "linear"
	TypeTime     Type = "time"
	TypeOrdinal  Type = "ordinal"
	TypeIdentity Type = "identity"
)

// ParseType accepts the canonical names plus the "cat"/"category" aliases
// for ordinal scales.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "linear":
		return TypeLinear, nil
	case "time", "timecat":
		return TypeTime, nil
	case "ordinal", "cat", "category":
		return TypeOrdinal, nil
	case "identity":
		return TypeIdentity, nil
	}
	return "", errs.Config("scale", errs.ErrUnsupported, "type ", s)
}

const defaultTickCount = 5

// Options configures a scale. Zero values select defaults.
type Options struct {
	// Type overrides type inference.
	Type Type
	// Alias is the display name used for titles and tooltips.
	Alias string
	// Min and Max override the continuous domain bounds. For time scales
	// they are Unix seconds.
	Min, Max *float64
	// Values fixes the category order of an ordinal scale.
	Values []string
	// Nice expands a continuous domain outwards to round tick values.
	Nice bool
	// TickCount is the maximum number of ticks; 5 when zero.
	TickCount int
	// Band places ordinal categories at band centres instead of points.
	Band bool
	// Formatter renders tick and tooltip text.
	Formatter func(v any) string
}

func (o Options) tickCount() int {
	if o.TickCount > 0 {
		return o.TickCount
	}
	return defaultTickCount
}

// Tick is one tick of a scale.
type Tick struct {
	Value any
	Text  string
	// T is the tick position in the unit range.
	T float64
}

// Scale is implemented by *Linear, *Time, *Ordinal and *Identity.
type Scale interface {
	Field() string
	Type() Type
	// Alias returns the display name, falling back to the field.
	Alias() string
	// Map returns the position of v in the unit range. A
	// *errs.DataMismatchError reports a value that cannot be placed.
	Map(v any) (float64, error)
	// Invert returns the domain value nearest to the unit position t.
	Invert(t float64) any
	Ticks() []Tick
	Text(v any) string
	// Revision changes whenever the effective domain changes.
	Revision() uint64
}

// Continuous is implemented by scales with a numeric domain.
type Continuous interface {
	Scale
	Domain() (min, max float64)
}

// New builds a scale for field from its raw values.
func New(field string, values []any, opts Options) (Scale, error) {
	typ := opts.Type
	if typ == "" {
		typ = Infer(values)
	}
	switch typ {
	case TypeLinear:
		return NewLinear(field, values, opts)
	case TypeTime:
		return NewTime(field, values, opts)
	case TypeOrdinal:
		return NewOrdinal(field, values, opts)
	case TypeIdentity:
		return NewIdentity(field, values, opts)
	}
	return nil, errs.Config("scale", errs.ErrUnsupported, "type ", typ)
}

// Infer picks a type from the shape of values: all times give time, and
// values that are mostly numbers or numeric strings give linear, leaving
// the stray ones to be reported by Map. Anything else gives ordinal. Nil
// values are skipped; no values at all gives linear.
func Infer(values []any) Type {
	var seen, numbers int
	temporal := true
	for _, v := range values {
		if v == nil {
			continue
		}
		seen++
		if _, ok := v.(time.Time); !ok {
			temporal = false
		}
		if isNumeric(v) {
			numbers++
		}
	}
	switch {
	case seen == 0:
		return TypeLinear
	case temporal:
		return TypeTime
	case 2*numbers > seen:
		return TypeLinear
	}
	return TypeOrdinal
}

func isNumeric(v any) bool {
	if s, ok := v.(string); ok {
		_, ok = ToFloat(s)
		return ok
	}
	return isNumber(v)
}

type common struct {
	field string
	opts  Options
}

func (c *common) Field() string { return c.field }

func (c *common) Alias() string {
	if c.opts.Alias != "" {
		return c.opts.Alias
	}
	return c.field
}

func (c *common) missing(v any) error {
	if v == nil {
		return errs.Mismatch(c.field, nil, errs.ErrMissingField)
	}
	return nil
}
