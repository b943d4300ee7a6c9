package scale

import (
	"math"

	"gochart/internal/errs"
)

// Ordinal is a discrete scale over categories. Categories keep the order
// of Options.Values, or first appearance in the data.
//
// The active subset, set by a legend, is the effective domain: inactive
// categories do not map and the remaining ones are spread over the range.
type Ordinal struct {
	common
	values []string
	active []string
	index  map[string]int
	rev    uint64
}

// NewOrdinal collects the distinct category keys of values.
func NewOrdinal(field string, values []any, opts Options) (*Ordinal, error) {
	var cats []string
	seen := map[string]bool{}
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			cats = append(cats, k)
		}
	}
	for _, v := range opts.Values {
		add(v)
	}
	if len(opts.Values) == 0 {
		for _, v := range values {
			if v != nil {
				add(Key(v))
			}
		}
	}
	if len(cats) == 0 {
		return nil, errs.Mismatch(field, nil, errs.ErrEmptyDomain)
	}
	o := &Ordinal{common: common{field: field, opts: opts}, values: cats}
	o.setActive(cats)
	return o, nil
}

func (o *Ordinal) Type() Type       { return TypeOrdinal }
func (o *Ordinal) Revision() uint64 { return o.rev }

// Band reports whether categories own equal-width bands.
func (o *Ordinal) Band() bool { return o.opts.Band }

// Values returns every category in domain order.
func (o *Ordinal) Values() []string {
	return append([]string(nil), o.values...)
}

// Active returns the categories of the effective domain.
func (o *Ordinal) Active() []string {
	return append([]string(nil), o.active...)
}

// Contains reports whether v is a category of the full domain, active or
// not.
func (o *Ordinal) Contains(v any) bool {
	if v == nil {
		return false
	}
	k := Key(v)
	for _, c := range o.values {
		if c == k {
			return true
		}
	}
	return false
}

// SetActive restricts the effective domain to the given categories, kept in
// domain order. Unknown categories are ignored.
func (o *Ordinal) SetActive(cats []string) {
	o.setActive(cats)
	o.rev++
}

func (o *Ordinal) setActive(cats []string) {
	want := make(map[string]bool, len(cats))
	for _, c := range cats {
		want[c] = true
	}
	o.active = o.active[:0]
	o.index = make(map[string]int, len(cats))
	for _, c := range o.values {
		if want[c] {
			o.index[c] = len(o.active)
			o.active = append(o.active, c)
		}
	}
}

// Step is the unit distance between neighbouring categories: the band
// width in band mode.
func (o *Ordinal) Step() float64 {
	n := len(o.active)
	if o.opts.Band {
		return 1 / math.Max(1, float64(n))
	}
	return 1 / math.Max(1, float64(n-1))
}

// Map returns index/max(1,n-1), or the band centre (index+0.5)/n.
func (o *Ordinal) Map(v any) (float64, error) {
	if err := o.missing(v); err != nil {
		return 0, err
	}
	i, ok := o.index[Key(v)]
	if !ok {
		return 0, errs.Mismatch(o.field, v, errs.ErrUnknownCategory)
	}
	n := float64(len(o.active))
	if o.opts.Band {
		return (float64(i) + 0.5) / n, nil
	}
	return float64(i) / math.Max(1, n-1), nil
}

// Invert returns the category whose point or band is nearest to t, or nil
// when no category is active.
func (o *Ordinal) Invert(t float64) any {
	n := len(o.active)
	if n == 0 {
		return nil
	}
	var i int
	if o.opts.Band {
		i = int(math.Floor(t * float64(n)))
	} else {
		i = int(math.Round(t * float64(n-1)))
	}
	i = max(0, min(n-1, i))
	return o.active[i]
}

func (o *Ordinal) Ticks() []Tick {
	ticks := make([]Tick, 0, len(o.active))
	for _, c := range o.active {
		t, _ := o.Map(c)
		ticks = append(ticks, Tick{Value: c, Text: o.Text(c), T: t})
	}
	return ticks
}

func (o *Ordinal) Text(v any) string {
	if o.opts.Formatter != nil {
		return o.opts.Formatter(v)
	}
	return Key(v)
}
