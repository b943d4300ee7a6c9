package scale

import (
	"math"
	"time"

	mscale "github.com/aclements/go-moremath/scale"

	"gochart/internal/errs"
	"gochart/internal/geom"
)

// Time is a continuous scale over instants. Internally it is linear in
// Unix seconds.
type Time struct {
	common
	s   mscale.Linear
	loc *time.Location
}

// NewTime accepts time.Time values, date strings and numbers holding Unix
// milliseconds.
func NewTime(field string, values []any, opts Options) (*Time, error) {
	var ext geom.Extent
	var loc *time.Location
	for _, v := range values {
		if t, ok := toTime(v); ok {
			if loc == nil {
				loc = t.Location()
			}
			ext.Add(unixSeconds(t))
		}
	}
	min, max, err := continuousDomain(field, ext, opts)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	t := &Time{common: common{field: field, opts: opts}, s: mscale.Linear{Min: min, Max: max}, loc: loc}
	if opts.Nice {
		t.nice()
	}
	return t, nil
}

// nice widens the unpinned bounds to the calendar step the ticks would
// use over the widened domain.
func (t *Time) nice() {
	o := t.tickOptions(max(2, t.opts.tickCount()))
	level, ok := o.FindLevel(timeTicker{t: t, roundOut: true}, 0)
	if !ok {
		level = len(timeSteps) - 1
	}
	step := timeSteps[level]
	if t.opts.Min == nil {
		t.s.Min = unixSeconds(t.floor(fromUnixSeconds(t.s.Min, t.loc), step))
	}
	if t.opts.Max == nil {
		t.s.Max = unixSeconds(t.ceil(fromUnixSeconds(t.s.Max, t.loc), step))
	}
}

func (t *Time) Type() Type       { return TypeTime }
func (t *Time) Revision() uint64 { return 0 }

// Domain returns the bounds in Unix seconds.
func (t *Time) Domain() (float64, float64) {
	return t.s.Min, t.s.Max
}

func (t *Time) Map(v any) (float64, error) {
	if err := t.missing(v); err != nil {
		return 0, err
	}
	tm, ok := toTime(v)
	if !ok {
		return 0, errs.Mismatch(t.field, v, errs.ErrNotNumeric)
	}
	return t.s.Map(unixSeconds(tm)), nil
}

// Invert returns the time.Time at unit position u.
func (t *Time) Invert(u float64) any {
	return fromUnixSeconds(t.s.Unmap(u), t.loc)
}

func (t *Time) Text(v any) string {
	if t.opts.Formatter != nil {
		return t.opts.Formatter(v)
	}
	tm, ok := toTime(v)
	if !ok {
		return Key(v)
	}
	return tm.In(t.loc).Format(t.layout())
}

// layout picks a format that distinguishes instants over the domain span.
func (t *Time) layout() string {
	span := time.Duration((t.s.Max - t.s.Min) * float64(time.Second))
	switch {
	case span >= 2*365*24*time.Hour:
		return "2006"
	case span >= 60*24*time.Hour:
		return "2006-01"
	case span >= 2*24*time.Hour:
		return "2006-01-02"
	case span >= 2*time.Hour:
		return "01-02 15:04"
	}
	return "15:04:05"
}

type timeStep struct {
	d      time.Duration
	months int
}

func (s timeStep) approx() time.Duration {
	if s.months > 0 {
		return time.Duration(s.months) * 28 * 24 * time.Hour
	}
	return s.d
}

var timeSteps = []timeStep{
	{d: time.Second}, {d: 5 * time.Second}, {d: 15 * time.Second}, {d: 30 * time.Second},
	{d: time.Minute}, {d: 5 * time.Minute}, {d: 15 * time.Minute}, {d: 30 * time.Minute},
	{d: time.Hour}, {d: 3 * time.Hour}, {d: 6 * time.Hour}, {d: 12 * time.Hour},
	{d: 24 * time.Hour}, {d: 48 * time.Hour}, {d: 7 * 24 * time.Hour},
	{months: 1}, {months: 3}, {months: 6}, {months: 12},
	{months: 24}, {months: 60}, {months: 120}, {months: 600},
}

func (t *Time) tickOptions(count int) mscale.TickOptions {
	return mscale.TickOptions{Max: count, MinLevel: 0, MaxLevel: len(timeSteps) - 1}
}

// Ticks searches the step ladder for the finest calendar step that yields
// at most TickCount ticks.
func (t *Time) Ticks() []Tick {
	o := t.tickOptions(t.opts.tickCount())
	ticker := timeTicker{t: t}
	level, ok := o.FindLevel(ticker, 0)
	if !ok {
		level = len(timeSteps) - 1
	}
	var out []Tick
	for _, s := range ticker.TicksAtLevel(level).([]float64) {
		tm := fromUnixSeconds(s, t.loc)
		out = append(out, Tick{Value: tm, Text: t.Text(tm), T: t.s.Map(s)})
	}
	return out
}

// timeTicker levels index timeSteps. With roundOut the ticks run from the
// step boundary at or below the minimum to the one at or above the maximum.
type timeTicker struct {
	t        *Time
	roundOut bool
}

func (k timeTicker) step(level int) timeStep {
	return timeSteps[min(max(level, 0), len(timeSteps)-1)]
}

// CountTicks estimates the tick count from the step's nominal length so
// that fine steps over long spans are never enumerated.
func (k timeTicker) CountTicks(level int) int {
	n := (k.t.s.Max - k.t.s.Min) / k.step(level).approx().Seconds()
	if k.roundOut {
		return int(math.Ceil(n)) + 1
	}
	return int(n) + 1
}

func (k timeTicker) TicksAtLevel(level int) interface{} {
	min, max := k.t.s.Min, k.t.s.Max
	step := k.step(level)
	if k.roundOut {
		min = unixSeconds(k.t.floor(fromUnixSeconds(min, k.t.loc), step))
		max = unixSeconds(k.t.ceil(fromUnixSeconds(max, k.t.loc), step))
	}
	return k.t.stepTicks(step, min, max)
}

// floor returns the last step boundary at or before tm.
func (t *Time) floor(tm time.Time, step timeStep) time.Time {
	if step.months == 0 {
		return tm.Truncate(step.d)
	}
	y, m, _ := tm.Date()
	cur := time.Date(y, m, 1, 0, 0, 0, 0, t.loc)
	for (int(cur.Month())-1+12*cur.Year())%step.months != 0 {
		cur = cur.AddDate(0, -1, 0)
	}
	return cur
}

// ceil returns the first step boundary at or after tm.
func (t *Time) ceil(tm time.Time, step timeStep) time.Time {
	cur := t.floor(tm, step)
	if cur.Before(tm) {
		cur = next(cur, step)
	}
	return cur
}

func next(tm time.Time, step timeStep) time.Time {
	if step.months == 0 {
		return tm.Add(step.d)
	}
	return tm.AddDate(0, step.months, 0)
}

// stepTicks lists the step boundaries within [min, max] Unix seconds.
func (t *Time) stepTicks(step timeStep, min, max float64) []float64 {
	lo := fromUnixSeconds(min, t.loc)
	hi := fromUnixSeconds(max, t.loc)
	var out []float64
	for cur := t.ceil(lo, step); !cur.After(hi); cur = next(cur, step) {
		out = append(out, unixSeconds(cur))
		if len(out) > 10000 {
			break
		}
	}
	if len(out) == 0 {
		out = append(out, math.Round(min))
	}
	return out
}
