// Package legend keeps the checked state of the categories of one field and
// pushes the checked subset into the field's ordinal scale.
package legend

import (
	"gochart/internal/errs"
	"gochart/internal/layout"
	"gochart/internal/scale"
	"gochart/internal/style"
)

// SelectedMode controls how Toggle treats the other entries.
type SelectedMode string

const (
	Multiple SelectedMode = "multiple"
	Single   SelectedMode = "single"
)

// Config configures a legend. The zero value is a multiple-selection
// legend at the bottom that refuses to uncheck its last entry.
type Config struct {
	Position     layout.Position
	SelectedMode SelectedMode
	// AllowAllCanceled lets the last checked entry be unchecked too.
	AllowAllCanceled bool
	// Items replaces the categories derived from the scale.
	Items         []Item
	ItemFormatter func(value string) string
	Marker        style.Value[string]
	// UnCheckColor is the swatch colour of unchecked entries.
	UnCheckColor string
	// Colors overrides the default palette, in category order.
	Colors []string
}

// Item is one legend entry.
type Item struct {
	Value   string
	Name    string
	Marker  string
	Color   string
	Checked bool
}

const defaultUnCheckColor = "#bfbfbf"

// Controller owns the checked state of one legend.
type Controller struct {
	field     string
	scale     *scale.Ordinal
	cfg       Config
	order     []string
	checked   map[string]bool
	colors    map[string]string
	listeners []func(active []string)
}

// New binds a legend to the ordinal scale of field. Every entry starts
// checked unless explicit Items mark some of them Checked, in which case
// exactly those do.
func New(field string, s *scale.Ordinal, cfg Config) (*Controller, error) {
	if s == nil {
		return nil, errs.Config("legend", errs.ErrUnsupported, "field ", field, " is not categorical")
	}
	switch cfg.SelectedMode {
	case "":
		cfg.SelectedMode = Multiple
	case Multiple, Single:
	default:
		return nil, errs.Config("legend", errs.ErrUnsupported, "selectedMode ", cfg.SelectedMode)
	}
	if cfg.Position == "" {
		cfg.Position = layout.Bottom
	} else if _, err := layout.ParsePosition(string(cfg.Position)); err != nil {
		return nil, errs.Config("legend", errs.ErrUnsupported, "position ", cfg.Position)
	}
	if cfg.UnCheckColor == "" {
		cfg.UnCheckColor = defaultUnCheckColor
	}

	c := &Controller{field: field, scale: s, cfg: cfg, checked: map[string]bool{}}
	if len(cfg.Items) > 0 {
		for _, it := range cfg.Items {
			c.order = append(c.order, it.Value)
		}
	} else {
		c.order = s.Values()
	}
	palette := cfg.Colors
	if len(palette) < len(c.order) {
		palette = append(append([]string(nil), palette...), Palette(len(c.order))[len(palette):]...)
	}
	seeded := false
	for _, it := range cfg.Items {
		seeded = seeded || it.Checked
	}
	c.colors = make(map[string]string, len(c.order))
	for i, v := range c.order {
		c.colors[v] = palette[i]
		c.checked[v] = !seeded
	}
	for _, it := range cfg.Items {
		if it.Color != "" {
			c.colors[it.Value] = it.Color
		}
		if it.Checked {
			c.checked[it.Value] = true
		}
	}
	c.apply()
	return c, nil
}

func (c *Controller) Field() string { return c.field }

// Config returns the configuration with defaults applied.
func (c *Controller) Config() Config { return c.cfg }

// Position returns the side the legend is attached to.
func (c *Controller) Position() layout.Position {
	p, _ := layout.ParsePosition(string(c.cfg.Position))
	return p
}

// Checked reports whether value is checked.
func (c *Controller) Checked(value string) bool { return c.checked[value] }

// Color returns the palette colour of value regardless of its state.
func (c *Controller) Color(value string) string { return c.colors[value] }

// Active returns the checked values in legend order.
func (c *Controller) Active() []string {
	var out []string
	for _, v := range c.order {
		if c.checked[v] {
			out = append(out, v)
		}
	}
	return out
}

// Toggle flips value. In single mode checking value unchecks every other
// entry. Unchecking the last checked entry is refused unless
// AllowAllCanceled is set. It reports whether the state changed.
func (c *Controller) Toggle(value string) (bool, error) {
	if _, ok := c.checked[value]; !ok {
		return false, errs.Mismatch(c.field, value, errs.ErrUnknownCategory)
	}
	active := c.Active()
	alone := len(active) == 1 && active[0] == value
	if c.cfg.SelectedMode == Single && !alone {
		for _, v := range c.order {
			c.checked[v] = v == value
		}
		c.apply()
		return true, nil
	}
	if c.checked[value] && alone && !c.cfg.AllowAllCanceled {
		return false, nil
	}
	c.checked[value] = !c.checked[value]
	c.apply()
	return true, nil
}

// SetChecked forces the state of value, subject to the same
// AllowAllCanceled gate as Toggle.
func (c *Controller) SetChecked(value string, checked bool) (bool, error) {
	cur, ok := c.checked[value]
	if !ok {
		return false, errs.Mismatch(c.field, value, errs.ErrUnknownCategory)
	}
	if cur == checked {
		return false, nil
	}
	return c.Toggle(value)
}

// Reset checks every entry.
func (c *Controller) Reset() {
	for _, v := range c.order {
		c.checked[v] = true
	}
	c.apply()
}

// OnChange registers fn to run after every state change.
func (c *Controller) OnChange(fn func(active []string)) {
	c.listeners = append(c.listeners, fn)
}

// Items returns the resolved entries in order.
func (c *Controller) Items() []Item {
	byValue := map[string]Item{}
	for _, it := range c.cfg.Items {
		byValue[it.Value] = it
	}
	out := make([]Item, 0, len(c.order))
	for i, v := range c.order {
		it := byValue[v]
		it.Value = v
		if it.Name == "" {
			it.Name = v
			if c.cfg.ItemFormatter != nil {
				it.Name = c.cfg.ItemFormatter(v)
			}
		}
		ctx := style.Context{Field: c.field, Value: v, Text: it.Name, Index: i}
		if it.Marker == "" {
			it.Marker = c.cfg.Marker.Or(ctx, "circle")
		}
		it.Checked = c.checked[v]
		it.Color = c.colors[v]
		if !it.Checked {
			it.Color = c.cfg.UnCheckColor
		}
		out = append(out, it)
	}
	return out
}

// apply filters the scale down to the checked entries. Scale values the
// legend does not list stay active.
func (c *Controller) apply() {
	var keep []string
	for _, v := range c.scale.Values() {
		if on, listed := c.checked[v]; on || !listed {
			keep = append(keep, v)
		}
	}
	c.scale.SetActive(keep)
	active := c.Active()
	for _, fn := range c.listeners {
		fn(active)
	}
}
