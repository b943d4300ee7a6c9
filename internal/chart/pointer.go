package chart

import (
	"go.uber.org/zap"

	"gochart/internal/geom"
	"gochart/internal/legend"
	"gochart/internal/tooltip"
)

func (c *Chart) pointer(p geom.Point, fn func(*tooltip.Session, geom.Point) *tooltip.Result) *tooltip.Result {
	if c.tooltipOff {
		return nil
	}
	if _, err := c.Render(); err != nil {
		c.log.Debug("pointer ignored", zap.Error(err))
		return nil
	}
	return fn(c.session, p)
}

// PointerEnter starts a tooltip session at the pixel p.
func (c *Chart) PointerEnter(p geom.Point) *tooltip.Result {
	return c.pointer(p, (*tooltip.Session).Enter)
}

// PointerMove moves the pointer to p and returns the tooltip shown there.
func (c *Chart) PointerMove(p geom.Point) *tooltip.Result {
	return c.pointer(p, (*tooltip.Session).Move)
}

// PointerClick toggles the legend entry under p, or resolves a click
// tooltip when p misses every legend.
func (c *Chart) PointerClick(p geom.Point) *tooltip.Result {
	if f, err := c.Render(); err == nil {
		for _, l := range f.Legends {
			if v, ok := legend.HitTest(l.Items, p); ok {
				if _, err := c.legends[l.Field].Toggle(v); err != nil {
					c.log.Warn("legend toggle failed", zap.String("field", l.Field), zap.Error(err))
				}
				return nil
			}
		}
	}
	return c.pointer(p, (*tooltip.Session).Click)
}

// PointerShow resolves at p whatever the trigger, for keyboard focus.
func (c *Chart) PointerShow(p geom.Point) *tooltip.Result {
	return c.pointer(p, (*tooltip.Session).Show)
}

// PointerLeave ends the tooltip session.
func (c *Chart) PointerLeave() {
	c.session.Leave()
}

// Shown returns the tooltip currently shown, if any.
func (c *Chart) Shown() *tooltip.Result {
	if c.tooltipOff {
		return nil
	}
	return c.session.Last()
}
