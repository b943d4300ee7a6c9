package legend

import (
	"math"

	"gochart/internal/geom"
	"gochart/internal/layout"
)

// Placed is an item with its hit box inside the legend region.
type Placed struct {
	Item
	Box geom.Rect
}

// markerCells is the marker width plus its gap, in characters.
const markerCells = 2

// itemGap separates entries laid out in a row, in characters.
const itemGap = 2

func itemWidth(it Item, m layout.Metrics) float64 {
	w, _ := m.Text(it.Name)
	return w + markerCells*m.CharWidth
}

// Measure returns the box the legend needs. Top and bottom legends flow in
// rows no wider than avail; left and right legends stack one entry per row.
func (c *Controller) Measure(m layout.Metrics, avail float64) layout.Box {
	items := c.Items()
	b := layout.Box{Position: c.Position()}
	if len(items) == 0 {
		return b
	}
	if !b.Position.Horizontal() {
		for _, it := range items {
			b.Width = math.Max(b.Width, itemWidth(it, m))
		}
		b.Width += m.CharWidth
		b.Height = float64(len(items)) * m.LineHeight
		return b
	}
	rows := flow(items, m, avail)
	for _, r := range rows {
		b.Width = math.Max(b.Width, r.width)
	}
	b.Height = float64(len(rows)) * m.LineHeight
	return b
}

// Place lays the items out inside region, which Layout produced from the
// box returned by Measure.
func (c *Controller) Place(region geom.Rect, m layout.Metrics) []Placed {
	items := c.Items()
	var out []Placed
	if !c.Position().Horizontal() {
		for i, it := range items {
			out = append(out, Placed{Item: it, Box: geom.Rect{
				X: region.X, Y: region.Y + float64(i)*m.LineHeight,
				Width: itemWidth(it, m), Height: m.LineHeight,
			}})
		}
		return out
	}
	for ri, r := range flow(items, m, region.Width) {
		x := region.X + (region.Width-r.width)/2
		y := region.Y + float64(ri)*m.LineHeight
		for _, it := range r.items {
			w := itemWidth(it, m)
			out = append(out, Placed{Item: it, Box: geom.Rect{X: x, Y: y, Width: w, Height: m.LineHeight}})
			x += w + itemGap*m.CharWidth
		}
	}
	return out
}

// HitTest returns the value of the entry under p.
func HitTest(placed []Placed, p geom.Point) (string, bool) {
	for _, pl := range placed {
		if pl.Box.Contains(p) {
			return pl.Value, true
		}
	}
	return "", false
}

type row struct {
	items []Item
	width float64
}

func flow(items []Item, m layout.Metrics, avail float64) []row {
	var rows []row
	var cur row
	gap := itemGap * m.CharWidth
	for _, it := range items {
		w := itemWidth(it, m)
		if len(cur.items) > 0 && avail > 0 && cur.width+gap+w > avail {
			rows = append(rows, cur)
			cur = row{}
		}
		if len(cur.items) > 0 {
			cur.width += gap
		}
		cur.items = append(cur.items, it)
		cur.width += w
	}
	if len(cur.items) > 0 {
		rows = append(rows, cur)
	}
	return rows
}
