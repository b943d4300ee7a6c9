package layout

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Metrics estimates text extents in plot units. One terminal column is
// CharWidth wide; one line of text is LineHeight high.
type Metrics struct {
	CharWidth  float64
	LineHeight float64
}

// ForFont approximates a proportional font of the given pixel size.
func ForFont(size float64) Metrics {
	return Metrics{CharWidth: size * 0.6, LineHeight: size * 1.2}
}

// Cells is one unit per terminal cell.
var Cells = Metrics{CharWidth: 1, LineHeight: 1}

// Text returns the unrotated width and height of s. Wide runes count twice.
func (m Metrics) Text(s string) (w, h float64) {
	if s == "" {
		return 0, 0
	}
	return float64(runewidth.StringWidth(s)) * m.CharWidth, m.LineHeight
}

// Rotated returns the bounding box of a w by h box turned by deg degrees.
func Rotated(w, h, deg float64) (bw, bh float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	return w*cos + h*sin, w*sin + h*cos
}

// AxisExtent describes what an axis draws outside the plot edge.
type AxisExtent struct {
	Labels     []string
	Rotate     float64 // degrees
	TickLength float64
	Offset     float64 // gap between tick and label
	Title      string
	TitleGap   float64
}

// AxisThickness is the space an axis at pos needs across the plot edge.
func (m Metrics) AxisThickness(pos Position, e AxisExtent) float64 {
	var across float64
	for _, s := range e.Labels {
		w, h := m.Text(s)
		w, h = Rotated(w, h, e.Rotate)
		if pos.Horizontal() {
			across = math.Max(across, h)
		} else {
			across = math.Max(across, w)
		}
	}
	t := e.TickLength
	if across > 0 {
		t += e.Offset + across
	}
	if e.Title != "" {
		t += e.TitleGap + m.LineHeight
	}
	return math.Ceil(t - 1e-9)
}
