package tui

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"gochart/internal/axis"
	"gochart/internal/chart"
	"gochart/internal/geom"
	"gochart/internal/tooltip"
)

// Chart pixels are braille micro-pixels: one cell is 2 wide and 4 high.
const (
	microW = 2
	microH = 4
)

func cellOf(p geom.Point) (int, int) {
	return int(math.Floor(p.X / microW)), int(math.Floor(p.Y / microH))
}

// renderFrame draws a frame on a w by h cell canvas: grid, axes, crosshairs
// and marks as braille, then labels, legends and the tooltip as text.
func renderFrame(f *chart.Frame, tip *tooltip.Result, w, h int) string {
	cv := newCanvas(w, h)
	for _, a := range f.Axes {
		for _, g := range a.Grid {
			cv.br.drawPath(g, gridHex)
		}
	}
	for _, a := range f.Axes {
		if a.Line != nil {
			cv.br.drawPath(*a.Line, axisHex)
		}
		for _, t := range a.Ticks {
			cv.br.drawPath(geom.Path{Points: []geom.Point{t.From, t.To}}, axisHex)
		}
		for _, s := range a.SubTicks {
			cv.br.drawPath(geom.Path{Points: []geom.Point{s.From, s.To}}, axisHex)
		}
	}
	if tip != nil {
		for _, p := range tip.Crosshairs {
			cv.br.drawPath(p, crossHex)
		}
	}
	for _, p := range f.Points {
		cv.br.dot(p.Pixel, p.Color)
	}

	for _, a := range f.Axes {
		for _, l := range a.Labels {
			putText(cv, l, labelHex)
		}
		if a.Title != nil {
			putText(cv, *a.Title, titleHex)
		}
	}
	for _, l := range f.Legends {
		for _, it := range l.Items {
			x, y := cellOf(geom.Pt(it.Box.X, it.Box.Y))
			cv.put(x, y, "●", it.Color)
			col := labelHex
			if !it.Checked {
				col = axisHex
			}
			cv.put(x+2, y, it.Name, col)
		}
	}
	if tip != nil {
		for _, it := range tip.Items {
			x, y := cellOf(it.Pixel)
			cv.put(x, y, "◉", hoverHex)
		}
		putTooltip(cv, tip)
	}
	return cv.String()
}

// putText places an axis label or title by its anchor, alignment and
// rotation. Steep labels run down the screen.
func putText(cv *canvas, t axis.Text, col string) {
	x, y := cellOf(t.At)
	rot := math.Mod(math.Abs(t.Rotate), 180)
	switch {
	case rot >= 67.5 && rot <= 112.5:
		cv.putDown(x, y, t.Text, col)
	case rot >= 22.5 && rot < 67.5:
		cv.putDiagonal(x, y, t.Text, col)
	default:
		w := runewidth.StringWidth(t.Text)
		switch t.Align {
		case "end":
			x -= w
		case "center":
			x -= w / 2
		}
		cv.put(x, y, t.Text, col)
	}
}

// tooltipLines formats a result as the lines of the tooltip box.
func tooltipLines(tip *tooltip.Result) []string {
	var lines []string
	if tip.Title != "" {
		lines = append(lines, tip.Title)
	}
	for _, it := range tip.Items {
		lines = append(lines, fmt.Sprintf("● %s: %s", it.Name, it.Value))
	}
	return lines
}

// putTooltip boxes the tooltip next to its anchor, on the left when the
// right side has no room.
func putTooltip(cv *canvas, tip *tooltip.Result) {
	lines := tooltipLines(tip)
	inner := 0
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l))
	}
	bw, bh := inner+4, len(lines)+2
	ax, ay := cellOf(tip.Anchor)
	x := ax + 2
	if x+bw > cv.w {
		x = ax - 1 - bw
	}
	x = clamp(x, 0, max(0, cv.w-bw))
	y := clamp(ay-bh/2, 0, max(0, cv.h-bh))

	cv.put(x, y, "╭"+repeat("─", bw-2)+"╮", borderHex)
	for i, l := range lines {
		row := y + 1 + i
		cv.put(x, row, "│ "+padRight(l, inner-runewidth.StringWidth(l))+" │", borderHex)
		col := tipHex
		if i == 0 && tip.Title != "" {
			col = crossHex
		}
		cv.put(x+2, row, l, col)
		if j := i - titleRows(tip); j >= 0 {
			cv.put(x+2, row, "●", tip.Items[j].Color)
		}
	}
	cv.put(x, y+bh-1, "╰"+repeat("─", bw-2)+"╯", borderHex)
}

func titleRows(tip *tooltip.Result) int {
	if tip.Title != "" {
		return 1
	}
	return 0
}
