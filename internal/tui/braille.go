package tui

import (
	"math"

	"gochart/internal/geom"
)

// brailleBuf is a grid of braille cells, each holding 2x4 micro-pixels and
// the colour of the last pixel set in it.
type brailleBuf struct {
	w, h int        // in cells
	m    [][]uint8  // per-cell 8-bit mask
	col  [][]string // per-cell colour
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	col := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		col[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, col: col}
}

// dotBits indexes the braille dot of a micro-pixel by [column][row].
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, col string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[mx%2][my%4]
	if col != "" {
		b.col[cy][cx] = col
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, col string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// micro snaps a chart pixel to the micro-pixel containing it; the far edge
// of the canvas belongs to the last micro-pixel.
func (b *brailleBuf) micro(p geom.Point) (int, int) {
	x := int(math.Floor(p.X))
	y := int(math.Floor(p.Y))
	if x == b.w*2 {
		x--
	}
	if y == b.h*4 {
		y--
	}
	return x, y
}

func (b *brailleBuf) drawPath(p geom.Path, col string) {
	pts := p.Points
	if len(pts) == 0 {
		return
	}
	if len(pts) == 1 {
		if a, _, ok := b.clip(pts[0], pts[0]); ok {
			x, y := b.micro(a)
			b.setPixel(x, y, col)
		}
		return
	}
	if p.Closed {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	for i := 1; i < len(pts); i++ {
		a, c, ok := b.clip(pts[i-1], pts[i])
		if !ok {
			continue
		}
		x0, y0 := b.micro(a)
		x1, y1 := b.micro(c)
		b.drawLineMicro(x0, y0, x1, y1, col)
	}
}

// clip cuts the segment a-c to the canvas (Liang-Barsky) and reports
// whether any of it is left.
func (b *brailleBuf) clip(a, c geom.Point) (geom.Point, geom.Point, bool) {
	for _, v := range [4]float64{a.X, a.Y, c.X, c.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, c, false
		}
	}
	w, h := float64(b.w*2), float64(b.h*4)
	dx, dy := c.X-a.X, c.Y-a.Y
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{{-dx, a.X}, {dx, w - a.X}, {-dy, a.Y}, {dy, h - a.Y}} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, c, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, c, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, c, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return geom.Pt(a.X+t0*dx, a.Y+t0*dy), geom.Pt(a.X+t1*dx, a.Y+t1*dy), true
}

// dot marks a plotted record with a small cross of micro-pixels.
func (b *brailleBuf) dot(p geom.Point, col string) {
	x, y := b.micro(p)
	b.setPixel(x, y, col)
	b.setPixel(x-1, y, col)
	b.setPixel(x+1, y, col)
	b.setPixel(x, y-1, col)
	b.setPixel(x, y+1, col)
}

// glyph returns the braille rune of a cell, or a space when it is empty.
func (b *brailleBuf) glyph(x, y int) (rune, string) {
	mask := b.m[y][x]
	if mask == 0 {
		return ' ', ""
	}
	return rune(0x2800 + int(mask)), b.col[y][x]
}
