package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// canvas layers text over a braille buffer. Text wins over braille.
type canvas struct {
	w, h int
	br   *brailleBuf
	txt  [][]rune
	tcol [][]string
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, br: newBrailleBuf(w, h)}
	c.txt = make([][]rune, h)
	c.tcol = make([][]string, h)
	for y := range c.txt {
		c.txt[y] = make([]rune, w)
		c.tcol[y] = make([]string, w)
	}
	return c
}

// put writes s from cell (x, y) rightwards, clipped to the canvas. Wide
// runes take two cells; the second holds a zero rune that String skips.
func (c *canvas) put(x, y int, s, col string) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= c.w {
			c.txt[y][x] = r
			c.tcol[y][x] = col
			if rw == 2 {
				c.txt[y][x+1] = -1
			}
		}
		x += rw
	}
}

// putDown writes s one rune per row, for vertical labels.
func (c *canvas) putDown(x, y int, s, col string) {
	for _, r := range s {
		c.put(x, y, string(r), col)
		y++
	}
}

// putDiagonal writes s stepping one cell right and one row down per rune.
func (c *canvas) putDiagonal(x, y int, s, col string) {
	for _, r := range s {
		c.put(x, y, string(r), col)
		x += runewidth.RuneWidth(r)
		y++
	}
}

// String renders the canvas, styling runs of equal colour together.
func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var sb, run strings.Builder
		runCol := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runCol == "" {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runCol)).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			r, col := c.txt[y][x], c.tcol[y][x]
			if r == -1 {
				continue
			}
			if r == 0 {
				r, col = c.br.glyph(x, y)
			}
			if col != runCol {
				flush()
				runCol = col
			}
			run.WriteRune(r)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
