// Package axis turns a scale and a coordinate transform into the geometry
// of one axis: the axis line, ticks, sub ticks, grid lines, labels and the
// title. Everything is recomputed from its inputs; nothing is cached.
package axis

import (
	"gochart/internal/errs"
	"gochart/internal/layout"
	"gochart/internal/style"
)

// Dim is the normalized dimension an axis follows.
type Dim string

const (
	X Dim = "x"
	Y Dim = "y"
)

// Config configures one axis. A nil part is not drawn.
type Config struct {
	// Position picks the side of the plot. Empty selects bottom for x and
	// left for y, swapped when the coordinate is transposed.
	Position     layout.Position
	Title        *Title
	Label        *Label
	Line         *Line
	TickLine     *TickLine
	SubTickCount int
	SubTickLine  *TickLine
	Grid         *Grid
}

type Title struct {
	// Text defaults to the scale alias.
	Text string
	// Position along the axis: "start", "center" (default) or "end".
	Position  string
	Offset    float64
	TextStyle style.Value[style.Text]
}

type Label struct {
	Offset float64
	// Rotate is honoured as is when AutoRotate is off.
	Rotate     float64
	AutoRotate bool
	Formatter  func(text string, index int) string
	TextStyle  style.Value[style.Text]
}

type Line struct {
	Stroke string
}

type TickLine struct {
	Length float64
	Stroke string
}

type Grid struct {
	// Align "center" puts lines between ticks instead of on them.
	Align         string
	HideFirstLine bool
	HideLastLine  bool
	Stroke        string
}

// Default returns the configuration used when an axis is enabled without
// options. Only the y axis draws a grid.
func Default(dim Dim) Config {
	c := Config{
		Label:    &Label{Offset: 4, AutoRotate: true},
		Line:     &Line{},
		TickLine: &TickLine{Length: 4},
	}
	if dim == Y {
		c.Line = nil
		c.TickLine = nil
		c.Grid = &Grid{}
	}
	return c
}

// Validate reports option values the renderer does not understand.
func (c Config) Validate() error {
	if c.Position != "" {
		if _, err := layout.ParsePosition(string(c.Position)); err != nil {
			return errs.Config("axis", errs.ErrUnsupported, "position ", c.Position)
		}
	}
	if c.Title != nil {
		switch c.Title.Position {
		case "", "start", "center", "end":
		default:
			return errs.Config("axis", errs.ErrUnsupported, "title position ", c.Title.Position)
		}
	}
	if c.Grid != nil {
		switch c.Grid.Align {
		case "", "center":
		default:
			return errs.Config("axis", errs.ErrUnsupported, "grid align ", c.Grid.Align)
		}
	}
	if c.SubTickCount < 0 {
		return errs.Config("axis", errs.ErrUnsupported, "negative subTickCount")
	}
	return nil
}

// Side returns the position the axis occupies, resolving the default.
func (c Config) Side(dim Dim, transposed bool) layout.Position {
	if c.Position != "" {
		p, _ := layout.ParsePosition(string(c.Position))
		return p
	}
	if (dim == X) != transposed {
		return layout.Bottom
	}
	return layout.Left
}

func (c Config) tickLength() float64 {
	if c.TickLine == nil {
		return 0
	}
	return c.TickLine.Length
}

func (c Config) labelOffset() float64 {
	if c.Label == nil {
		return 0
	}
	return c.Label.Offset
}
