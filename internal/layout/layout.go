// Package layout reserves space for padding, legends and axes inside the
// container and hands what is left to the coordinate as the plot rectangle.
package layout

import (
	"fmt"
	"strings"

	"gochart/internal/errs"
	"gochart/internal/geom"
)

// Position is the side of the container a component is attached to.
type Position string

const (
	Top    Position = "top"
	Bottom Position = "bottom"
	Left   Position = "left"
	Right  Position = "right"
)

// ParsePosition accepts a side, or a side with an alignment suffix such as
// "top-left" or "right-bottom", and returns the side.
func ParsePosition(s string) (Position, error) {
	side, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "-")
	switch p := Position(side); p {
	case Top, Bottom, Left, Right:
		return p, nil
	}
	return "", errs.Config("layout", errs.ErrUnsupported, "position ", s)
}

// Horizontal reports whether p runs along the top or bottom edge.
func (p Position) Horizontal() bool { return p == Top || p == Bottom }

// Box is a request for space on one side. Top and bottom boxes consume
// Height, left and right boxes consume Width. A zero extent along the other
// dimension spans the remaining container.
type Box struct {
	Position Position
	Width    float64
	Height   float64
}

func (b Box) thickness() float64 {
	if b.Position.Horizontal() {
		return b.Height
	}
	return b.Width
}

// Layout is the result of one reservation pass.
type Layout struct {
	Container geom.Rect
	Plot      geom.Rect
	Legends   []geom.Rect // in the order requested
	Axes      []geom.Rect // in the order requested
}

// Compute reserves padding first, then each legend in order, then every
// axis. Axes on the same side stack outwards in request order and their
// regions span the plot edge they are attached to.
func Compute(width, height float64, pad geom.Padding, axes, legends []Box) (Layout, error) {
	l := Layout{Container: geom.Rect{Width: width, Height: height}}
	inner := geom.Rect{
		X:      pad.Left,
		Y:      pad.Top,
		Width:  width - pad.Left - pad.Right,
		Height: height - pad.Top - pad.Bottom,
	}
	if inner.Empty() {
		return l, errs.Config("layout", errs.ErrNoPlotArea, fmt.Sprintf("padding %v in %gx%g", pad, width, height))
	}

	for _, b := range legends {
		r, rest, err := cut(inner, b)
		if err != nil {
			return l, err
		}
		l.Legends = append(l.Legends, r)
		inner = rest
	}

	var side [4]float64 // top, right, bottom, left
	for _, b := range axes {
		i, err := sideIndex(b.Position)
		if err != nil {
			return l, err
		}
		side[i] += b.thickness()
	}
	plot := geom.Rect{
		X:      inner.X + side[3],
		Y:      inner.Y + side[0],
		Width:  inner.Width - side[1] - side[3],
		Height: inner.Height - side[0] - side[2],
	}
	if plot.Empty() {
		return l, errs.Config("layout", errs.ErrNoPlotArea,
			fmt.Sprintf("axes reserve top=%g right=%g bottom=%g left=%g of %gx%g", side[0], side[1], side[2], side[3], inner.Width, inner.Height))
	}
	l.Plot = plot

	var used [4]float64
	for _, b := range axes {
		i, _ := sideIndex(b.Position)
		t := b.thickness()
		var r geom.Rect
		switch b.Position {
		case Top:
			r = geom.Rect{X: plot.X, Y: plot.Y - used[i] - t, Width: plot.Width, Height: t}
		case Bottom:
			r = geom.Rect{X: plot.X, Y: plot.Y + plot.Height + used[i], Width: plot.Width, Height: t}
		case Left:
			r = geom.Rect{X: plot.X - used[i] - t, Y: plot.Y, Width: t, Height: plot.Height}
		case Right:
			r = geom.Rect{X: plot.X + plot.Width + used[i], Y: plot.Y, Width: t, Height: plot.Height}
		}
		used[i] += t
		l.Axes = append(l.Axes, r)
	}
	return l, nil
}

// cut takes b off one side of r and returns the taken region and the rest.
func cut(r geom.Rect, b Box) (taken, rest geom.Rect, err error) {
	t := b.thickness()
	switch b.Position {
	case Top:
		taken = geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: t}
		rest = geom.Rect{X: r.X, Y: r.Y + t, Width: r.Width, Height: r.Height - t}
	case Bottom:
		taken = geom.Rect{X: r.X, Y: r.Y + r.Height - t, Width: r.Width, Height: t}
		rest = geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height - t}
	case Left:
		taken = geom.Rect{X: r.X, Y: r.Y, Width: t, Height: r.Height}
		rest = geom.Rect{X: r.X + t, Y: r.Y, Width: r.Width - t, Height: r.Height}
	case Right:
		taken = geom.Rect{X: r.X + r.Width - t, Y: r.Y, Width: t, Height: r.Height}
		rest = geom.Rect{X: r.X, Y: r.Y, Width: r.Width - t, Height: r.Height}
	default:
		return taken, rest, errs.Config("layout", errs.ErrUnsupported, "position ", b.Position)
	}
	if rest.Empty() {
		return taken, rest, errs.Config("layout", errs.ErrNoPlotArea, fmt.Sprintf("%s legend reserves %g", b.Position, t))
	}
	return centre(taken, b), rest, nil
}

// centre shrinks a legend region to the box's own extent along the edge.
func centre(r geom.Rect, b Box) geom.Rect {
	if b.Position.Horizontal() {
		if b.Width > 0 && b.Width < r.Width {
			r.X += (r.Width - b.Width) / 2
			r.Width = b.Width
		}
		return r
	}
	if b.Height > 0 && b.Height < r.Height {
		r.Y += (r.Height - b.Height) / 2
		r.Height = b.Height
	}
	return r
}

func sideIndex(p Position) (int, error) {
	switch p {
	case Top:
		return 0, nil
	case Right:
		return 1, nil
	case Bottom:
		return 2, nil
	case Left:
		return 3, nil
	}
	return 0, errs.Config("layout", errs.ErrUnsupported, "axis position ", p)
}
