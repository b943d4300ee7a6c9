package tui

import (
	"fmt"

	"go.uber.org/zap"

	"gochart/internal/chart"
	"gochart/internal/geom"
	"gochart/internal/layout"
	"gochart/internal/scale"
	"gochart/internal/source"
	"gochart/internal/tooltip"
)

// cellMetrics measures text in micro-pixels: one character is one cell.
var cellMetrics = layout.Metrics{CharWidth: microW, LineHeight: microH}

// maxSeries caps the categories of an automatically chosen colour field.
const maxSeries = 10

// autoBind guesses the fields of a dataset: categories or times along x,
// the first number along y, and a small category field as colour.
func autoBind(d *source.Dataset) (x, y, color string) {
	types := make(map[string]scale.Type, len(d.Fields))
	for _, f := range d.Fields {
		types[f] = scale.Infer(d.Values(f))
	}
	for _, f := range d.Fields {
		if t := types[f]; t == scale.TypeOrdinal || t == scale.TypeTime {
			x = f
			break
		}
	}
	if x == "" && len(d.Fields) > 0 {
		x = d.Fields[0]
	}
	for _, f := range d.Fields {
		if f != x && types[f] == scale.TypeLinear {
			y = f
			break
		}
	}
	if y == "" {
		for _, f := range d.Fields {
			if f != x {
				y = f
				break
			}
		}
	}
	for _, f := range d.Fields {
		if f == x || f == y || types[f] != scale.TypeOrdinal {
			continue
		}
		if n := distinct(d.Values(f)); n > 1 && n <= maxSeries {
			color = f
			break
		}
	}
	return x, y, color
}

func distinct(values []any) int {
	seen := map[string]bool{}
	for _, v := range values {
		if v != nil {
			seen[scale.Key(v)] = true
		}
	}
	return len(seen)
}

// chartFor binds a dataset to a new terminal chart.
func chartFor(d *source.Dataset, log *zap.Logger) (*chart.Chart, error) {
	x, y, color := autoBind(d)
	if x == "" || y == "" {
		return nil, fmt.Errorf("%s: need at least two fields to chart", d.Name)
	}
	c := chart.New(chart.Options{
		Padding: geom.Padding{Top: microH, Right: 2 * microW},
		Metrics: cellMetrics,
		Logger:  log,
	})
	c.Source(d.Records, nil)
	c.Position(x, y)
	if color != "" {
		c.Color(color)
	}
	if err := c.Tooltip(tooltip.Config{Shared: true, ShowTitle: true, Crosshairs: tooltip.CrosshairY}); err != nil {
		return nil, err
	}
	log.Debug("fields bound", zap.String("dataset", d.Name), zap.String("x", x), zap.String("y", y), zap.String("color", color))
	return c, nil
}

// setData replaces the charted dataset and chart.
func (m *Model) setData(d *source.Dataset, c *chart.Chart) {
	m.data, m.chart = d, c
	m.cursor = -1
	m.inspectPopup = ""
	m.layoutMap()
	x, y, color := c.Fields()
	m.status = fmt.Sprintf("loaded: %s  records=%d  x=%s y=%s", d.Name, len(d.Records), x, y)
	if color != "" {
		m.status += " color=" + color
	}
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
