package chart

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"gochart/internal/coord"
	"gochart/internal/errs"
	"gochart/internal/geom"
	"gochart/internal/layout"
	"gochart/internal/legend"
	"gochart/internal/scale"
	"gochart/internal/source"
	"gochart/internal/tooltip"
)

func records() []source.Record {
	return []source.Record{
		{"genre": "a", "sold": 0.0, "kind": "x"},
		{"genre": "b", "sold": 50.0, "kind": "y"},
		{"genre": "c", "sold": 100.0, "kind": "x"},
	}
}

// bare is a chart whose plot fills the whole 100x100 container.
func bare(t *testing.T, log *zap.Logger) *Chart {
	t.Helper()
	c := New(Options{Width: 100, Height: 100, Metrics: layout.Cells, Logger: log})
	c.Source(records(), map[string]scale.Options{"genre": {Values: []string{"a", "b", "c"}}})
	c.Position("genre", "sold")
	c.DisableAxes()
	return c
}

func pixels(f *Frame) []geom.Point {
	var out []geom.Point
	for _, p := range f.Points {
		out = append(out, p.Pixel)
	}
	return out
}

func TestRenderPlacesRecords(t *testing.T) {
	c := bare(t, nil)
	f, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{Width: 100, Height: 100}, f.Layout.Plot)
	want := []geom.Point{{X: 0, Y: 100}, {X: 50, Y: 50}, {X: 100, Y: 0}}
	if diff := cmp.Diff(want, pixels(f), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("pixels (-want +got):\n%s", diff)
	}
	assert.Empty(t, f.Warnings)
	assert.Empty(t, f.Legends)
}

func TestRenderSkipsMismatches(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := bare(t, zap.New(core))
	recs := append(records(),
		source.Record{"genre": "zz", "sold": 10.0},
		source.Record{"genre": "a"},
		source.Record{"genre": "b", "sold": "lots"},
	)
	c.Source(recs, nil)
	f, err := c.Render()
	require.NoError(t, err)
	assert.Len(t, f.Points, 3)
	require.Len(t, f.Warnings, 3)
	assert.ErrorIs(t, f.Warnings[0], errs.ErrUnknownCategory)
	assert.ErrorIs(t, f.Warnings[1], errs.ErrMissingField)
	assert.ErrorIs(t, f.Warnings[2], errs.ErrNotNumeric)

	skipped := logs.FilterMessage("record skipped").All()
	require.Len(t, skipped, 3)
	assert.Equal(t, "genre", skipped[0].ContextMap()["field"])
	assert.Equal(t, "zz", skipped[0].ContextMap()["value"])
	assert.EqualValues(t, 3, skipped[0].ContextMap()["index"])
}

func TestRenderCaches(t *testing.T) {
	c := bare(t, nil)
	f1, err := c.Render()
	require.NoError(t, err)
	f2, err := c.Render()
	require.NoError(t, err)
	assert.Same(t, f1, f2)

	c.Coordinate().Rotate(90)
	f3, err := c.Render()
	require.NoError(t, err)
	assert.NotSame(t, f2, f3)
	// a quarter turn about the centre carries the bottom-left corner to the
	// top-left
	assert.InDelta(t, 0, f3.Points[0].Pixel.X, 1e-9)
	assert.InDelta(t, 0, f3.Points[0].Pixel.Y, 1e-9)

	c.Resize(200, 100)
	f4, err := c.Render()
	require.NoError(t, err)
	assert.NotSame(t, f3, f4)
	assert.Equal(t, 200.0, f4.Layout.Plot.Width)
}

func TestLegendFiltersRecords(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := bare(t, zap.New(core))
	c.Color("kind")
	f, err := c.Render()
	require.NoError(t, err)
	require.Len(t, f.Legends, 1)
	assert.Equal(t, layout.Bottom, f.Legends[0].Position)
	assert.Equal(t, 99.0, f.Layout.Plot.Height)
	assert.Len(t, f.Points, 3)
	assert.Equal(t, "x", f.Points[0].Series)
	assert.Equal(t, legend.Palette(2)[1], f.Points[1].Color)

	ctl := c.LegendFor("kind")
	require.NotNil(t, ctl)
	changed, err := ctl.Toggle("y")
	require.NoError(t, err)
	require.True(t, changed)

	f, err = c.Render()
	require.NoError(t, err)
	require.Len(t, f.Points, 2)
	assert.Equal(t, 0, f.Points[0].Index)
	assert.Equal(t, 2, f.Points[1].Index)
	assert.Empty(t, f.Warnings)
	assert.Zero(t, logs.Len())
	assert.False(t, f.Legends[0].Items[1].Checked)
}

func TestPointerClickTogglesLegend(t *testing.T) {
	c := bare(t, nil)
	c.Color("kind")
	f, err := c.Render()
	require.NoError(t, err)
	// two 3-cell entries with a 2-cell gap, centred on the bottom row
	assert.Equal(t, geom.Rect{X: 46, Y: 99, Width: 3, Height: 1}, f.Legends[0].Items[0].Box)

	assert.Nil(t, c.PointerClick(geom.Pt(47, 99.5)))
	f, err = c.Render()
	require.NoError(t, err)
	require.Len(t, f.Points, 1)
	assert.Equal(t, 1, f.Points[0].Index)
	assert.Equal(t, []string{"y"}, c.LegendFor("kind").Active())
}

func TestPointerTooltip(t *testing.T) {
	c := bare(t, nil)
	require.NoError(t, c.Tooltip(tooltip.Config{ShowTitle: true, Crosshairs: tooltip.CrosshairY}))

	res := c.PointerMove(geom.Pt(48, 40))
	require.NotNil(t, res)
	assert.Equal(t, "b", res.Title)
	assert.Equal(t, 1, res.Items[0].Index)
	assert.Len(t, res.Crosshairs, 1)
	assert.Same(t, res, c.Shown())

	assert.Nil(t, c.PointerMove(geom.Pt(200, 200)))
	c.PointerLeave()
	assert.Nil(t, c.Shown())

	require.NoError(t, c.Tooltip(tooltip.Config{TriggerOn: tooltip.OnClick}))
	assert.Nil(t, c.PointerEnter(geom.Pt(48, 40)))
	require.NotNil(t, c.PointerClick(geom.Pt(48, 40)))

	c.DisableTooltip()
	assert.Nil(t, c.PointerMove(geom.Pt(48, 40)))

	assert.Error(t, c.Tooltip(tooltip.Config{TriggerOn: "hover"}))
}

func TestAxesReserveSpace(t *testing.T) {
	c := bare(t, nil)
	require.NoError(t, c.Axis("genre"))
	require.NoError(t, c.Axis("sold"))
	f, err := c.Render()
	require.NoError(t, err)
	require.Len(t, f.Axes, 2)
	assert.Equal(t, layout.Bottom, f.Axes[0].Position)
	assert.Equal(t, layout.Left, f.Axes[1].Position)
	assert.Greater(t, f.Layout.Plot.X, 0.0)
	assert.Less(t, f.Layout.Plot.Height, 100.0)
	assert.Len(t, f.Layout.Axes, 2)

	// polar axes draw inside the container without reserving space
	c.Coord(coord.TypePolar, coord.Config{})
	f, err = c.Render()
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{Width: 100, Height: 100}, f.Layout.Plot)
	assert.Len(t, f.Axes, 2)

	c.Coord(coord.TypeRect, coord.Config{})
	c.DisableAxis("sold")
	f, err = c.Render()
	require.NoError(t, err)
	require.Len(t, f.Axes, 1)
	assert.Equal(t, 0.0, f.Layout.Plot.X)
}

func TestAxisAutoRotateReserves(t *testing.T) {
	var recs []source.Record
	for i := 0; i < 6; i++ {
		recs = append(recs, source.Record{"name": fmt.Sprintf("category-long-%02d", i), "v": float64(i)})
	}
	c := New(Options{Width: 40, Height: 100, Metrics: layout.Cells})
	c.Source(recs, nil)
	c.Position("name", "v")
	c.DisableAxis("v")
	require.NoError(t, c.Axis("name"))
	f, err := c.Render()
	require.NoError(t, err)
	require.Len(t, f.Axes, 1)
	assert.Equal(t, 90.0, f.Axes[0].Rotate)
	// vertical labels are 16 cells tall on top of the tick and offset
	assert.InDelta(t, 100-4-4-16, f.Layout.Plot.Height, 1e-9)
}

func TestRenderErrors(t *testing.T) {
	c := New(Options{Width: 100, Height: 100})
	_, err := c.Render()
	assert.True(t, errs.IsConfig(err))

	c = bare(t, nil)
	c.Legend("sold")
	_, err = c.Render()
	assert.True(t, errs.IsConfig(err))

	c = bare(t, nil)
	c.Coordinate().Scale(0, 1)
	_, err = c.Render()
	assert.ErrorIs(t, err, errs.ErrZeroScale)

	c = bare(t, nil)
	c.Source(nil, nil)
	_, err = c.Render()
	assert.ErrorIs(t, err, errs.ErrEmptyDomain)

	c = bare(t, nil)
	c.Resize(0, 100)
	_, err = c.Render()
	assert.ErrorIs(t, err, errs.ErrNoPlotArea)
}

func TestFrameYAML(t *testing.T) {
	c := bare(t, nil)
	c.Color("kind")
	f, err := c.Render()
	require.NoError(t, err)
	out, err := yaml.Marshal(f)
	require.NoError(t, err)

	var doc struct {
		Coord string `yaml:"coord"`
		Plot  struct {
			Height float64 `yaml:"height"`
		} `yaml:"plot"`
		Legends []struct {
			Items []struct {
				Value   string `yaml:"value"`
				Checked bool   `yaml:"checked"`
			} `yaml:"items"`
		} `yaml:"legends"`
		Marks []struct {
			Index int `yaml:"index"`
			At    struct {
				X, Y float64
			} `yaml:"at"`
		} `yaml:"marks"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "rect", doc.Coord)
	assert.Equal(t, 99.0, doc.Plot.Height)
	require.Len(t, doc.Legends, 1)
	assert.Equal(t, "y", doc.Legends[0].Items[1].Value)
	require.Len(t, doc.Marks, 3)
	assert.Equal(t, 49.5, doc.Marks[1].At.Y)
}
