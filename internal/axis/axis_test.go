package axis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochart/internal/coord"
	"gochart/internal/errs"
	"gochart/internal/geom"
	"gochart/internal/layout"
	"gochart/internal/scale"
	"gochart/internal/style"
)

var box = geom.Rect{Width: 100, Height: 100}

func build(t *testing.T, c *coord.Coordinate) *coord.Transform {
	t.Helper()
	tr, err := c.Build(box)
	require.NoError(t, err)
	return tr
}

func linear(t *testing.T) scale.Scale {
	t.Helper()
	s, err := scale.NewLinear("v", []any{0, 100}, scale.Options{})
	require.NoError(t, err)
	return s
}

func categories(t *testing.T, format string, n int, opts scale.Options) scale.Scale {
	t.Helper()
	var vals []any
	for i := 0; i < n; i++ {
		vals = append(vals, fmt.Sprintf(format, i))
	}
	s, err := scale.NewOrdinal("c", vals, opts)
	require.NoError(t, err)
	return s
}

func TestBottomAxis(t *testing.T) {
	s := linear(t)
	r := Render("v", X, s, build(t, coord.New(coord.TypeRect, coord.Config{})), Default(X), layout.Cells)

	assert.Equal(t, layout.Bottom, r.Position)
	require.NotNil(t, r.Line)
	assert.Equal(t, []geom.Point{{X: 0, Y: 100}, {X: 100, Y: 100}}, r.Line.Points)
	require.Len(t, r.Ticks, len(s.Ticks()))
	for i, tk := range r.Ticks {
		assert.InDelta(t, 100, tk.From.Y, 1e-9)
		assert.InDelta(t, 104, tk.To.Y, 1e-9)
		assert.InDelta(t, tk.T*100, tk.From.X, 1e-9)
		assert.InDelta(t, 108, r.Labels[i].At.Y, 1e-9)
		assert.Equal(t, "center", r.Labels[i].Align)
	}
	assert.Empty(t, r.Grid)
	assert.Nil(t, r.Title)
	assert.Zero(t, r.Rotate)
}

func TestLeftAxisGridAndTitle(t *testing.T) {
	s := linear(t)
	cfg := Default(Y)
	cfg.Title = &Title{Offset: 2}
	r := Render("v", Y, s, build(t, coord.New(coord.TypeRect, coord.Config{})), cfg, layout.Cells)

	assert.Equal(t, layout.Left, r.Position)
	assert.Nil(t, r.Line)
	require.Len(t, r.Grid, len(s.Ticks()))
	for _, g := range r.Grid {
		require.Len(t, g.Points, 2)
		assert.InDelta(t, 0, g.Points[0].X, 1e-9)
		assert.InDelta(t, 100, g.Points[1].X, 1e-9)
	}
	for _, l := range r.Labels {
		assert.Equal(t, "end", l.Align)
		assert.InDelta(t, -4, l.At.X, 1e-9)
	}
	require.NotNil(t, r.Title)
	assert.Equal(t, "v", r.Title.Text)
	assert.Equal(t, -90.0, r.Title.Rotate)
	assert.Less(t, r.Title.At.X, -4.0)
	assert.InDelta(t, 50, r.Title.At.Y, 1e-9)
}

func TestAutoRotate(t *testing.T) {
	tr := build(t, coord.New(coord.TypeRect, coord.Config{}))
	tests := []struct {
		name   string
		format string
		want   float64
	}{
		{"short labels stay flat", "c%d", 0},
		{"medium labels tilt", "category-%03d", 45},
		{"long labels stand up", "category-long-%06d", 90},
	}
	for _, tt := range tests {
		r := Render("c", X, categories(t, tt.format, 10, scale.Options{}), tr, Default(X), layout.Cells)
		assert.Equal(t, tt.want, r.Rotate, tt.name)
		assert.False(t, r.Overlap, tt.name)
		for _, l := range r.Labels {
			assert.Equal(t, tt.want, l.Rotate, tt.name)
		}
	}

	// Without auto-rotation the configured angle is kept and the overlap
	// is reported instead of resolved.
	cfg := Default(X)
	cfg.Label.AutoRotate = false
	cfg.Label.Rotate = 30
	r := Render("c", X, categories(t, "category-long-%06d", 10, scale.Options{}), tr, cfg, layout.Cells)
	assert.Equal(t, 30.0, r.Rotate)
	assert.True(t, r.Overlap)
	assert.Equal(t, 30.0, cfg.InitialRotate())
}

func TestGridAlignCenter(t *testing.T) {
	s := categories(t, "k%d", 3, scale.Options{Band: true})
	cfg := Default(X)
	cfg.Grid = &Grid{Align: "center"}
	tr := build(t, coord.New(coord.TypeRect, coord.Config{}))

	r := Render("c", X, s, tr, cfg, layout.Cells)
	require.Len(t, r.Grid, 4)
	for i, want := range []float64{0, 100.0 / 3, 200.0 / 3, 100} {
		assert.InDelta(t, want, r.Grid[i].Points[0].X, 1e-9)
	}

	cfg.Grid.HideFirstLine = true
	cfg.Grid.HideLastLine = true
	r = Render("c", X, s, tr, cfg, layout.Cells)
	assert.Len(t, r.Grid, 2)
}

func TestSubTicksAndFormatter(t *testing.T) {
	s := linear(t)
	cfg := Default(X)
	cfg.SubTickCount = 3
	cfg.Label.Formatter = func(text string, i int) string { return fmt.Sprintf("%s#%d", text, i) }
	cfg.Label.TextStyle = style.Computed(func(ctx style.Context) style.Text {
		return style.Text{Fill: fmt.Sprint(ctx.Index)}
	})
	r := Render("v", X, s, build(t, coord.New(coord.TypeRect, coord.Config{})), cfg, layout.Cells)

	assert.Len(t, r.SubTicks, (len(r.Ticks)-1)*3)
	for _, st := range r.SubTicks {
		assert.InDelta(t, 2, st.To.Y-st.From.Y, 1e-9)
	}
	require.NotEmpty(t, r.Labels)
	assert.Equal(t, s.Ticks()[0].Text+"#0", r.Labels[0].Text)
	assert.Equal(t, "1", r.Labels[1].Style.Fill)

	e := cfg.Extent(s, 0)
	assert.Equal(t, r.Labels[0].Text, e.Labels[0])
	assert.Equal(t, 4.0, e.TickLength)
}

func TestTransposedAndTopAxis(t *testing.T) {
	s := linear(t)
	r := Render("v", X, s, build(t, coord.New(coord.TypeRect, coord.Config{}).Transpose()), Default(X), layout.Cells)
	assert.Equal(t, layout.Left, r.Position)
	for _, tk := range r.Ticks {
		assert.InDelta(t, 0, tk.From.X, 1e-9)
		assert.InDelta(t, -4, tk.To.X, 1e-9)
	}

	cfg := Default(X)
	cfg.Position = layout.Top
	r = Render("v", X, s, build(t, coord.New(coord.TypeRect, coord.Config{})), cfg, layout.Cells)
	for _, tk := range r.Ticks {
		assert.InDelta(t, 0, tk.From.Y, 1e-9)
		assert.InDelta(t, -4, tk.To.Y, 1e-9)
	}
}

func TestPolarAxes(t *testing.T) {
	tr := build(t, coord.New(coord.TypePolar, coord.Config{}))
	s := linear(t)

	x := Render("v", X, s, tr, Default(X), layout.Cells)
	// 0 and 100 share the seam; only one tick is kept.
	assert.Len(t, x.Ticks, len(s.Ticks())-1)
	for _, tk := range x.Ticks {
		assert.InDelta(t, 50, tk.From.Sub(tr.Center()).Len(), 1e-9)
		assert.InDelta(t, 54, tk.To.Sub(tr.Center()).Len(), 1e-9)
	}
	require.NotNil(t, x.Line)
	assert.True(t, x.Line.Closed)

	ycfg := Default(Y)
	ycfg.TickLine = &TickLine{Length: 4}
	y := Render("v", Y, s, tr, ycfg, layout.Cells)
	require.Len(t, y.Grid, len(y.Ticks))
	for i, g := range y.Grid {
		assert.True(t, g.Closed)
		for _, p := range g.Points {
			assert.InDelta(t, 50*y.Ticks[i].T, p.Sub(tr.Center()).Len(), 1e-9)
		}
	}
	for _, tk := range y.Ticks {
		// radius axis runs straight up from the centre, ticks point left
		assert.InDelta(t, 50, tk.From.X, 1e-9)
		assert.InDelta(t, -1, (tk.To.X-tk.From.X)/4, 1e-4)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default(X).Validate())
	tests := []Config{
		{Position: "middle"},
		{Title: &Title{Position: "above"}},
		{Grid: &Grid{Align: "edge"}},
		{SubTickCount: -1},
	}
	for _, c := range tests {
		err := c.Validate()
		assert.ErrorIs(t, err, errs.ErrUnsupported)
		assert.True(t, errs.IsConfig(err))
	}
}
