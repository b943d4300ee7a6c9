package legend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochart/internal/errs"
	"gochart/internal/geom"
	"gochart/internal/layout"
	"gochart/internal/scale"
	"gochart/internal/style"
)

func ordinal(t *testing.T, vals ...string) *scale.Ordinal {
	t.Helper()
	s, err := scale.NewOrdinal("series", nil, scale.Options{Values: vals})
	require.NoError(t, err)
	return s
}

func state(c *Controller) map[string]bool {
	out := map[string]bool{}
	for _, it := range c.Items() {
		out[it.Value] = it.Checked
	}
	return out
}

func TestToggleMultiple(t *testing.T) {
	s := ordinal(t, "A", "B", "C")
	c, err := New("series", s, Config{})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"A": true, "B": true, "C": true}, state(c))

	var notified [][]string
	c.OnChange(func(active []string) { notified = append(notified, active) })

	rev := s.Revision()
	changed, err := c.Toggle("B")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"A", "C"}, s.Active())
	assert.NotEqual(t, rev, s.Revision())
	assert.Equal(t, [][]string{{"A", "C"}}, notified)

	_, err = c.Toggle("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, c.Active())

	// The sole checked entry stays checked.
	rev = s.Revision()
	changed, err = c.Toggle("C")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, map[string]bool{"A": false, "B": false, "C": true}, state(c))
	assert.Equal(t, rev, s.Revision())
	assert.Len(t, notified, 2)

	_, err = c.Toggle("Z")
	assert.ErrorIs(t, err, errs.ErrUnknownCategory)
	assert.True(t, errs.IsMismatch(err))
}

func TestToggleSingle(t *testing.T) {
	s := ordinal(t, "A", "B", "C")
	c, err := New("series", s, Config{SelectedMode: Single})
	require.NoError(t, err)

	_, err = c.Toggle("A")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"A": true, "B": false, "C": false}, state(c))

	_, err = c.Toggle("B")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"A": false, "B": true, "C": false}, state(c))
	assert.Equal(t, []string{"B"}, s.Active())

	changed, err := c.Toggle("B")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, []string{"B"}, c.Active())
}

func TestAllowAllCanceled(t *testing.T) {
	s := ordinal(t, "A", "B")
	c, err := New("series", s, Config{SelectedMode: Single, AllowAllCanceled: true})
	require.NoError(t, err)

	_, err = c.Toggle("A")
	require.NoError(t, err)
	changed, err := c.Toggle("A")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, c.Active())
	assert.Empty(t, s.Active())

	c.Reset()
	assert.Equal(t, []string{"A", "B"}, s.Active())
}

func TestSetChecked(t *testing.T) {
	c, err := New("series", ordinal(t, "A", "B"), Config{})
	require.NoError(t, err)

	changed, err := c.SetChecked("A", true)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = c.SetChecked("A", false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, c.Checked("A"))

	changed, err = c.SetChecked("B", false)
	require.NoError(t, err)
	assert.False(t, changed, "last checked entry is kept")
}

func TestExplicitItems(t *testing.T) {
	s := ordinal(t, "A", "B", "C")
	c, err := New("series", s, Config{
		Items:         []Item{{Value: "A", Name: "Alpha", Color: "#000000"}, {Value: "B"}},
		ItemFormatter: strings.ToLower,
		Marker:        style.Static("square"),
	})
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, Item{Value: "A", Name: "Alpha", Marker: "square", Color: "#000000", Checked: true}, items[0])
	assert.Equal(t, "b", items[1].Name)
	assert.Equal(t, defaultColors[1], items[1].Color)

	_, err = c.Toggle("A")
	require.NoError(t, err)
	// C is not listed and stays visible.
	assert.Equal(t, []string{"B", "C"}, s.Active())
	assert.Equal(t, defaultUnCheckColor, c.Items()[0].Color)
}

func TestExplicitItemsSeedChecked(t *testing.T) {
	s := ordinal(t, "A", "B", "C")
	c, err := New("series", s, Config{
		Items: []Item{{Value: "A"}, {Value: "B", Checked: true}, {Value: "C"}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"A": false, "B": true, "C": false}, state(c))
	assert.Equal(t, []string{"B"}, s.Active())
	assert.Equal(t, defaultUnCheckColor, c.Items()[0].Color)
}

func TestNewErrors(t *testing.T) {
	_, err := New("v", nil, Config{})
	assert.True(t, errs.IsConfig(err))

	_, err = New("series", ordinal(t, "A"), Config{SelectedMode: "radio"})
	assert.ErrorIs(t, err, errs.ErrUnsupported)

	_, err = New("series", ordinal(t, "A"), Config{Position: "centre"})
	assert.ErrorIs(t, err, errs.ErrUnsupported)
}

func TestPalette(t *testing.T) {
	p := Palette(20)
	require.Len(t, p, 20)
	assert.Equal(t, defaultColors, p[:len(defaultColors)])
	seen := map[string]bool{}
	for _, c := range p {
		assert.Regexp(t, `^#[0-9a-f]{6}$`, c)
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
	assert.Equal(t, "#1890ff", Dim("#1890ff", 0))
	assert.Equal(t, "nope", Dim("nope", 0.5))
}

func TestMeasureAndPlace(t *testing.T) {
	m := layout.Cells
	c, err := New("series", ordinal(t, "aa", "bbbb", "c"), Config{})
	require.NoError(t, err)

	// widths: 4, 6, 3 plus gaps of 2
	b := c.Measure(m, 100)
	assert.Equal(t, layout.Box{Position: layout.Bottom, Width: 17, Height: 1}, b)

	b = c.Measure(m, 12)
	assert.Equal(t, 2.0, b.Height)
	assert.Equal(t, 12.0, b.Width)

	placed := c.Place(geom.Rect{X: 0, Y: 50, Width: 17, Height: 1}, m)
	require.Len(t, placed, 3)
	assert.Equal(t, geom.Rect{X: 6, Y: 50, Width: 6, Height: 1}, placed[1].Box)
	v, ok := HitTest(placed, geom.Pt(7, 50.5))
	assert.True(t, ok)
	assert.Equal(t, "bbbb", v)
	_, ok = HitTest(placed, geom.Pt(5, 50.5))
	assert.False(t, ok)

	side, err := New("series", ordinal(t, "aa", "bbbb"), Config{Position: layout.Right})
	require.NoError(t, err)
	b = side.Measure(m, 0)
	assert.Equal(t, layout.Box{Position: layout.Right, Width: 7, Height: 2}, b)
}
