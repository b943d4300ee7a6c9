package tui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gochart/internal/coord"
	"gochart/internal/geom"
	"gochart/internal/source"
)

const regionsCSV = `genre,sold,region
A,100,EU
B,150,US
C,200,EU
`

func loaded(t *testing.T) Model {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.csv")
	require.NoError(t, os.WriteFile(path, []byte(regionsCSV), 0o644))
	m := NewWithPath(path, nil)
	require.NotNil(t, m.chart, m.status)
	return send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrailleBits(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0, "#FFFFFF")
	b.setPixel(1, 3, "")
	b.setPixel(9, 9, "#000000")

	r, col := b.glyph(0, 0)
	assert.Equal(t, rune(0x2800|0x01|0x80), r)
	assert.Equal(t, "#FFFFFF", col)
	r, col = b.glyph(1, 0)
	assert.Equal(t, ' ', r)
	assert.Empty(t, col)
}

func TestDrawPathClips(t *testing.T) {
	b := newBrailleBuf(4, 2)
	b.drawPath(geom.Path{Points: []geom.Point{geom.Pt(-1e12, 4), geom.Pt(1e12, 4)}}, "#FFFFFF")
	for x := 0; x < 4; x++ {
		r, col := b.glyph(x, 1)
		assert.Equal(t, rune(0x2800|0x01|0x08), r, "cell %d", x)
		assert.Equal(t, "#FFFFFF", col)
		r, _ = b.glyph(x, 0)
		assert.Equal(t, ' ', r)
	}

	b = newBrailleBuf(4, 2)
	b.drawPath(geom.Path{Points: []geom.Point{geom.Pt(-1e12, -5), geom.Pt(1e12, -5), geom.Pt(math.NaN(), 3)}, Closed: true}, "")
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			r, _ := b.glyph(x, y)
			assert.Equal(t, ' ', r)
		}
	}
}

func TestCanvasText(t *testing.T) {
	c := newCanvas(4, 2)
	c.put(1, 0, "ab", "")
	c.put(0, 1, "世", "")
	c.put(3, 1, "xyz", "")
	assert.Equal(t, " ab \n世 x", c.String())
}

func TestAutoBind(t *testing.T) {
	d, err := source.ParseInline(regionsCSV)
	require.NoError(t, err)
	x, y, color := autoBind(d)
	assert.Equal(t, "genre", x)
	assert.Equal(t, "sold", y)
	assert.Equal(t, "region", color)

	d, err = source.ParseInline("a,b\n1,2\n3,4\n")
	require.NoError(t, err)
	x, y, color = autoBind(d)
	assert.Equal(t, "a", x)
	assert.Equal(t, "b", y)
	assert.Empty(t, color)
}

func TestLoadPath(t *testing.T) {
	m := loaded(t)
	assert.Equal(t, "regions.csv", m.data.Name)
	assert.Contains(t, m.status, "x=genre y=sold color=region")
	assert.Equal(t, 79, m.mapW)
	assert.Equal(t, 21, m.mapH)
	w, h := m.chart.Size()
	assert.Equal(t, 158.0, w)
	assert.Equal(t, 84.0, h)

	m.loadPath(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Contains(t, m.status, "load error")
	assert.Equal(t, "regions.csv", m.data.Name)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regions.csv"), []byte(regionsCSV), 0o644))
	path := filepath.Join(dir, "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: regions.csv\nposition: {x: genre, y: sold}\ncoord: {type: polar}\n"), 0o644))

	m := send(NewWithPath(path, nil), tea.WindowSizeMsg{Width: 80, Height: 24})
	require.NotNil(t, m.chart, m.status)
	assert.Equal(t, coord.TypePolar, m.chart.Coordinate().Type())
	assert.Equal(t, cellMetrics, m.chart.Metrics())
	assert.Equal(t, []string{"genre", "region", "sold"}, m.data.Fields)
}

func TestCoordKeys(t *testing.T) {
	m := loaded(t)
	m = send(m, runes("r"))
	m = send(m, runes("c"))
	assert.Equal(t, coord.TypePolar, m.chart.Coordinate().Type())
	require.Len(t, m.chart.Coordinate().Ops(), 1)
	assert.Equal(t, coord.OpRotate, m.chart.Coordinate().Ops()[0].Kind)

	m = send(m, runes("t"))
	assert.True(t, m.chart.Coordinate().Transposed())
	m = send(m, runes("o"))
	assert.Empty(t, m.chart.Coordinate().Ops())
	assert.Equal(t, coord.TypePolar, m.chart.Coordinate().Type())

	for i := 0; i < 3; i++ {
		m = send(m, runes("c"))
	}
	assert.Equal(t, coord.TypeRect, m.chart.Coordinate().Type())
}

func TestSeriesKeys(t *testing.T) {
	m := loaded(t)
	f, err := m.chart.Render()
	require.NoError(t, err)
	assert.Len(t, f.Points, 3)

	m = send(m, runes("1"))
	f, err = m.chart.Render()
	require.NoError(t, err)
	require.Len(t, f.Points, 1)
	assert.Equal(t, "B", f.Points[0].Record["genre"])

	m = send(m, runes("l"))
	f, err = m.chart.Render()
	require.NoError(t, err)
	assert.Len(t, f.Points, 3)
}

func TestHoverShowsTooltip(t *testing.T) {
	m := loaded(t)
	f, err := m.chart.Render()
	require.NoError(t, err)
	p := f.Points[1].Pixel
	cx, cy := cellOf(p)

	m = send(m, tea.MouseMsg{X: cx, Y: cy + headerHeight, Action: tea.MouseActionMotion})
	assert.True(t, m.hovering)
	tip := m.chart.Shown()
	require.NotNil(t, tip)
	assert.Equal(t, "B", tip.Title)
	require.Len(t, tip.Items, 1)
	assert.Equal(t, "US", tip.Items[0].Name)
	assert.Equal(t, "150", tip.Items[0].Value)
	assert.Contains(t, m.hoverText(), "genre=B")

	out := renderFrame(f, tip, m.mapW, m.mapH)
	assert.Contains(t, out, "US: 150")

	m = send(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	assert.False(t, m.hovering)
	assert.Nil(t, m.chart.Shown())
}

func TestStepCursor(t *testing.T) {
	m := loaded(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, m.chart.Shown())
	assert.Equal(t, "A", m.chart.Shown().Title)
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "B", m.chart.Shown().Title)
	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "C", m.chart.Shown().Title)
}

func TestPaste(t *testing.T) {
	m := send(New(nil), tea.WindowSizeMsg{Width: 80, Height: 24})
	m = send(m, runes("p"))
	require.True(t, m.pasteMode)
	m.ta.SetValue("x\ty\n1\t2\n3\t4")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.pasteMode)
	require.NotNil(t, m.chart, m.status)
	assert.Equal(t, "pasted", m.data.Name)
	assert.Len(t, m.data.Records, 2)
	x, y, _ := m.chart.Fields()
	assert.Equal(t, "x", x)
	assert.Equal(t, "y", y)
}

func TestRenderFrameFitsCanvas(t *testing.T) {
	m := loaded(t)
	f, err := m.chart.Render()
	require.NoError(t, err)
	out := renderFrame(f, nil, m.mapW, m.mapH)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, m.mapH)
	for _, l := range lines {
		assert.Equal(t, m.mapW, lipgloss.Width(l))
	}
	assert.Contains(t, out, "EU")
	assert.Contains(t, out, "US")
	assert.Contains(t, m.View(), "gochart")
}

func TestAttrTable(t *testing.T) {
	cols, rows := attrTable([]string{"genre", "a-very-long-column-name-indeed"}, [][]string{{"A", "1", "extra"}, {"B"}})
	require.Len(t, cols, 3)
	assert.Equal(t, 4, cols[0].Width)
	assert.Equal(t, 7, cols[1].Width)
	assert.Equal(t, maxColW, cols[2].Width)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "A", "1"}, []string(rows[0]))
	assert.Equal(t, []string{"2", "B", ""}, []string(rows[1]))
}
