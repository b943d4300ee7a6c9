package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"gochart/internal/coord"
	"gochart/internal/geom"
	"gochart/internal/source"
)

const (
	zoomStep   = 1.2
	rotateStep = 15.0
)

var coordCycle = []coord.Type{coord.TypeRect, coord.TypePolar, coord.TypeTheta, coord.TypeHelix}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layoutMap()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if cmd, done := m.handleKey(msg); done {
			return m, cmd
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := source.ParseInline(text)
		if err != nil {
			m.status = "paste error: " + err.Error()
			return m, nil
		}
		c, err := chartFor(d, m.log)
		if err != nil {
			m.status = "chart error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setData(d, c)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey applies a global key. done reports that the key was consumed
// and must not reach the file list.
func (m *Model) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, done bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.layoutMap()
		return nil, true
	case key.Matches(msg, m.keys.Open):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
		return nil, true
	case key.Matches(msg, m.keys.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
		return nil, true
	case key.Matches(msg, m.keys.Help):
		// short help, full help, hidden
		switch {
		case !m.helpVisible:
			m.helpVisible, m.help.ShowAll = true, false
		case !m.help.ShowAll:
			m.help.ShowAll = true
		default:
			m.helpVisible = false
		}
		return nil, true
	case key.Matches(msg, m.keys.Attrs):
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
		return nil, true
	}
	if m.showSidebar && (msg.String() == "up" || msg.String() == "down") {
		return nil, false
	}
	if m.chart == nil {
		return nil, false
	}
	switch {
	case key.Matches(msg, m.keys.Inspect):
		m.inspect()
	case key.Matches(msg, m.keys.ZoomIn):
		m.chart.Coordinate().Scale(zoomStep, zoomStep)
		m.status = "zoom in"
	case key.Matches(msg, m.keys.ZoomOut):
		m.chart.Coordinate().Scale(1/zoomStep, 1/zoomStep)
		m.status = "zoom out"
	case key.Matches(msg, m.keys.Rotate):
		m.chart.Coordinate().Rotate(rotateStep)
		m.status = fmt.Sprintf("rotate %+g°", rotateStep)
	case key.Matches(msg, m.keys.Transpose):
		m.chart.Coordinate().Transpose()
		m.status = fmt.Sprintf("transposed: %v", m.chart.Coordinate().Transposed())
	case key.Matches(msg, m.keys.ReflectX):
		m.chart.Coordinate().Reflect("x")
		m.status = "reflect x"
	case key.Matches(msg, m.keys.ReflectY):
		m.chart.Coordinate().Reflect("y")
		m.status = "reflect y"
	case key.Matches(msg, m.keys.Coord):
		m.cycleCoord()
	case key.Matches(msg, m.keys.ResetOps):
		cur := m.chart.Coordinate()
		m.chart.Coord(cur.Type(), cur.Config())
		m.status = "coord reset: " + string(cur.Type())
	case key.Matches(msg, m.keys.Series):
		n, _ := strconv.Atoi(msg.String())
		m.toggleSeries(n - 1)
	case key.Matches(msg, m.keys.AllSeries):
		for _, f := range m.chart.LegendFields() {
			m.chart.LegendFor(f).Reset()
		}
		m.status = "all series shown"
	case key.Matches(msg, m.keys.Prev):
		m.step(-1)
	case key.Matches(msg, m.keys.Next):
		m.step(1)
	default:
		return nil, false
	}
	return nil, true
}

// cycleCoord switches to the next base topology, keeping the operations.
func (m *Model) cycleCoord() {
	cur := m.chart.Coordinate().Type()
	next := coordCycle[0]
	for i, t := range coordCycle {
		if t == cur {
			next = coordCycle[(i+1)%len(coordCycle)]
		}
	}
	m.switchCoord(next)
}

func (m *Model) switchCoord(typ coord.Type) {
	cur := m.chart.Coordinate()
	c := m.chart.Coord(typ, cur.Config())
	for _, op := range cur.Ops() {
		c.Apply(op)
	}
	m.status = "coord: " + string(typ)
}

// toggleSeries flips the i-th entry of the first legend.
func (m *Model) toggleSeries(i int) {
	fields := m.chart.LegendFields()
	if len(fields) == 0 {
		m.status = "no legend"
		return
	}
	ctl := m.chart.LegendFor(fields[0])
	items := ctl.Items()
	if i < 0 || i >= len(items) {
		return
	}
	checked, err := ctl.Toggle(items[i].Value)
	if err != nil {
		m.status = "legend: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("%s %s: %v", fields[0], items[i].Name, checked)
}

// step moves the keyboard cursor across the plotted records in screen
// order and shows the tooltip there.
func (m *Model) step(d int) {
	f, err := m.chart.Render()
	if err != nil || len(f.Points) == 0 {
		return
	}
	order := make([]int, len(f.Points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := f.Points[order[a]].Pixel, f.Points[order[b]].Pixel
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})
	pos := 0
	if m.cursor >= 0 {
		for i, idx := range order {
			if idx == m.cursor {
				pos = (i + d + len(order)) % len(order)
			}
		}
	}
	m.cursor = order[pos]
	m.chart.PointerShow(f.Points[m.cursor].Pixel)
}

// handleMouse tracks the pointer over the plot and forwards it to the chart.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	ox, oy, w, h := m.mapRect()
	cx, cy := msg.X-ox, msg.Y-oy
	if cx < 0 || cx >= w || cy < 0 || cy >= h || m.pasteMode || m.showAttrs {
		if m.hovering && m.chart != nil {
			m.chart.PointerLeave()
		}
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy
	if m.chart == nil {
		return
	}
	p := geom.Pt(float64(cx*microW)+microW/2, float64(cy*microH)+microH/2)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.chart.Coordinate().Scale(zoomStep, zoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.chart.Coordinate().Scale(1/zoomStep, 1/zoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.chart.PointerClick(p)
	default:
		m.cursor = -1
		m.chart.PointerMove(p)
	}
}

// inspect summarises the dataset, the bindings and the shown tooltip.
func (m *Model) inspect() {
	if m.inspectPopup != "" {
		m.inspectPopup = ""
		return
	}
	x, y, color := m.chart.Fields()
	cur := m.chart.Coordinate()
	ops := make([]string, 0, len(cur.Ops()))
	for _, op := range cur.Ops() {
		ops = append(ops, string(op.Kind))
	}
	meta := []string{
		fmt.Sprintf("name: %s", m.data.Name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("records: %d  fields: %d", len(m.data.Records), len(m.data.Fields)),
		fmt.Sprintf("x: %s  y: %s  color: %s", x, y, color),
		fmt.Sprintf("coord: %s [%s]", cur.Type(), strings.Join(ops, " ")),
	}
	if f, err := m.chart.Render(); err != nil {
		meta = append(meta, "error: "+err.Error())
	} else {
		meta = append(meta, fmt.Sprintf("plotted: %d  skipped: %d", len(f.Points), len(f.Warnings)))
	}
	if tip := m.chart.Shown(); tip != nil {
		meta = append(meta, "")
		meta = append(meta, tooltipLines(tip)...)
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}
