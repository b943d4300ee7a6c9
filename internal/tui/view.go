package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gochart/internal/geom"
	"gochart/internal/scale"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, _, mapWidth, mapHeight := m.mapRect()
	contentWidth := max(10, m.width)
	contentHeight := mapHeight

	// Header
	header := titleStyle.Render(" gochart ─ terminal chart viewer ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		// Render attributes table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentWidth-6)
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.helpVisible && m.help.ShowAll:
		box := boxStyle.Render(titleStyle.Render("keys") + "\n\n" + m.help.View(m.keys))
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		// size textarea to map area
		m.ta.SetWidth(mapWidth)
		m.ta.SetHeight(min(mapHeight, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.renderChart(mapWidth, mapHeight))
	}

	// Inspect popup box (center-left overlay, not in map column)
	popup := ""
	if m.inspectPopup != "" && !m.showAttrs {
		maxPopupW := max(20, min(48, contentWidth/2))
		box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(contentWidth, contentHeight, lipgloss.Left, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status and short help on the left, pointer position on the right
	status := dimStyle.Render(" " + m.status + " ")
	if strings.Contains(m.status, "error") {
		status = errStyle.Render(" " + m.status + " ")
	}
	help := ""
	if m.helpVisible && !m.help.ShowAll {
		help = "  " + m.help.View(m.keys)
	}
	coords := ""
	if at := m.hoverText(); at != "" {
		coords = dimStyle.Render("  " + at + "  ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentWidth).MaxHeight(footerHeight).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// renderChart draws the current frame, or a hint when nothing is loaded.
func (m Model) renderChart(w, h int) string {
	if m.chart == nil {
		hint := dimStyle.Render("open a data file with Tab, or paste records with p")
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, hint)
	}
	f, err := m.chart.Render()
	if err != nil {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, errStyle.Render(err.Error()))
	}
	return renderFrame(f, m.chart.Shown(), w, h)
}

// hoverText reads the data position under the pointer off the x and y
// scales.
func (m Model) hoverText() string {
	if !m.hovering || m.chart == nil {
		return ""
	}
	f, err := m.chart.Render()
	if err != nil {
		return ""
	}
	p := geom.Pt(float64(m.hoverCellX*microW)+microW/2, float64(m.hoverCellY*microH)+microH/2)
	if !f.Layout.Plot.Contains(p) {
		return ""
	}
	n := f.Transform.Invert(p)
	x, y, _ := m.chart.Fields()
	xs, errX := m.chart.ScaleFor(x)
	ys, errY := m.chart.ScaleFor(y)
	if errX != nil || errY != nil {
		return ""
	}
	return fmt.Sprintf("%s=%s %s=%s", xs.Alias(), valueText(xs, n.X), ys.Alias(), valueText(ys, n.Y))
}

func valueText(s scale.Scale, t float64) string {
	v := s.Invert(t)
	if v == nil {
		return "-"
	}
	return s.Text(v)
}
