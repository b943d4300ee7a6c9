package tui

import (
	"os"

	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gochart/internal/chart"
	"gochart/internal/coord"
	"gochart/internal/source"
)

// Screen layout, in cells.
const (
	headerHeight = 1
	footerHeight = 2
	sidebarWidth = 28
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	log    *zap.Logger
	keys   keyMap
	help   help.Model

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	data  *source.Dataset
	chart *chart.Chart

	// plot area size in cells
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int

	// keyboard cursor over the plotted records, -1 when unset
	cursor int

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		helpVisible: true,
		status:      "gochart ready",
		log:         log,
		keys:        defaultKeys(),
		help:        help.New(),
		cursor:      -1,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste CSV, TSV or JSON records here. Press Enter to chart; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a data or chart file at launch.
func NewWithPath(path string, log *zap.Logger) Model {
	m := New(log)
	m.loadPath(path)
	return m
}

// WithCoord switches the loaded chart, if any, to the coordinate type typ.
func (m Model) WithCoord(typ coord.Type) Model {
	if m.chart != nil {
		m.switchCoord(typ)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// mapRect returns the origin and size of the plot area in screen cells.
func (m Model) mapRect() (x, y, w, h int) {
	side := 0
	if m.showSidebar {
		side = sidebarWidth
	}
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	w = max(10, contentWidth-side-1)
	if m.showSidebar {
		x = side + 1
	}
	return x, headerHeight, w, contentHeight
}

// layoutMap recomputes the plot area and resizes the chart to it.
func (m *Model) layoutMap() {
	_, _, w, h := m.mapRect()
	m.mapW, m.mapH = w, h
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, h-2)
	}
	if m.chart != nil {
		m.chart.Resize(float64(w*microW), float64(h*microH))
	}
}
