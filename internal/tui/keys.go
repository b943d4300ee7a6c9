package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Sidebar   key.Binding
	Open      key.Binding
	Paste     key.Binding
	Attrs     key.Binding
	Inspect   key.Binding
	Help      key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Rotate    key.Binding
	Transpose key.Binding
	ReflectX  key.Binding
	ReflectY  key.Binding
	Coord     key.Binding
	ResetOps  key.Binding
	Series    key.Binding
	AllSeries key.Binding
	Prev      key.Binding
	Next      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Sidebar:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "sidebar")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "open")),
		Paste:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Attrs:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attrs")),
		Inspect:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Help:      key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_")),
		Rotate:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotate")),
		Transpose: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "transpose")),
		ReflectX:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x/y", "reflect")),
		ReflectY:  key.NewBinding(key.WithKeys("y")),
		Coord:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "coord")),
		ResetOps:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "reset")),
		Series:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "series")),
		AllSeries: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "all series")),
		Prev:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←→", "step")),
		Next:      key.NewBinding(key.WithKeys("right")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sidebar, k.Open, k.Paste, k.Attrs, k.ZoomIn, k.Rotate, k.Coord, k.Series, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sidebar, k.Open, k.Paste, k.Attrs, k.Inspect},
		{k.ZoomIn, k.Rotate, k.Transpose, k.ReflectX, k.Coord, k.ResetOps},
		{k.Series, k.AllSeries, k.Prev, k.Help, k.Quit},
	}
}
