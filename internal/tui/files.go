package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"go.uber.org/zap"

	"gochart/internal/config"
	"gochart/internal/source"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		p := filepath.Join(m.cwd, name)
		if source.Supported(name) || config.IsConfigFile(name) {
			items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: p})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath charts a data file, or builds the chart a config file describes.
func (m *Model) loadPath(p string) {
	m.selPath = p
	if config.IsConfigFile(p) {
		m.loadConfig(p)
		return
	}
	d, err := source.LoadFile(p)
	if err != nil {
		m.fail("load error", err)
		return
	}
	c, err := chartFor(d, m.log)
	if err != nil {
		m.fail("chart error", err)
		return
	}
	m.setData(d, c)
}

func (m *Model) loadConfig(p string) {
	f, err := config.Load(p)
	if err != nil {
		m.fail("config error", err)
		return
	}
	c, err := config.Build(f, m.log)
	if err != nil {
		m.fail("config error", err)
		return
	}
	c.SetMetrics(cellMetrics)
	m.setData(source.NewDataset(filepath.Base(p), c.Records()), c)
}

func (m *Model) fail(what string, err error) {
	m.log.Warn(what, zap.String("path", m.selPath), zap.Error(err))
	m.status = what + ": " + err.Error()
}
