package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/mattn/go-runewidth"
)

const maxColW = 24

// refreshAttrsFromCurrent rebuilds the table columns and rows from the
// loaded dataset.
func (m *Model) refreshAttrsFromCurrent() {
	if m.data == nil || len(m.data.Fields) == 0 || len(m.data.Records) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showAttrs = false
		m.status = "no records for current dataset"
		return
	}
	tcols, trows := attrTable(m.data.Fields, m.data.Rows())
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// attrTable numbers the rows and sizes each column to its title, capped.
func attrTable(cols []string, rows [][]string) ([]table.Column, []table.Row) {
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(runewidth.StringWidth(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		cells := make([]string, 0, len(tcols))
		cells = append(cells, fmt.Sprintf("%d", i+1))
		cells = append(cells, r...)
		// Normalize each row to match the number of table columns
		if len(cells) < len(tcols) {
			cells = append(cells, make([]string, len(tcols)-len(cells))...)
		} else if len(cells) > len(tcols) {
			cells = cells[:len(tcols)]
		}
		trows = append(trows, table.Row(cells))
	}
	return tcols, trows
}
