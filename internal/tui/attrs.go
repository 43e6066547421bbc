package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromSelection rebuilds the attribute table from the current
// selection's resolved records. Ids whose tiles were evicted since
// selection simply have no row.
func (m *Model) refreshAttrsFromSelection() {
	recs := m.layer.Records()
	if len(recs) == 0 {
		m.showAttrs = false
		m.status = "nothing selected"
		return
	}
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "id", Width: 24},
		{Title: "sourcefile", Width: 18},
		{Title: "x", Width: 10},
		{Title: "y", Width: 10},
	}
	rows := make([]table.Row, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			r.ID,
			r.SourceFile,
			strconv.FormatFloat(r.X, 'f', 2, 64),
			strconv.FormatFloat(r.Y, 'f', 2, 64),
		})
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}
