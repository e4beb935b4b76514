package generate

import (
	"strings"

	"github.com/rowforge/rowforge/lib/ir"
)

// RenderTableCSV serializes one generated table: a header of the column
// names in declared order, then one line per generated row. Every field is
// quoted unconditionally and embedded quotes are doubled, so sentinel and
// free-text values survive any delimiter they contain.
func RenderTableCSV(table *ir.Table, store *Store) string {
	header := make([]string, len(table.Columns))
	columns := make([][]string, len(table.Columns))
	for i, column := range table.Columns {
		header[i] = quoteField(column.Name)
		columns[i] = store.Column(table.ID, column.ID)
	}
	lines := []string{strings.Join(header, ",")}
	for row := 0; row < store.RowCount(table.ID); row++ {
		cells := make([]string, len(columns))
		for i, values := range columns {
			value := ""
			if row < len(values) {
				value = values[row]
			}
			cells[i] = quoteField(value)
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func quoteField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
