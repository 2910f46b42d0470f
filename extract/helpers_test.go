package extract_test

import (
	"strings"

	"github.com/fwojciec/schemadoc"
)

// row builds a table row whose text is rendered like a browser's innerText.
func row(cells ...string) schemadoc.Row {
	return schemadoc.Row{Cells: cells, Text: strings.Join(cells, "\t")}
}

func table(rows ...schemadoc.Row) schemadoc.Table {
	return schemadoc.Table{Rows: rows}
}

// pkTable returns a primary-key table listing the given columns.
func pkTable(names ...string) schemadoc.Table {
	t := table(row("Column Name", "Ordinal Position"))
	for i, n := range names {
		t.Rows = append(t.Rows, row(n, string(rune('1'+i))))
	}
	return t
}
