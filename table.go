package schemadoc

import "strings"

// Row is one table row: the trimmed text of each cell in document order and
// the rendered text of the whole row.
type Row struct {
	Cells []string
	Text  string
}

// Cell returns the text of the i-th cell, or "" if the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Table is an HTML table reduced to its rows. The first row is treated as
// the header regardless of markup.
type Table struct {
	Rows []Row
}

// Header returns the first row of the table.
// The bool result is false if the table has no rows.
func (t Table) Header() (Row, bool) {
	if len(t.Rows) == 0 {
		return Row{}, false
	}
	return t.Rows[0], true
}

// Body returns every row after the header.
func (t Table) Body() []Row {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// HeaderText returns the header cells joined by single spaces.
func (t Table) HeaderText() string {
	h, ok := t.Header()
	if !ok {
		return ""
	}
	return strings.Join(h.Cells, " ")
}

// TableReader parses a rendered page into its tables in document order.
type TableReader interface {
	ReadTables(html string) ([]Table, error)
}

// LinkReader parses the index page into link catalog entries in document order.
// Implementations do not deduplicate; see NewCatalog.
type LinkReader interface {
	ReadLinks(html string) ([]LinkEntry, error)
}
