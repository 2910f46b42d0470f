// Package goquery implements schemadoc's HTML readers using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/schemadoc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ schemadoc.TableReader = (*TableReader)(nil)

// TableReader extracts every table on a page, including nested tables, in
// document order.
type TableReader struct{}

// NewTableReader creates a new TableReader.
func NewTableReader() *TableReader {
	return &TableReader{}
}

// ReadTables parses html and returns its tables.
func (r *TableReader) ReadTables(content string) ([]schemadoc.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, schemadoc.Errorf(schemadoc.EINVALID, "failed to parse HTML: %v", err)
	}

	var tables []schemadoc.Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		tables = append(tables, readTable(sel))
	})
	return tables, nil
}

// readTable collects the rows that belong directly to sel, skipping rows of
// nested tables.
func readTable(sel *goquery.Selection) schemadoc.Table {
	var t schemadoc.Table
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "tr":
			t.Rows = append(t.Rows, readRow(child))
		case "thead", "tbody", "tfoot":
			child.ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
				t.Rows = append(t.Rows, readRow(tr))
			})
		}
	})
	return t
}

func readRow(tr *goquery.Selection) schemadoc.Row {
	var row schemadoc.Row
	tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
		row.Cells = append(row.Cells, cellText(cell))
	})
	// Cells are separated by tabs, as in a browser's innerText for a row.
	row.Text = strings.TrimSpace(strings.Join(row.Cells, "\t"))
	return row
}

// cellText renders the visible text of a cell with whitespace collapsed.
// Line breaks and block boundaries become spaces so adjacent words do not
// run together, which goquery's Text does not guarantee.
func cellText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style:
			return
		case atom.Br:
			b.WriteByte(' ')
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if n.Type == html.ElementNode && isBlock(n.DataAtom) {
		b.WriteByte(' ')
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Table, atom.Tr, atom.Td, atom.Th,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Pre, atom.Blockquote:
		return true
	}
	return false
}
