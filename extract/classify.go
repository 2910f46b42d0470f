// Package extract classifies the tables on a schema documentation page and
// builds column and primary-key records from them.
package extract

import (
	"strings"

	"github.com/fwojciec/schemadoc"
)

// Header phrases that identify the primary-key table.
const (
	columnNamePhrase      = "Column Name"
	ordinalPositionPhrase = "Ordinal Position"
)

// Classification holds the tables recognized on one page.
// Either field may be nil.
type Classification struct {
	PrimaryKey *schemadoc.Table
	Columns    *schemadoc.Table
}

// Recognized reports whether a column-definition table was found.
func (c Classification) Recognized() bool {
	return c.Columns != nil
}

// Classify labels the tables of one page. The first table (in document
// order) whose header contains both "Column Name" and "Ordinal Position" is
// the primary-key table. The first table whose first body row starts with a
// numeric cell is the column-definition table.
func Classify(tables []schemadoc.Table) Classification {
	var c Classification
	for i := range tables {
		t := &tables[i]
		if c.PrimaryKey == nil && IsPrimaryKeyTable(*t) {
			c.PrimaryKey = t
		}
		if c.Columns == nil && IsColumnTable(*t) {
			c.Columns = t
		}
	}
	return c
}

// IsPrimaryKeyTable reports whether t's header names both the column and
// its ordinal position.
func IsPrimaryKeyTable(t schemadoc.Table) bool {
	h := t.HeaderText()
	return strings.Contains(h, columnNamePhrase) && strings.Contains(h, ordinalPositionPhrase)
}

// IsColumnTable reports whether t's first body row starts with a numeric cell.
func IsColumnTable(t schemadoc.Table) bool {
	body := t.Body()
	if len(body) == 0 {
		return false
	}
	return isNumeric(body[0].Cell(0))
}

// isNumeric reports whether s is non-empty and made only of ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
