package extract

import (
	"strings"

	"github.com/fwojciec/schemadoc"
)

// Verdict is a key rule's decision about one row.
type Verdict int

// Verdict values. Undecided passes the row to the next rule. None of the
// default rules return NotKey.
const (
	Undecided Verdict = iota
	IsKey
	NotKey
)

// KeyRow is the view of one column-definition row that key rules inspect.
type KeyRow struct {
	ColumnName string
	Row        schemadoc.Row

	// Indicator is the index of a "Primary Key"/"PK" header column, or -1.
	Indicator int
}

// KeyRule decides primary-key membership for a row, or defers.
type KeyRule struct {
	Name  string
	Apply func(KeyRow) Verdict
}

// explicitKeyValues are the indicator cell values that mark a primary key.
var explicitKeyValues = map[string]bool{"Y": true, "YES": true, "TRUE": true, "1": true, "PK": true}

// ExplicitIndicatorRule reads the "Primary Key"/"PK" column when the table
// has one. Values other than the truthy ones defer to the next rule.
var ExplicitIndicatorRule = KeyRule{
	Name: "explicit-indicator",
	Apply: func(r KeyRow) Verdict {
		if r.Indicator < 0 {
			return Undecided
		}
		if explicitKeyValues[strings.ToUpper(strings.TrimSpace(r.Row.Cell(r.Indicator)))] {
			return IsKey
		}
		return Undecided
	},
}

// NamingRule treats names ending in _ID or containing KEY or PK as keys.
// It is deliberately approximate and produces false positives.
var NamingRule = KeyRule{
	Name: "naming",
	Apply: func(r KeyRow) Verdict {
		name := strings.ToUpper(r.ColumnName)
		if strings.HasSuffix(name, "_ID") || strings.Contains(name, "KEY") || strings.Contains(name, "PK") {
			return IsKey
		}
		return Undecided
	},
}

// RowTextRule looks for key markers anywhere in the row text.
var RowTextRule = KeyRule{
	Name: "row-text",
	Apply: func(r KeyRow) Verdict {
		text := strings.ToUpper(r.Row.Text)
		if strings.Contains(text, "PRIMARY KEY") || strings.Contains(text, "PK:") || strings.Contains(text, " PK ") {
			return IsKey
		}
		return Undecided
	},
}

// DefaultKeyRules returns the fallback rules in priority order.
func DefaultKeyRules() []KeyRule {
	return []KeyRule{ExplicitIndicatorRule, NamingRule, RowTextRule}
}

// ResolveKey evaluates rules in order and stops at the first decisive one.
// It returns the decision and the name of the rule that made it, or "" when
// no rule decided and the row defaults to not a key.
func ResolveKey(rules []KeyRule, row KeyRow) (bool, string) {
	for _, rule := range rules {
		switch rule.Apply(row) {
		case IsKey:
			return true, rule.Name
		case NotKey:
			return false, rule.Name
		}
	}
	return false, ""
}

// indicatorColumn returns the index of the first header cell mentioning
// "Primary Key" or "PK", or -1.
func indicatorColumn(t schemadoc.Table) int {
	h, ok := t.Header()
	if !ok {
		return -1
	}
	for i, text := range h.Cells {
		if strings.Contains(text, "Primary Key") || strings.Contains(text, "PK") {
			return i
		}
	}
	return -1
}

// ordinalColumn returns the index of the header cell containing
// "Ordinal Position", or -1.
func ordinalColumn(t schemadoc.Table) int {
	h, ok := t.Header()
	if !ok {
		return -1
	}
	for i, text := range h.Cells {
		if strings.Contains(text, ordinalPositionPhrase) {
			return i
		}
	}
	return -1
}

// ExplicitPrimaryKeys returns one record per row of the primary-key table.
// Rows with fewer than two cells or without a column name are skipped.
func ExplicitPrimaryKeys(tableName string, t schemadoc.Table) []*schemadoc.PrimaryKeyRecord {
	ordinal := ordinalColumn(t)
	var records []*schemadoc.PrimaryKeyRecord
	for _, row := range t.Body() {
		name := row.Cell(0)
		if len(row.Cells) < 2 || name == "" {
			continue
		}
		r := &schemadoc.PrimaryKeyRecord{
			TableName:    tableName,
			ColumnName:   name,
			IsPrimaryKey: true,
		}
		if ordinal >= 0 {
			r.OrdinalPosition = row.Cell(ordinal)
		}
		records = append(records, r)
	}
	return records
}

// InferredPrimaryKeys applies rules to every defining row of a
// column-definition table and returns only the rows resolved as keys.
func InferredPrimaryKeys(tableName string, t schemadoc.Table, rules []KeyRule) []*schemadoc.PrimaryKeyRecord {
	indicator := indicatorColumn(t)
	var records []*schemadoc.PrimaryKeyRecord
	for _, row := range t.Body() {
		if len(row.Cells) < minColumnCells || !isNumeric(row.Cells[0]) {
			continue
		}
		kr := KeyRow{ColumnName: row.Cells[1], Row: row, Indicator: indicator}
		if ok, _ := ResolveKey(rules, kr); !ok {
			continue
		}
		records = append(records, &schemadoc.PrimaryKeyRecord{
			TableName:       tableName,
			ColumnName:      row.Cells[1],
			IsPrimaryKey:    true,
			OrdinalPosition: row.Cells[0],
		})
	}
	return records
}

// BuildPrimaryKeys resolves primary keys for a page: from the explicit
// primary-key table when it yields rows, otherwise by applying rules to the
// column-definition table.
func BuildPrimaryKeys(tableName string, c Classification, rules []KeyRule) []*schemadoc.PrimaryKeyRecord {
	if c.PrimaryKey != nil {
		if records := ExplicitPrimaryKeys(tableName, *c.PrimaryKey); len(records) > 0 {
			return records
		}
	}
	if c.Columns == nil {
		return nil
	}
	return InferredPrimaryKeys(tableName, *c.Columns, rules)
}
