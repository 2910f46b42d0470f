package extract

import (
	"strconv"
	"strings"

	"github.com/fwojciec/schemadoc"
)

// minColumnCells is the number of cells a row needs to define a column:
// ordinal position, name, type, and discontinued flag.
const minColumnCells = 4

// PrimaryKeyNames returns the column names listed in a primary-key table,
// in row order. A nil table yields an empty set.
func PrimaryKeyNames(t *schemadoc.Table) map[string]bool {
	names := make(map[string]bool)
	if t == nil {
		return names
	}
	for _, row := range t.Body() {
		if len(row.Cells) == 0 {
			continue
		}
		names[row.Cells[0]] = true
	}
	return names
}

// BuildColumns walks the body of a column-definition table and returns one
// record per defining row. A defining row starts with a numeric cell and has
// at least four cells. Any other row continues the description of the most
// recently defined column; continuation rows before the first definition are
// dropped. Descriptions are folded by column name, so every record carries
// the final accumulated description for its name.
func BuildColumns(tableName string, t schemadoc.Table, primaryKeys map[string]bool) []*schemadoc.ColumnRecord {
	var records []*schemadoc.ColumnRecord
	descriptions := make(map[string]string)
	current := ""
	active := false

	for _, row := range t.Body() {
		if len(row.Cells) >= minColumnCells && isNumeric(row.Cells[0]) {
			ordinal, _ := strconv.Atoi(row.Cells[0])
			name := row.Cells[1]
			records = append(records, &schemadoc.ColumnRecord{
				TableName:       tableName,
				ColumnName:      name,
				PrimaryKey:      primaryKeys[name],
				OrdinalPosition: ordinal,
				Type:            row.Cells[2],
				Discontinued:    row.Cells[3],
			})
			current = name
			active = true
			descriptions[current] = row.Cell(4)
			continue
		}

		if !active || len(row.Cells) == 0 {
			continue
		}
		if extra := collapseSpace(row.Text); extra != "" {
			descriptions[current] = joinText(descriptions[current], extra)
		}
	}

	for _, r := range records {
		r.Description = descriptions[r.ColumnName]
	}
	return records
}

// joinText appends extra to existing separated by a single space.
func joinText(existing, extra string) string {
	if existing == "" {
		return extra
	}
	return existing + " " + extra
}

// collapseSpace trims s and replaces internal whitespace runs, including the
// tabs between cells, with single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
