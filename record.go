package schemadoc

import "strconv"

// Output file headers for each extraction mode.
var (
	ColumnHeader     = []string{"table_name", "column_name", "primary_key", "ordinal_position", "type", "discontinued", "description"}
	PrimaryKeyHeader = []string{"table_name", "column_name", "is_primary_key", "ordinal_position"}
)

// Record is one extracted row destined for a partition output file.
type Record interface {
	// Key identifies the record for deduplication.
	Key() RecordKey

	// Fields returns the record's values in output file column order.
	Fields() []string
}

// RecordKey identifies a column within a documented table.
type RecordKey struct {
	TableName  string
	ColumnName string
}

// ColumnRecord is the full metadata for one column of a documented table.
type ColumnRecord struct {
	TableName       string `json:"tableName"`
	ColumnName      string `json:"columnName"`
	PrimaryKey      bool   `json:"primaryKey"`
	OrdinalPosition int    `json:"ordinalPosition"`
	Type            string `json:"type"`
	Discontinued    string `json:"discontinued"`
	Description     string `json:"description"`
}

// Key implements Record.
func (r *ColumnRecord) Key() RecordKey {
	return RecordKey{TableName: r.TableName, ColumnName: r.ColumnName}
}

// Fields implements Record.
func (r *ColumnRecord) Fields() []string {
	return []string{
		r.TableName,
		r.ColumnName,
		yesNo(r.PrimaryKey),
		strconv.Itoa(r.OrdinalPosition),
		r.Type,
		r.Discontinued,
		r.Description,
	}
}

// PrimaryKeyRecord is the reduced projection produced by the primary-key-only mode.
// OrdinalPosition is kept as text because the explicit key table may omit it.
type PrimaryKeyRecord struct {
	TableName       string `json:"tableName"`
	ColumnName      string `json:"columnName"`
	IsPrimaryKey    bool   `json:"isPrimaryKey"`
	OrdinalPosition string `json:"ordinalPosition"`
}

// Key implements Record.
func (r *PrimaryKeyRecord) Key() RecordKey {
	return RecordKey{TableName: r.TableName, ColumnName: r.ColumnName}
}

// Fields implements Record.
func (r *PrimaryKeyRecord) Fields() []string {
	return []string{r.TableName, r.ColumnName, yesNo(r.IsPrimaryKey), r.OrdinalPosition}
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// Extractor turns the tables of one fetched page into records.
// An empty result means the page had no recognizable data.
type Extractor interface {
	Extract(tableName string, tables []Table) []Record
}
