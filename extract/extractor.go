package extract

import (
	"log/slog"

	"github.com/fwojciec/schemadoc"
)

// Compile-time interface verification.
var (
	_ schemadoc.Extractor = (*ColumnExtractor)(nil)
	_ schemadoc.Extractor = (*KeyExtractor)(nil)
)

// ColumnExtractor produces full column metadata for a page.
type ColumnExtractor struct {
	logger *slog.Logger
}

// NewColumnExtractor creates a ColumnExtractor. A nil logger discards output.
func NewColumnExtractor(logger *slog.Logger) *ColumnExtractor {
	return &ColumnExtractor{logger: orDiscard(logger)}
}

// Extract classifies tables and builds one ColumnRecord per defined column.
func (e *ColumnExtractor) Extract(tableName string, tables []schemadoc.Table) []schemadoc.Record {
	c := Classify(tables)
	if !c.Recognized() {
		e.logger.Debug("no column table", "table", tableName, "tables", len(tables))
		return nil
	}
	keys := PrimaryKeyNames(c.PrimaryKey)
	columns := BuildColumns(tableName, *c.Columns, keys)
	e.logger.Debug("columns extracted",
		"table", tableName,
		"columns", len(columns),
		"primary_keys", len(keys),
	)
	records := make([]schemadoc.Record, len(columns))
	for i, col := range columns {
		records[i] = col
	}
	return records
}

// KeyExtractor produces primary-key records for a page.
type KeyExtractor struct {
	rules  []KeyRule
	logger *slog.Logger
}

// NewKeyExtractor creates a KeyExtractor using DefaultKeyRules when rules is empty.
func NewKeyExtractor(logger *slog.Logger, rules ...KeyRule) *KeyExtractor {
	if len(rules) == 0 {
		rules = DefaultKeyRules()
	}
	return &KeyExtractor{rules: rules, logger: orDiscard(logger)}
}

// Extract returns the primary-key columns of the page.
func (e *KeyExtractor) Extract(tableName string, tables []schemadoc.Table) []schemadoc.Record {
	c := Classify(tables)
	keys := BuildPrimaryKeys(tableName, c, e.rules)
	e.logger.Debug("primary keys extracted",
		"table", tableName,
		"explicit", c.PrimaryKey != nil,
		"keys", len(keys),
	)
	records := make([]schemadoc.Record, len(keys))
	for i, k := range keys {
		records[i] = k
	}
	return records
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
