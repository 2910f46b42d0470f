package schemadoc

import (
	"context"
	"errors"
	"time"
)

// Status is the outcome of processing one item.
type Status string

// Status values as written to the summary log.
const (
	StatusSuccess Status = "Success"
	StatusNoData  Status = "No Data"
	StatusError   Status = "Error"
)

// OutcomeEntry is one row of the append-only summary log.
type OutcomeEntry struct {
	Partition    Partition
	ItemName     string
	RecordCount  int
	Status       Status
	ErrorMessage string
	Duration     time.Duration

	// PageHash is a content hash of the fetched page, empty when the fetch failed.
	// It is not part of the summary log file.
	PageHash string
}

// ItemResult is the outcome of processing one item, carrying the extracted
// records alongside the status instead of signaling failure by panic or error.
type ItemResult struct {
	Item     LinkEntry
	Records  []Record
	Status   Status
	Err      error
	Duration time.Duration
	PageHash string
}

// Entry projects the result into a summary log row for partition p.
func (r *ItemResult) Entry(p Partition) OutcomeEntry {
	e := OutcomeEntry{
		Partition:   p,
		ItemName:    r.Item.Name,
		RecordCount: len(r.Records),
		Status:      r.Status,
		Duration:    r.Duration,
		PageHash:    r.PageHash,
	}
	var appErr *Error
	switch {
	case r.Err == nil:
	case errors.As(r.Err, &appErr):
		e.ErrorMessage = appErr.Message
	default:
		e.ErrorMessage = r.Err.Error()
	}
	return e
}

// SummaryLog is the append-only record of item outcomes.
type SummaryLog interface {
	// Append writes one outcome. Entries are never rewritten.
	Append(ctx context.Context, entry OutcomeEntry) error

	// ProcessedItems returns the names of every item with a recorded outcome,
	// regardless of status.
	ProcessedItems(ctx context.Context) (map[string]bool, error)
}

// ItemSink receives each item's outcome and records after the item is processed.
type ItemSink interface {
	Observe(ctx context.Context, entry OutcomeEntry, records []Record) error
}

// ColumnService queries previously extracted column metadata.
type ColumnService interface {
	// FindColumns returns columns matching the filter ordered by table name
	// and ordinal position.
	FindColumns(ctx context.Context, filter ColumnFilter) ([]*ColumnRecord, error)

	// FindPrimaryKeys returns the primary-key records of one table.
	FindPrimaryKeys(ctx context.Context, tableName string) ([]*PrimaryKeyRecord, error)
}

// ColumnFilter represents a filter for FindColumns.
type ColumnFilter struct {
	TableName  *string `json:"tableName"`
	PrimaryKey *bool   `json:"primaryKey"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
