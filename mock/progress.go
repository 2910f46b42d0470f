package mock

import (
	"context"

	"github.com/fwojciec/schemadoc"
)

// Compile-time interface verification.
var (
	_ schemadoc.CheckpointStore = (*CheckpointStore)(nil)
	_ schemadoc.SummaryLog      = (*SummaryLog)(nil)
	_ schemadoc.PartitionWriter = (*PartitionWriter)(nil)
	_ schemadoc.ItemSink        = (*ItemSink)(nil)
	_ schemadoc.ColumnService   = (*ColumnService)(nil)
)

// CheckpointStore is a mock implementation of schemadoc.CheckpointStore.
type CheckpointStore struct {
	LoadFn func(ctx context.Context) (schemadoc.ProgressState, error)
	SaveFn func(ctx context.Context, state schemadoc.ProgressState) error
}

func (s *CheckpointStore) Load(ctx context.Context) (schemadoc.ProgressState, error) {
	return s.LoadFn(ctx)
}

func (s *CheckpointStore) Save(ctx context.Context, state schemadoc.ProgressState) error {
	return s.SaveFn(ctx, state)
}

// SummaryLog is a mock implementation of schemadoc.SummaryLog.
type SummaryLog struct {
	AppendFn         func(ctx context.Context, entry schemadoc.OutcomeEntry) error
	ProcessedItemsFn func(ctx context.Context) (map[string]bool, error)
}

func (l *SummaryLog) Append(ctx context.Context, entry schemadoc.OutcomeEntry) error {
	return l.AppendFn(ctx, entry)
}

func (l *SummaryLog) ProcessedItems(ctx context.Context) (map[string]bool, error) {
	return l.ProcessedItemsFn(ctx)
}

// PartitionWriter is a mock implementation of schemadoc.PartitionWriter.
type PartitionWriter struct {
	WritePartitionFn func(ctx context.Context, p schemadoc.Partition, records []schemadoc.Record) (int, error)
}

func (w *PartitionWriter) WritePartition(ctx context.Context, p schemadoc.Partition, records []schemadoc.Record) (int, error) {
	return w.WritePartitionFn(ctx, p, records)
}

// ItemSink is a mock implementation of schemadoc.ItemSink.
type ItemSink struct {
	ObserveFn func(ctx context.Context, entry schemadoc.OutcomeEntry, records []schemadoc.Record) error
}

func (s *ItemSink) Observe(ctx context.Context, entry schemadoc.OutcomeEntry, records []schemadoc.Record) error {
	return s.ObserveFn(ctx, entry, records)
}

// ColumnService is a mock implementation of schemadoc.ColumnService.
type ColumnService struct {
	FindColumnsFn     func(ctx context.Context, filter schemadoc.ColumnFilter) ([]*schemadoc.ColumnRecord, error)
	FindPrimaryKeysFn func(ctx context.Context, tableName string) ([]*schemadoc.PrimaryKeyRecord, error)
}

func (s *ColumnService) FindColumns(ctx context.Context, filter schemadoc.ColumnFilter) ([]*schemadoc.ColumnRecord, error) {
	return s.FindColumnsFn(ctx, filter)
}

func (s *ColumnService) FindPrimaryKeys(ctx context.Context, tableName string) ([]*schemadoc.PrimaryKeyRecord, error) {
	return s.FindPrimaryKeysFn(ctx, tableName)
}
