package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/schemadoc"
)

var (
	_ schemadoc.CheckpointStore = (*LoggingCheckpointStore)(nil)
	_ schemadoc.SummaryLog      = (*LoggingSummaryLog)(nil)
	_ schemadoc.PartitionWriter = (*LoggingPartitionWriter)(nil)
)

// LoggingCheckpointStore wraps a CheckpointStore with debug logging.
type LoggingCheckpointStore struct {
	next   schemadoc.CheckpointStore
	logger *slog.Logger
}

// NewLoggingCheckpointStore creates a new LoggingCheckpointStore.
func NewLoggingCheckpointStore(next schemadoc.CheckpointStore, logger *slog.Logger) *LoggingCheckpointStore {
	return &LoggingCheckpointStore{next: next, logger: logger}
}

// Load delegates to the wrapped store and logs the loaded position.
func (s *LoggingCheckpointStore) Load(ctx context.Context) (state schemadoc.ProgressState, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("load progress state",
			"processed", len(state.ProcessedList()),
			"current", string(state.Current),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped store and logs the saved position.
func (s *LoggingCheckpointStore) Save(ctx context.Context, state schemadoc.ProgressState) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save progress state",
			"processed", len(state.ProcessedList()),
			"current", string(state.Current),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, state)
}

// LoggingSummaryLog wraps a SummaryLog with debug logging.
type LoggingSummaryLog struct {
	next   schemadoc.SummaryLog
	logger *slog.Logger
}

// NewLoggingSummaryLog creates a new LoggingSummaryLog.
func NewLoggingSummaryLog(next schemadoc.SummaryLog, logger *slog.Logger) *LoggingSummaryLog {
	return &LoggingSummaryLog{next: next, logger: logger}
}

// Append delegates to the wrapped log and logs the outcome written.
func (l *LoggingSummaryLog) Append(ctx context.Context, entry schemadoc.OutcomeEntry) (err error) {
	defer func(begin time.Time) {
		l.logger.Debug("append outcome",
			"partition", string(entry.Partition),
			"item", entry.ItemName,
			"status", string(entry.Status),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Append(ctx, entry)
}

// ProcessedItems delegates to the wrapped log and logs the index size.
func (l *LoggingSummaryLog) ProcessedItems(ctx context.Context) (items map[string]bool, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("load processed items",
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.ProcessedItems(ctx)
}

// LoggingPartitionWriter wraps a PartitionWriter with debug logging.
type LoggingPartitionWriter struct {
	next   schemadoc.PartitionWriter
	logger *slog.Logger
}

// NewLoggingPartitionWriter creates a new LoggingPartitionWriter.
func NewLoggingPartitionWriter(next schemadoc.PartitionWriter, logger *slog.Logger) *LoggingPartitionWriter {
	return &LoggingPartitionWriter{next: next, logger: logger}
}

// WritePartition delegates to the wrapped writer and logs the record counts.
func (w *LoggingPartitionWriter) WritePartition(ctx context.Context, p schemadoc.Partition, records []schemadoc.Record) (n int, err error) {
	defer func(begin time.Time) {
		w.logger.Debug("write partition",
			"partition", string(p),
			"records", len(records),
			"stored", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WritePartition(ctx, p, records)
}
