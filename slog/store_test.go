package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/schemadoc"
	"github.com/fwojciec/schemadoc/mock"
	sdslog "github.com/fwojciec/schemadoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCheckpointStore(t *testing.T) {
	t.Parallel()

	t.Run("logs the loaded position", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.CheckpointStore{
			LoadFn: func(_ context.Context) (schemadoc.ProgressState, error) {
				return schemadoc.ProgressState{
					Processed: map[schemadoc.Partition]bool{"A": true, "B": true},
					Current:   "C",
				}, nil
			},
		}

		state, err := sdslog.NewLoggingCheckpointStore(inner, newDebugLogger(&buf)).Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, schemadoc.Partition("C"), state.Current)
		output := buf.String()
		assert.Contains(t, output, `msg="load progress state"`)
		assert.Contains(t, output, "processed=2")
		assert.Contains(t, output, "current=C")
	})

	t.Run("logs save errors and returns them", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.CheckpointStore{
			SaveFn: func(_ context.Context, _ schemadoc.ProgressState) error {
				return errors.New("read-only file system")
			},
		}

		err := sdslog.NewLoggingCheckpointStore(inner, newDebugLogger(&buf)).
			Save(context.Background(), schemadoc.ProgressState{Current: "D"})

		require.EqualError(t, err, "read-only file system")
		assert.Contains(t, buf.String(), `err="read-only file system"`)
		assert.Contains(t, buf.String(), "current=D")
	})
}

func TestLoggingSummaryLog(t *testing.T) {
	t.Parallel()

	t.Run("logs appended outcomes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		var got schemadoc.OutcomeEntry
		inner := &mock.SummaryLog{
			AppendFn: func(_ context.Context, entry schemadoc.OutcomeEntry) error {
				got = entry
				return nil
			},
		}

		entry := schemadoc.OutcomeEntry{Partition: "P", ItemName: "PATIENT", Status: schemadoc.StatusNoData}
		err := sdslog.NewLoggingSummaryLog(inner, newDebugLogger(&buf)).Append(context.Background(), entry)

		require.NoError(t, err)
		assert.Equal(t, entry, got)
		assert.Contains(t, buf.String(), "item=PATIENT")
		assert.Contains(t, buf.String(), `status="No Data"`)
	})

	t.Run("logs the processed index size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SummaryLog{
			ProcessedItemsFn: func(_ context.Context) (map[string]bool, error) {
				return map[string]bool{"PATIENT": true, "PAT_ENC": true}, nil
			},
		}

		items, err := sdslog.NewLoggingSummaryLog(inner, newDebugLogger(&buf)).ProcessedItems(context.Background())

		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Contains(t, buf.String(), "count=2")
	})
}

func TestLoggingPartitionWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.PartitionWriter{
		WritePartitionFn: func(_ context.Context, _ schemadoc.Partition, records []schemadoc.Record) (int, error) {
			return len(records) + 3, nil
		},
	}

	records := []schemadoc.Record{&schemadoc.PrimaryKeyRecord{TableName: "PATIENT", ColumnName: "PAT_ID", IsPrimaryKey: true}}
	n, err := sdslog.NewLoggingPartitionWriter(inner, newDebugLogger(&buf)).WritePartition(context.Background(), "P", records)

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Contains(t, buf.String(), "partition=P")
	assert.Contains(t, buf.String(), "records=1")
	assert.Contains(t, buf.String(), "stored=4")
}
