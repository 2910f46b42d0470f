package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/schemadoc"
	"github.com/fwojciec/schemadoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Append-only summary log

func TestSummaryFile_AppendWritesHeaderOnce(t *testing.T) {
	t.Parallel()

	// Given an empty directory
	path := filepath.Join(t.TempDir(), "out", "processing_summary.csv")
	log := fs.NewSummaryFile(path)
	ctx := context.Background()

	// When I append two outcomes
	require.NoError(t, log.Append(ctx, schemadoc.OutcomeEntry{
		Partition: "A", ItemName: "ACCOUNT", RecordCount: 12, Status: schemadoc.StatusSuccess, Duration: 1500 * time.Millisecond,
	}))
	require.NoError(t, log.Append(ctx, schemadoc.OutcomeEntry{
		Partition: "A", ItemName: "ADDRESS", Status: schemadoc.StatusError, ErrorMessage: "timeout, after 60s",
	}))

	// Then the header appears exactly once followed by both rows
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Letter,Table_Name,Column_Count,Status,Error,Processing_Time", lines[0])
	assert.Equal(t, "A,ACCOUNT,12,Success,,1.5", lines[1])
	assert.Equal(t, `A,ADDRESS,0,Error,"timeout, after 60s",0`, lines[2])
}

func TestSummaryFile_AppendPreservesExistingRows(t *testing.T) {
	t.Parallel()

	// Given a summary from a prior run
	path := filepath.Join(t.TempDir(), "processing_summary.csv")
	prior := "Letter,Table_Name,Column_Count,Status,Error,Processing_Time\nA,ACCOUNT,3,Success,,0.2\n"
	require.NoError(t, os.WriteFile(path, []byte(prior), 0644))

	// When I append
	require.NoError(t, fs.NewSummaryFile(path).Append(context.Background(), schemadoc.OutcomeEntry{
		Partition: "B", ItemName: "BILLING", Status: schemadoc.StatusNoData,
	}))

	// Then the prior content is untouched
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), prior))
	assert.Contains(t, string(data), "B,BILLING,0,No Data,,0\n")
}

func TestSummaryFile_ProcessedItems(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processing_summary.csv")
	log := fs.NewSummaryFile(path)
	ctx := context.Background()

	// A missing file has no processed items
	items, err := log.ProcessedItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	for _, e := range []schemadoc.OutcomeEntry{
		{Partition: "C", ItemName: "CLAIM", Status: schemadoc.StatusSuccess, RecordCount: 4},
		{Partition: "C", ItemName: "CODE", Status: schemadoc.StatusError, ErrorMessage: "boom"},
		{Partition: "C", ItemName: "COST", Status: schemadoc.StatusNoData},
	} {
		require.NoError(t, log.Append(ctx, e))
	}

	// Every status counts as processed
	items, err = log.ProcessedItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"CLAIM": true, "CODE": true, "COST": true}, items)

	entries, err := log.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, schemadoc.OutcomeEntry{Partition: "C", ItemName: "CODE", Status: schemadoc.StatusError, ErrorMessage: "boom"}, entries[1])
}
