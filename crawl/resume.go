package crawl

import (
	"github.com/fwojciec/schemadoc"
)

// Selection is the work left in a partition after resume filtering.
type Selection struct {
	Items []schemadoc.LinkEntry

	// SkippedBeforeRestart counts items dropped because they precede the
	// restart item.
	SkippedBeforeRestart int

	// SkippedProcessed counts items dropped because the processed-items index
	// already holds them.
	SkippedProcessed int

	// RestartMissing is set when a restart item was requested but does not
	// occur in the partition. The whole partition is kept in that case.
	RestartMissing bool
}

// SelectItems filters a partition's entries for processing.
//
// When restart is non-empty, entries before the first entry named exactly
// restart are dropped. Independently, every entry whose name is in processed
// is dropped. Order is preserved.
func SelectItems(entries []schemadoc.LinkEntry, restart string, processed map[string]bool) Selection {
	var sel Selection

	start := 0
	if restart != "" {
		start = -1
		for i, e := range entries {
			if e.Name == restart {
				start = i
				break
			}
		}
		if start < 0 {
			sel.RestartMissing = true
			start = 0
		}
		sel.SkippedBeforeRestart = start
	}

	for _, e := range entries[start:] {
		if processed[e.Name] {
			sel.SkippedProcessed++
			continue
		}
		sel.Items = append(sel.Items, e)
	}
	return sel
}

// Batches splits items into consecutive chunks of at most size entries.
func Batches(items []schemadoc.LinkEntry, size int) [][]schemadoc.LinkEntry {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var batches [][]schemadoc.LinkEntry
	for len(items) > 0 {
		n := min(size, len(items))
		batches = append(batches, items[:n:n])
		items = items[n:]
	}
	return batches
}
