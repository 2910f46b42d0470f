// Package crawl runs the partitioned, checkpointed extraction over a catalog.
// Partitions and the items inside them are processed strictly in order, one
// at a time, with fixed pacing delays between items, batches and partitions.
package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/schemadoc"
)

// Runner processes a catalog partition by partition, recording every item
// outcome and saving a checkpoint at each partition transition.
type Runner struct {
	Fetcher     schemadoc.Fetcher
	Tables      schemadoc.TableReader
	Extractor   schemadoc.Extractor
	Checkpoints schemadoc.CheckpointStore
	Summary     schemadoc.SummaryLog
	Output      schemadoc.PartitionWriter

	// Sink, if set, receives every item outcome with its records.
	Sink schemadoc.ItemSink

	Logger    *slog.Logger
	Sleeper   Sleeper
	Pacing    Pacing
	BatchSize int

	// RestartItem skips the items that precede it, but only in the partition
	// that was in flight when the run started. If the partition does not
	// contain it, a warning is logged and the whole partition is processed
	// rather than skipped.
	RestartItem string

	// SkipProcessed skips items that already have an outcome in the summary log.
	SkipProcessed bool

	// Progress, if set, is called after every item.
	Progress ProgressFunc
}

// Result holds the outcome of a run.
type Result struct {
	// State is the progress state after the last transition of the run.
	State schemadoc.ProgressState

	Partitions int
	Succeeded  int
	NoData     int
	Errored    int
	Records    int
}

// Failed returns the number of items that produced no records.
func (r *Result) Failed() int {
	return r.NoData + r.Errored
}

// ProgressEvent reports one processed item.
type ProgressEvent struct {
	Partition schemadoc.Partition
	Item      string
	Status    schemadoc.Status
	Records   int
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Resume loads the stored checkpoint and, when SkipProcessed is set, the
// processed-items index, then runs the catalog from that position.
// A checkpoint that cannot be read is logged and the run starts fresh.
func (r *Runner) Resume(ctx context.Context, catalog *schemadoc.Catalog) (*Result, error) {
	logger := r.logger()

	state, err := r.Checkpoints.Load(ctx)
	if err != nil {
		logger.Error("loading progress state, starting fresh", "error", err)
		state = schemadoc.ProgressState{}
	}
	state = state.Normalize()
	if done := state.ProcessedList(); len(done) > 0 {
		logger.Info("resuming", "processed", len(done), "current", string(state.Current))
	}

	var processed map[string]bool
	if r.SkipProcessed {
		processed, err = r.Summary.ProcessedItems(ctx)
		if err != nil {
			logger.Error("loading processed items", "error", err)
			processed = nil
		}
		if len(processed) > 0 {
			logger.Info("loaded processed items", "count", len(processed))
		}
	}

	return r.Run(ctx, catalog, state, processed)
}

// Run processes every partition not yet in state, starting at
// state.StartIndex, and returns the final state.
//
// Item failures are recorded as outcomes and never stop the run. Persistence
// failures are logged and the run continues. The only error returned is the
// context's: the partition in flight then stays current in the returned and
// stored state.
func (r *Runner) Run(ctx context.Context, catalog *schemadoc.Catalog, state schemadoc.ProgressState, processed map[string]bool) (*Result, error) {
	logger := r.logger()
	result := &Result{}

	// The restart item belongs to the partition that was interrupted.
	restartIn := state.Current

	partitions := schemadoc.Partitions()
	for i := state.StartIndex(); i < len(partitions); i++ {
		p := partitions[i]
		if state.IsProcessed(p) {
			continue
		}
		if err := ctx.Err(); err != nil {
			result.State = state
			return result, err
		}

		entries := catalog.Entries(p)
		if len(entries) == 0 {
			logger.Info("no items in partition", "partition", string(p))
			state = state.Complete(p)
			r.save(ctx, state)
			continue
		}

		state = state.Begin(p)
		r.save(ctx, state)

		restart := ""
		if p == restartIn {
			restart = r.RestartItem
		}
		sel := SelectItems(entries, restart, processed)
		if sel.RestartMissing {
			logger.Warn("restart item not in partition, processing all items",
				"partition", string(p), "item", restart)
		}
		logger.Info("processing partition",
			"partition", string(p),
			"items", len(sel.Items),
			"skipped_before_restart", sel.SkippedBeforeRestart,
			"skipped_processed", sel.SkippedProcessed,
		)

		if err := r.runPartition(ctx, p, sel.Items, result); err != nil {
			result.State = state
			return result, err
		}

		state = state.Complete(p)
		r.save(ctx, state)
		result.Partitions++

		if i+1 < len(partitions) && !state.IsProcessed(partitions[i+1]) {
			logger.Debug("pausing between partitions", "delay", r.Pacing.PartitionDelay)
			if err := r.sleep(ctx, r.Pacing.PartitionDelay); err != nil {
				result.State = state
				return result, err
			}
		}
	}

	result.State = state
	logger.Info("run complete",
		"partitions", result.Partitions,
		"succeeded", result.Succeeded,
		"failed", result.Failed(),
		"records", result.Records,
	)
	return result, nil
}

// runPartition processes items of p in batches. The accumulated records are
// written after every item that produced some, so an interruption loses at
// most the item in flight.
func (r *Runner) runPartition(ctx context.Context, p schemadoc.Partition, items []schemadoc.LinkEntry, result *Result) error {
	logger := r.logger().With("partition", string(p))

	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	batches := Batches(items, batchSize)

	var records []schemadoc.Record
	var succeeded int
	completed := 0
	for b, batch := range batches {
		logger.Info("processing batch", "batch", b+1, "batches", len(batches), "items", len(batch))

		for _, item := range batch {
			res := r.processItem(ctx, item)
			if res.Status == schemadoc.StatusError && ctx.Err() != nil {
				// Interrupted mid-fetch: the item stays unprocessed.
				return ctx.Err()
			}
			completed++

			if len(res.Records) > 0 {
				records = append(records, res.Records...)
				r.write(ctx, p, records)
			}

			entry := res.Entry(p)
			if err := r.Summary.Append(ctx, entry); err != nil {
				logger.Error("appending outcome", "item", item.Name, "error", err)
			}
			if r.Sink != nil {
				if err := r.Sink.Observe(ctx, entry, res.Records); err != nil {
					logger.Error("mirroring outcome", "item", item.Name, "error", err)
				}
			}

			switch res.Status {
			case schemadoc.StatusSuccess:
				succeeded++
				result.Succeeded++
				result.Records += len(res.Records)
				logger.Info("processed item",
					"progress", FormatPercent(completed, len(items)),
					"item", item.Name,
					"records", len(res.Records),
					"duration", res.Duration,
				)
			case schemadoc.StatusNoData:
				result.NoData++
				logger.Warn("no data",
					"progress", FormatPercent(completed, len(items)),
					"item", item.Name,
				)
			default:
				result.Errored++
				logger.Error("processing item failed",
					"progress", FormatPercent(completed, len(items)),
					"item", item.Name,
					"error", entry.ErrorMessage,
				)
			}

			if r.Progress != nil {
				r.Progress(ProgressEvent{
					Partition: p,
					Item:      item.Name,
					Status:    res.Status,
					Records:   len(res.Records),
					Completed: completed,
					Total:     len(items),
					Err:       res.Err,
				})
			}

			if err := r.sleep(ctx, r.Pacing.ItemDelay); err != nil {
				return err
			}
		}

		if b+1 < len(batches) {
			logger.Debug("pausing between batches", "delay", r.Pacing.BatchDelay)
			if err := r.sleep(ctx, r.Pacing.BatchDelay); err != nil {
				return err
			}
		}
	}

	logger.Info("partition complete",
		"succeeded", succeeded,
		"failed", len(items)-succeeded,
		"records", len(records),
	)
	return nil
}

// processItem fetches one page and extracts its records. Failures are
// reported in the result, never returned.
func (r *Runner) processItem(ctx context.Context, item schemadoc.LinkEntry) schemadoc.ItemResult {
	start := time.Now()
	res := schemadoc.ItemResult{Item: item}

	html, err := r.Fetcher.Fetch(ctx, item.URL)
	if err != nil {
		res.Status = schemadoc.StatusError
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	res.PageHash = ComputeHash(html)

	tables, err := r.Tables.ReadTables(html)
	if err != nil {
		res.Status = schemadoc.StatusError
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}

	res.Records = r.Extractor.Extract(item.Name, tables)
	if len(res.Records) == 0 {
		res.Status = schemadoc.StatusNoData
	} else {
		res.Status = schemadoc.StatusSuccess
	}
	res.Duration = time.Since(start)
	return res
}

func (r *Runner) write(ctx context.Context, p schemadoc.Partition, records []schemadoc.Record) {
	if _, err := r.Output.WritePartition(ctx, p, records); err != nil {
		r.logger().Error("writing partition output", "partition", string(p), "error", err)
	}
}

func (r *Runner) save(ctx context.Context, state schemadoc.ProgressState) {
	if err := r.Checkpoints.Save(ctx, state); err != nil {
		r.logger().Error("saving progress state", "error", err)
	}
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleeper == nil {
		return TimerSleeper{}.Sleep(ctx, d)
	}
	return r.Sleeper.Sleep(ctx, d)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}
