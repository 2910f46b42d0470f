package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/schemadoc"
	"github.com/fwojciec/schemadoc/crawl"
	"github.com/fwojciec/schemadoc/extract"
	"github.com/fwojciec/schemadoc/fs"
	"github.com/fwojciec/schemadoc/goquery"
	sdslog "github.com/fwojciec/schemadoc/slog"
)

// runMode holds what differs between the extraction commands.
type runMode struct {
	name           string
	checkpointFile string
	summaryFile    string
	output         schemadoc.PartitionWriter
	extractor      schemadoc.Extractor
	skipProcessed  bool
	restartItem    string
}

// Run executes the columns command. It does not consult the summary log:
// the partition file is rewritten whole, so resuming a letter fetches its
// tables again, including those that already have an outcome.
func (c *ColumnsCmd) Run(deps *Dependencies) error {
	return runCatalog(deps, c.RunFlags, c.Out, runMode{
		name:           "columns",
		checkpointFile: "progress_state.csv",
		summaryFile:    "processing_summary.csv",
		output:         fs.NewPartitionFiles(c.Out, "", schemadoc.ColumnHeader),
		extractor:      extract.NewColumnExtractor(deps.Logger),
	})
}

// Run executes the keys command.
func (c *KeysCmd) Run(deps *Dependencies) error {
	return runCatalog(deps, c.RunFlags, c.Out, runMode{
		name:           "keys",
		checkpointFile: "pk_progress_state.csv",
		summaryFile:    "pk_processing_summary.csv",
		output:         fs.NewMergingPartitionFiles(c.Out, "pk_", schemadoc.PrimaryKeyHeader),
		extractor:      extract.NewKeyExtractor(deps.Logger),
		skipProcessed:  true,
		restartItem:    c.RestartFrom,
	})
}

func runCatalog(deps *Dependencies, flags RunFlags, out string, mode runMode) error {
	logger := deps.Logger.With("mode", mode.name)

	fetcher := deps.Fetcher
	if flags.Snapshots != "" {
		snapshots := fs.NewSnapshotFetcher(fetcher, fs.NewSnapshotDir(flags.Snapshots))
		snapshots.OnError = func(url string, err error) {
			logger.Warn("saving page snapshot", "url", url, "error", err)
		}
		fetcher = snapshots
	}

	catalog, err := loadCatalog(deps, fetcher, flags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	logger.Info("catalog loaded", "tables", catalog.Len())
	for _, p := range schemadoc.Partitions() {
		if n := len(catalog.Entries(p)); n > 0 {
			logger.Debug("partition size", "partition", string(p), "tables", n)
		}
	}

	if err := os.MkdirAll(out, 0o755); err != nil {
		err = schemadoc.Errorf(schemadoc.EPERSIST, "creating output directory %s: %v", out, err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	runner := &crawl.Runner{
		Fetcher:     fetcher,
		Tables:      deps.Tables,
		Extractor:   mode.extractor,
		Checkpoints: sdslog.NewLoggingCheckpointStore(fs.NewCheckpointFile(filepath.Join(out, mode.checkpointFile)), logger),
		Summary:     sdslog.NewLoggingSummaryLog(fs.NewSummaryFile(filepath.Join(out, mode.summaryFile)), logger),
		Output:      sdslog.NewLoggingPartitionWriter(mode.output, logger),
		Logger:      logger,
		Sleeper:     deps.Sleeper,
		Pacing: crawl.Pacing{
			ItemDelay:      flags.ItemDelay,
			BatchDelay:     flags.BatchDelay,
			PartitionDelay: flags.PartitionDelay,
		},
		BatchSize:     flags.BatchSize,
		RestartItem:   mode.restartItem,
		SkipProcessed: mode.skipProcessed,
	}

	if deps.Mirror != nil {
		runID, err := deps.Mirror.BeginRun(deps.Ctx, mode.name)
		if err != nil {
			logger.Error("starting catalog run, mirroring disabled", "error", err)
		} else {
			runner.Sink = deps.Mirror
			logger.Info("mirroring to catalog", "run", runID)
		}
	}

	result, err := runner.Resume(deps.Ctx, catalog)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "interrupted in letter %s; run the same command again to resume\n", result.State.Current)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Processed %d letters: %d tables succeeded, %d failed, %d records written to %s\n",
		result.Partitions, result.Succeeded, result.Failed(), result.Records, out)
	return nil
}

// loadCatalog fetches the index page and partitions its table links.
func loadCatalog(deps *Dependencies, fetcher schemadoc.Fetcher, flags RunFlags) (*schemadoc.Catalog, error) {
	links, err := goquery.NewLinkReader(flags.IndexURL, flags.BaseURL)
	if err != nil {
		return nil, err
	}

	html, err := fetcher.Fetch(deps.Ctx, flags.IndexURL)
	if err != nil {
		return nil, schemadoc.Errorf(schemadoc.EFETCH, "fetching index page %s: %v", flags.IndexURL, err)
	}

	entries, err := links.ReadLinks(html)
	if err != nil {
		return nil, err
	}

	catalog := schemadoc.NewCatalog(entries)
	if catalog.Len() == 0 {
		return nil, schemadoc.Errorf(schemadoc.ENOTFOUND, "no table links found on %s", flags.IndexURL)
	}
	return catalog, nil
}
