package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/schemadoc"
	"github.com/fwojciec/schemadoc/crawl"
)

// Mirror receives every item outcome of a run in addition to the files.
type Mirror interface {
	schemadoc.ItemSink
	BeginRun(ctx context.Context, mode string) (string, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Fetcher schemadoc.Fetcher
	Tables  schemadoc.TableReader
	Mirror  Mirror
	Columns schemadoc.ColumnService
	Sleeper crawl.Sleeper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"YAML file of flag defaults"`
	DB      string          `name:"db" env:"SCHEMADOC_DB" help:"SQLite catalog that mirrors every run (optional)"`
	Verbose bool            `short:"v" help:"Log debug detail"`

	Columns ColumnsCmd `cmd:"" help:"Extract full column metadata into one file per letter"`
	Keys    KeysCmd    `cmd:"" help:"Extract primary keys, merging into existing files and skipping processed tables"`
	Show    ShowCmd    `cmd:"" help:"Print the stored columns of a table from the SQLite catalog"`
}

// FetchFlags configure how pages are fetched.
type FetchFlags struct {
	Timeout     time.Duration `default:"60s" help:"Timeout for loading one page"`
	RPS         float64       `name:"rps" default:"1" help:"Maximum requests per second to one host (0 disables)"`
	Static      bool          `help:"Fetch with plain HTTP instead of headless Chrome"`
	ShowBrowser bool          `name:"show-browser" help:"Run Chrome with a visible window"`
	MaxPages    int64         `name:"max-pages" default:"75" help:"Pages before the browser is restarted"`
}

// RunFlags are shared by the extraction commands.
type RunFlags struct {
	FetchFlags `embed:""`

	IndexURL       string        `name:"index-url" default:"https://open.epic.com/EHITables/GetTable/_index.htm" help:"Index page listing every table"`
	BaseURL        string        `name:"base-url" default:"https://open.epic.com/EHITables/GetTable/" help:"Base URL of the table pages"`
	BatchSize      int           `name:"batch-size" default:"5" help:"Tables per batch"`
	ItemDelay      time.Duration `name:"item-delay" default:"1s" help:"Pause after each table"`
	BatchDelay     time.Duration `name:"batch-delay" default:"3s" help:"Pause between batches"`
	PartitionDelay time.Duration `name:"partition-delay" default:"10s" help:"Pause between letters"`
	Snapshots      string        `type:"path" help:"Save the HTML of every fetched page under this directory"`
}

// ColumnsCmd is the "columns" subcommand.
type ColumnsCmd struct {
	RunFlags `embed:""`
	Out      string `short:"o" default:"epic_data_tables" type:"path" help:"Output directory"`
}

// KeysCmd is the "keys" subcommand.
type KeysCmd struct {
	RunFlags    `embed:""`
	Out         string `short:"o" default:"epic_data_primary_keys" type:"path" help:"Output directory"`
	RestartFrom string `name:"restart-from" help:"Table to resume from within the interrupted letter"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Table string `arg:"" help:"Table name"`
	Keys  bool   `help:"Show stored primary keys instead of columns"`
}

// errorText returns the message of an application error, or the full text
// of any other error.
func errorText(err error) string {
	if schemadoc.ErrorCode(err) == schemadoc.EINTERNAL {
		return err.Error()
	}
	return schemadoc.ErrorMessage(err)
}
