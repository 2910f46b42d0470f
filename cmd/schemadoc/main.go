package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/schemadoc"
	"github.com/fwojciec/schemadoc/crawl"
	"github.com/fwojciec/schemadoc/goquery"
	schemadochttp "github.com/fwojciec/schemadoc/http"
	"github.com/fwojciec/schemadoc/rod"
	sdslog "github.com/fwojciec/schemadoc/slog"
	"github.com/fwojciec/schemadoc/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite catalog, opened when --db is set.
	DB *sqlite.DB

	// Fetcher replaces the browser or HTTP fetcher when set.
	Fetcher schemadoc.Fetcher

	// Sleeper replaces real pacing sleeps when set.
	Sleeper crawl.Sleeper
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Tables:  goquery.NewTableReader(),
		Sleeper: m.Sleeper,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("schemadoc"),
		kong.Description("Extract column and primary-key metadata from schema documentation pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Configuration(LoadYAMLConfig),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'schemadoc --help' to see available commands")
	}

	if args[0] == "help" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	// Help output for a subcommand must not go on to run it.
	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		_, _ = parser.Parse(args)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SCHEMADOC_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()

		store := sqlite.NewCatalogStore(m.DB)
		deps.Mirror = store
		deps.Columns = store
	}

	var flags *FetchFlags
	switch strings.Fields(kongCtx.Command())[0] {
	case "columns":
		flags = &cli.Columns.FetchFlags
	case "keys":
		flags = &cli.Keys.FetchFlags
	}
	if flags != nil {
		fetcher, err := m.openFetcher(*flags)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		if flags.RPS > 0 {
			fetcher = crawl.NewLimitedFetcher(fetcher, crawl.NewDomainLimiter(flags.RPS))
		}
		deps.Fetcher = sdslog.NewLoggingFetcher(fetcher, deps.Logger)
		defer func() {
			deps.Logger.Info("closing fetcher")
			if err := deps.Fetcher.Close(); err != nil {
				deps.Logger.Error("closing fetcher", "error", err)
			}
		}()
	}

	return kongCtx.Run(deps)
}

func (m *Main) openFetcher(flags FetchFlags) (schemadoc.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if flags.Static {
		return schemadochttp.NewFetcher(schemadochttp.WithTimeout(flags.Timeout)), nil
	}
	return rod.NewFetcher(
		rod.WithFetchTimeout(flags.Timeout),
		rod.WithWaitSelector("table", rod.DefaultWaitTimeout),
		rod.WithBrowser(
			rod.WithMaxPages(flags.MaxPages),
			rod.WithHeadless(!flags.ShowBrowser),
		),
	)
}
