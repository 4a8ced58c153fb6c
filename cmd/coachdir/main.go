package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/coachdir"
	"github.com/fwojciec/coachdir/batch"
	"github.com/fwojciec/coachdir/bloom"
	"github.com/fwojciec/coachdir/csv"
	"github.com/fwojciec/coachdir/fs"
	"github.com/fwojciec/coachdir/goquery"
	coachhttp "github.com/fwojciec/coachdir/http"
	"github.com/fwojciec/coachdir/rod"
	coachslog "github.com/fwojciec/coachdir/slog"
	"github.com/fwojciec/coachdir/xlsx"
	"github.com/fwojciec/coachdir/yaml"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the fetcher built from flags. Set before calling
	// Run() to test without network access.
	Fetcher coachdir.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("coachdir"),
		kong.Description("Extract coach profiles from directory pages into a spreadsheet"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Vars{"user_agent": coachdir.DefaultUserAgent},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'coachdir --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
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

	selectors := coachdir.DefaultSelectors()
	if cli.Selectors != "" {
		if selectors, err = yaml.LoadSelectors(cli.Selectors); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", errorText(err))
			return fmt.Errorf("failed to load selectors from %q: %w", cli.Selectors, err)
		}
	}
	if err := goquery.ValidateSelectors(selectors); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorText(err))
		return err
	}

	switch kongCtx.Selected().Name {
	case "scrape":
		deps.RunID = uuid.NewString()
		deps.Logger = deps.Logger.With("run", deps.RunID)

		if deps.URLs, err = openURLReader(cli.Scrape.Input, cli.Scrape.Column); err != nil {
			return err
		}
		writer, err := openProfileWriter(cli.Scrape.Output)
		if err != nil {
			return err
		}
		deps.Profiles = coachslog.NewLoggingProfileWriter(writer, deps.Logger)

		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(cli.Scrape, deps.Logger, stderr); err != nil {
				return err
			}
			defer fetcher.Close()
		}

		var extractorOpts []goquery.Option
		if cli.Scrape.Debug {
			extractorOpts = append(extractorOpts, goquery.WithDebugSink(fs.NewDebugSink(cli.Scrape.DebugDir)))
		}

		runner := &batch.Runner{
			Fetcher:   coachslog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor: coachslog.NewLoggingExtractor(newExtractor(selectors, deps.Logger, extractorOpts...), deps.Logger),
			Pacer:     batch.NewPacer(cli.Scrape.Delay),
		}
		if cli.Scrape.SkipDuplicates {
			runner.Duplicates = bloom.NewFilter(bloom.DefaultCapacity, bloom.DefaultFPRate)
		}
		deps.Runner = runner

	case "extract":
		var extractorOpts []goquery.Option
		if cli.Extract.Debug {
			extractorOpts = append(extractorOpts, goquery.WithDebugSink(fs.NewDebugSink(cli.Extract.DebugDir)))
		}
		deps.Extractor = newExtractor(selectors, deps.Logger, extractorOpts...)

	case "selectors":
		deps.Selectors = selectors
	}

	return kongCtx.Run(deps)
}

func newExtractor(selectors coachdir.Selectors, logger *slog.Logger, opts ...goquery.Option) *goquery.Extractor {
	opts = append([]goquery.Option{
		goquery.WithSelectors(selectors),
		goquery.WithLogger(logger),
	}, opts...)
	return goquery.NewExtractor(opts...)
}

func newFetcher(c ScrapeCmd, logger *slog.Logger, stderr io.Writer) (coachdir.Fetcher, error) {
	if !c.Browser {
		return coachhttp.NewFetcher(
			coachhttp.WithTimeout(c.Timeout),
			coachhttp.WithUserAgent(c.UserAgent),
		), nil
	}

	fetcher, err := rod.NewFetcher(
		rod.WithFetchTimeout(c.Timeout),
		rod.WithUserAgent(c.UserAgent),
		rod.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, nil
}

// openURLReader picks a reader by file extension.
func openURLReader(path, column string) (coachdir.URLReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return xlsx.NewURLReader(path, column), nil
	case ".csv":
		return csv.NewURLReader(path, column), nil
	}
	return nil, coachdir.Errorf(coachdir.EINVALID, "unsupported input format %q: use .xlsx or .csv", path)
}

// openProfileWriter picks a writer by file extension.
func openProfileWriter(path string) (coachdir.ProfileWriter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return xlsx.NewProfileWriter(path), nil
	case ".csv":
		return csv.NewProfileWriter(path), nil
	}
	return nil, coachdir.Errorf(coachdir.EINVALID, "unsupported output format %q: use .xlsx or .csv", path)
}

// errorText returns the message of application errors and the full text
// of anything else.
func errorText(err error) string {
	if coachdir.ErrorCode(err) == coachdir.EINTERNAL {
		return err.Error()
	}
	return coachdir.ErrorMessage(err)
}
