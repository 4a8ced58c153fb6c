package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/coachdir"
	"github.com/fwojciec/coachdir/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	RunID  string

	URLs      coachdir.URLReader
	Profiles  coachdir.ProfileWriter
	Runner    *batch.Runner
	Extractor coachdir.Extractor
	Selectors coachdir.Selectors
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool   `short:"v" env:"COACHDIR_VERBOSE" help:"Log every strategy tried"`
	Selectors string `type:"existingfile" env:"COACHDIR_SELECTORS" help:"YAML or JSON file overriding page selectors"`

	Scrape        ScrapeCmd        `cmd:"" help:"Extract every profile listed in a spreadsheet"`
	Extract       ExtractCmd       `cmd:"" help:"Extract one saved profile page"`
	SelectorsDump SelectorsDumpCmd `cmd:"" name:"selectors" help:"Print the active selectors as YAML"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Input          string        `short:"i" default:"links.xlsx" env:"COACHDIR_INPUT" help:"Spreadsheet with profile URLs (.xlsx or .csv)"`
	Column         string        `short:"c" default:"URL" env:"COACHDIR_COLUMN" help:"Header of the URL column"`
	Output         string        `short:"o" default:"Scraped.xlsx" env:"COACHDIR_OUTPUT" help:"Output spreadsheet (.xlsx or .csv)"`
	Delay          time.Duration `short:"d" default:"4s" env:"COACHDIR_DELAY" help:"Minimum time between requests"`
	Timeout        time.Duration `short:"t" default:"10s" env:"COACHDIR_TIMEOUT" help:"Fetch timeout per page"`
	Debug          bool          `env:"COACHDIR_DEBUG" help:"Save pages whose expertise was not found"`
	DebugDir       string        `default:"debug" env:"COACHDIR_DEBUG_DIR" help:"Where --debug saves pages"`
	Browser        bool          `short:"b" env:"COACHDIR_BROWSER" help:"Render pages in headless Chrome"`
	UserAgent      string        `default:"${user_agent}" env:"COACHDIR_USER_AGENT" help:"User-Agent header sent with requests"`
	SkipDuplicates bool          `env:"COACHDIR_SKIP_DUPLICATES" help:"Fetch each URL at most once"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Path     string `arg:"" type:"existingfile" help:"Saved profile page"`
	URL      string `short:"u" help:"Source URL to record (defaults to the file path)"`
	JSON     bool   `help:"Print the profile as JSON"`
	Debug    bool   `help:"Save the page when expertise is not found"`
	DebugDir string `default:"debug" env:"COACHDIR_DEBUG_DIR" help:"Where --debug saves pages"`
}

// SelectorsDumpCmd is the "selectors" subcommand.
type SelectorsDumpCmd struct{}
