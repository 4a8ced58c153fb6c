package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/coachdir"
	"github.com/fwojciec/coachdir/batch"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urls, err := deps.URLs.ReadURLs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return fmt.Errorf("failed to read %s: %w", c.Input, err)
	}
	deps.Logger.Info("scrape started", "input", c.Input, "urls", len(urls))

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d profile URLs in %s\n", event.Total, c.Input)
		case batch.ProgressFetching:
			fmt.Fprintf(deps.Stderr, "[%d/%d] Processing: %s\n", event.Completed+1, event.Total, event.URL)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, runErr := deps.Runner.Run(deps.Ctx, urls, progress)
	if runErr != nil {
		fmt.Fprintf(deps.Stderr, "stopped early: %v\n", runErr)
	}
	if result.Invalid > 0 {
		fmt.Fprintf(deps.Stdout, "Ignored %d values that are not http(s) URLs\n", result.Invalid)
	}
	if result.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "Ignored %d duplicate URLs\n", result.Duplicates)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "Failed to fetch %d URLs\n", result.Failed)
	}

	if len(result.Profiles) == 0 {
		fmt.Fprintln(deps.Stdout, "No data to save")
		return runErr
	}

	// An interrupted run still saves what it collected.
	if err := deps.Profiles.WriteProfiles(context.WithoutCancel(deps.Ctx), result.Profiles); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	fmt.Fprintf(deps.Stdout, "Saved %d profiles to %s\n", len(result.Profiles), c.Output)

	printCompletion(deps.Stdout, coachdir.Completion(result.Profiles))
	return runErr
}

// printCompletion writes one line per field.
// Example: "Name: 66.7% complete (1 missing)"
func printCompletion(w io.Writer, stats []coachdir.FieldStat) {
	fmt.Fprintln(w, "Field completion:")
	for _, s := range stats {
		fmt.Fprintf(w, "  %s: %.1f%% complete (%d missing)\n", s.Field, s.Percent(), s.Missing)
	}
}
