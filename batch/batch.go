// Package batch runs profile extraction over a list of URLs.
// URLs are fetched one at a time, paced by a coachdir.Pacer, and each
// fetched page is handed to a coachdir.Extractor.
package batch

import (
	"context"
	"strings"

	"github.com/fwojciec/coachdir"
)

// Runner fetches and extracts a list of profile URLs sequentially.
type Runner struct {
	Fetcher   coachdir.Fetcher
	Extractor coachdir.Extractor

	// Pacer is waited on before every fetch. Optional.
	Pacer coachdir.Pacer

	// Duplicates drops URLs already seen in this run. Optional.
	Duplicates coachdir.DuplicateFilter
}

// Result holds the outcome of a run.
type Result struct {
	// Profiles holds one record per successfully fetched URL, in input order.
	Profiles []coachdir.Profile

	Invalid    int
	Duplicates int
	Failed     int
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressFetching
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run processes urls in order. Blank and non-HTTP(S) values are dropped
// before any fetch, as are duplicates when a filter is set. A URL whose
// fetch fails is reported and skipped.
//
// Run stops early only when ctx is canceled or the pacer fails; the
// returned Result then holds the profiles collected so far.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	result := &Result{}
	targets := r.targets(urls, result)
	total := len(targets)

	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	for i, url := range targets {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if r.Pacer != nil {
			if err := r.Pacer.Wait(ctx); err != nil {
				return result, err
			}
		}

		progress(ProgressEvent{Type: ProgressFetching, Completed: i, Total: total, URL: url})

		html, err := r.Fetcher.Fetch(ctx, url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, URL: url, Error: err})
			continue
		}

		result.Profiles = append(result.Profiles, r.Extractor.Extract(url, html))
		progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, URL: url})
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}

// targets returns the URLs that will be fetched, counting the rest.
func (r *Runner) targets(urls []string, result *Result) []string {
	var out []string
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if !coachdir.ValidURL(u) {
			result.Invalid++
			continue
		}
		if r.Duplicates != nil && r.Duplicates.Seen(u) {
			result.Duplicates++
			continue
		}
		out = append(out, u)
	}
	return out
}
