package mock

import (
	"context"

	"github.com/fwojciec/coachdir"
)

var (
	_ coachdir.Fetcher         = (*Fetcher)(nil)
	_ coachdir.Pacer           = (*Pacer)(nil)
	_ coachdir.DuplicateFilter = (*DuplicateFilter)(nil)
)

// Fetcher is a mock implementation of coachdir.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// Pacer is a mock implementation of coachdir.Pacer.
type Pacer struct {
	WaitFn func(ctx context.Context) error
}

func (p *Pacer) Wait(ctx context.Context) error {
	return p.WaitFn(ctx)
}

// DuplicateFilter is a mock implementation of coachdir.DuplicateFilter.
type DuplicateFilter struct {
	SeenFn func(url string) bool
}

func (f *DuplicateFilter) Seen(url string) bool {
	return f.SeenFn(url)
}
