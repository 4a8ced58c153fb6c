package coachdir

import "context"

// Fetcher retrieves the raw HTML of a profile page.
// A non-2xx response or a transport error is a fetch failure; the
// caller skips the URL.
type Fetcher interface {
	// Fetch retrieves the HTML body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Pacer spaces out successive requests to the profile server.
type Pacer interface {
	// Wait blocks until the next request may start.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}

// DefaultUserAgent is sent by fetchers unless overridden. Some directory
// sites serve a reduced page to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DuplicateFilter tracks URLs already processed within one run.
type DuplicateFilter interface {
	// Seen reports whether url was seen before and records it.
	Seen(url string) bool
}
