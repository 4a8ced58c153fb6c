// Package bloom provides in-run URL deduplication using Bloom filters.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/coachdir"
)

// Defaults size the filter for a large directory export.
const (
	DefaultCapacity = 10000
	DefaultFPRate   = 0.001
)

// Ensure Filter implements coachdir.DuplicateFilter at compile time.
var _ coachdir.DuplicateFilter = (*Filter)(nil)

// Filter wraps a Bloom filter for profile URL deduplication.
// A false positive skips a URL that was never processed, so the
// false positive rate should stay small relative to the input size.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Key normalizes a URL for comparison. Surrounding whitespace, a trailing
// slash and letter case in the scheme and host do not make a URL distinct.
// Example: " HTTPS://Example.com/coach/jane/ " → "https://example.com/coach/jane"
func Key(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	host, path, _ := strings.Cut(rest, "/")
	key := strings.ToLower(scheme) + "://" + strings.ToLower(host)
	if path != "" {
		key += "/" + path
	}
	return key
}

// Seen reports whether the URL might have been added before and adds it.
// A false positive reports a URL that was never added, and the runner then
// skips it without fetching.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(Key(url))
}
