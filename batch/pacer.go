package batch

import (
	"context"
	"time"

	"github.com/fwojciec/coachdir"
	"golang.org/x/time/rate"
)

var _ coachdir.Pacer = (*Pacer)(nil)

// Pacer spaces the start of successive requests by a fixed delay using a
// token bucket with a burst of 1. The first Wait returns immediately.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer that allows one request per delay.
// A zero or negative delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next request may start.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
