// Package resilience provides the pacing primitive used between source
// requests. There is no retry or backoff anywhere in this tool; rate limiting
// is pre-emptive, a token bucket refilling at the configured interval.
package resilience

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the spacing between consecutive source requests.
const DefaultInterval = 500 * time.Millisecond

// Pacer enforces a minimum spacing between calls. The first call proceeds
// immediately; subsequent calls block until the interval has elapsed.
type Pacer struct {
	lim *rate.Limiter
}

// NewPacer creates a Pacer with the given interval. interval <= 0 uses
// DefaultInterval.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Pacer{lim: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next request may proceed or ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.lim.Wait(ctx)
}

// Allow reports whether a request may proceed right now without blocking.
func (p *Pacer) Allow() bool {
	return p.lim.Allow()
}
