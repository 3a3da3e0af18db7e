// Package ratelimit spaces out requests to the scraped sites.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the pause between two page requests to the same site.
const DefaultInterval = time.Second

// Limiter wraps rate.Limiter with a name for logging.
type Limiter struct {
	limiter  *rate.Limiter
	name     string
	interval time.Duration
}

// New creates a limiter that lets one request through per interval.
// A zero or negative interval disables limiting.
func New(name string, interval time.Duration) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Limiter{
		limiter:  rate.NewLimiter(limit, 1),
		name:     name,
		interval: interval,
	}
}

// Wait blocks until the next request may proceed.
// Returns an error if the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter.Allow() {
		return nil
	}

	slog.Debug("Waiting for rate limit", "limiter", l.name, "interval", l.interval)
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}
