// Package throttle paces outgoing catalog requests.
package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate blocks until the caller may issue its next request.
type Gate interface {
	Wait(ctx context.Context) error
}

// Interval is a token bucket with a burst of one: at most one pass per
// interval, and the first pass is free.
type Interval struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewInterval returns a gate that lets one caller through every d.
// A non-positive d disables pacing.
func NewInterval(d time.Duration) *Interval {
	limit := rate.Inf
	if d > 0 {
		limit = rate.Every(d)
	}
	return &Interval{
		limiter:  rate.NewLimiter(limit, 1),
		interval: d,
	}
}

// Wait blocks until the next pass is available or ctx is done.
func (g *Interval) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}

// Interval returns the configured pacing interval.
func (g *Interval) Interval() time.Duration {
	return g.interval
}

type none struct{}

func (none) Wait(ctx context.Context) error {
	return ctx.Err()
}

// None is a gate that never delays.
var None Gate = none{}
