// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package throttle paces outbound API calls with a minimum interval
// between requests, replacing ad-hoc sleeps scattered through callers.
package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Interval enforces a minimum gap between consecutive Wait calls. The
// first call never blocks. A zero or negative interval disables pacing.
type Interval struct {
	limiter *rate.Limiter
}

// NewInterval returns an Interval that spaces calls at least d apart.
func NewInterval(d time.Duration) *Interval {
	if d <= 0 {
		return &Interval{}
	}
	return &Interval{limiter: rate.NewLimiter(rate.Every(d), 1)}
}

// Wait blocks until the interval since the previous call has elapsed, or
// returns ctx.Err() if the context is cancelled first.
func (i *Interval) Wait(ctx context.Context) error {
	if i == nil || i.limiter == nil {
		return nil
	}
	return i.limiter.Wait(ctx)
}
