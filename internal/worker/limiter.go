package worker

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter paces batch writes into a single sink
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing batchesPerSecond with the given burst.
// A non-positive rate means unlimited; a non-positive burst means 1.
func NewLimiter(batchesPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Inf
	if batchesPerSecond > 0 {
		limit = rate.Limit(batchesPerSecond)
	}

	return &Limiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until the sink may accept another batch or ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Unlimited reports whether batches pass without pacing
func (l *Limiter) Unlimited() bool {
	return l.limiter.Limit() == rate.Inf
}

// String describes the pacing for log output
func (l *Limiter) String() string {
	if l.Unlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("%g batches/s (burst %d)", float64(l.limiter.Limit()), l.limiter.Burst())
}
