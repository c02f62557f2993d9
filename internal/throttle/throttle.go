// Package throttle enforces a global minimum spacing between the starts of
// outbound upstream calls. The gate is shared by all concurrent requests:
// it serializes upstream traffic process-wide, not per key.
//
// The implementation rides golang.org/x/time/rate with a burst of one
// token, which makes the check-wait-record sequence atomic: two concurrent
// acquirers can never both observe themselves as satisfying the interval.
// No FIFO fairness is guaranteed, only the minimum-interval property.
package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate blocks callers until the minimum interval since the previous
// acquisition has elapsed.
type Gate interface {
	// Acquire blocks until the caller may start an upstream call, or until
	// ctx is done.
	Acquire(ctx context.Context) error
}

// IntervalGate is the production Gate: a single token-bucket limiter
// replenishing one token per configured interval.
type IntervalGate struct {
	lim *rate.Limiter
}

// NewIntervalGate builds a gate with the given minimum spacing. A
// non-positive interval disables throttling.
func NewIntervalGate(min time.Duration) *IntervalGate {
	if min <= 0 {
		return &IntervalGate{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	return &IntervalGate{lim: rate.NewLimiter(rate.Every(min), 1)}
}

// Acquire implements Gate.
func (g *IntervalGate) Acquire(ctx context.Context) error {
	return g.lim.Wait(ctx)
}
