// Package clock abstracts time-based waits so services that simulate
// processing latency stay testable.
package clock

import (
	"context"
	"time"
)

// Sleeper waits for a duration, honoring context cancellation.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realSleeper struct{}

// New returns a Sleeper backed by the wall clock.
func New() Sleeper {
	return realSleeper{}
}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Instant is a Sleeper that returns immediately. Used in tests.
type Instant struct{}

func (Instant) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
