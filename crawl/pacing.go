package crawl

import (
	"context"
	"time"
)

// Default pacing intervals between items, batches and partitions.
const (
	DefaultItemDelay      = 1 * time.Second
	DefaultBatchDelay     = 3 * time.Second
	DefaultPartitionDelay = 10 * time.Second
	DefaultBatchSize      = 5
)

// Pacing holds the fixed politeness delays of a run.
type Pacing struct {
	ItemDelay      time.Duration
	BatchDelay     time.Duration
	PartitionDelay time.Duration
}

// Sleeper pauses for a duration or until ctx is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to the Sleeper interface.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerSleeper sleeps on a real timer.
type TimerSleeper struct{}

// Sleep blocks for d. It returns ctx.Err() if ctx is done first.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
