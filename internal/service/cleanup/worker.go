package cleanup

import (
	"context"
	"errors"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

// Pruner drops observers not seen since cutoff and reports how many.
type Pruner interface {
	PruneStale(cutoff time.Time) int
}

// Worker periodically disconnects observers whose connection went quiet
// without a close frame.
type Worker struct {
	pruner     Pruner
	clock      quartz.Clock
	interval   time.Duration
	staleAfter time.Duration
	logger     zerolog.Logger
}

func NewWorker(pruner Pruner, clock quartz.Clock, interval, staleAfter time.Duration, logger zerolog.Logger) *Worker {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Worker{
		pruner:     pruner,
		clock:      clock,
		interval:   interval,
		staleAfter: staleAfter,
		logger:     logger.With().Str("component", "cleanup").Logger(),
	}
}

// Start schedules the sweep and returns immediately. The ticker exists by
// the time Start returns.
func (w *Worker) Start(ctx context.Context) quartz.Waiter {
	w.logger.Info().Dur("interval", w.interval).Dur("stale_after", w.staleAfter).Msg("background worker started")
	return w.clock.TickerFunc(ctx, w.interval, func() error {
		w.RunOnce()
		return nil
	}, "cleanup", "sweep")
}

// Run sweeps until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	err := w.Start(ctx).Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RunOnce executes the actual cleanup logic
func (w *Worker) RunOnce() int {
	cutoff := w.clock.Now().Add(-w.staleAfter)
	removed := w.pruner.PruneStale(cutoff)
	if removed > 0 {
		w.logger.Info().Int("removed", removed).Msg("removed stale observers")
	}
	return removed
}
