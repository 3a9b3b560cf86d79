package session

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Waiter sleeps until the next regular open. The wake time is recomputed on
// every pass so a long wait is a series of bounded, cancellable sleeps.
type Waiter struct {
	Clock    clockwork.Clock
	Calendar *Calendar
	// HorizonDays bounds the calendar walk.
	HorizonDays int
	// Recheck caps a single sleep. Zero sleeps the whole duration at once.
	Recheck time.Duration
	Logger  *zap.Logger
}

// WaitUntilOpen returns how long it slept. It returns immediately with zero
// when the regular session is already in progress.
func (w *Waiter) WaitUntilOpen(ctx context.Context) (time.Duration, error) {
	start := w.Clock.Now()
	for pass := 0; ; pass++ {
		now := w.Clock.Now()
		d, err := SleepDurationUntilOpen(w.Calendar, now, w.HorizonDays)
		if err != nil {
			return now.Sub(start), err
		}
		if d <= 0 {
			return now.Sub(start), nil
		}
		if pass == 0 {
			w.Logger.Info("market closed, sleeping until next open",
				zap.Time("open_at", now.Add(d).In(w.Calendar.Location())),
				zap.Float64("hours", d.Hours()))
		}

		step := d
		if w.Recheck > 0 && step > w.Recheck {
			step = w.Recheck
		}
		timer := w.Clock.NewTimer(step)
		select {
		case <-ctx.Done():
			timer.Stop()
			return w.Clock.Now().Sub(start), ctx.Err()
		case <-timer.Chan():
		}
	}
}
