package session

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

func newCalendar(t *testing.T) *Calendar {
	t.Helper()
	loc, err := LoadLocation("America/New_York")
	require.NoError(t, err)
	cal, err := NewCalendar(loc, DefaultHolidays)
	require.NoError(t, err)
	return cal
}

func at(cal *Calendar, year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, cal.Location())
}

func TestIsTradingDay(t *testing.T) {
	cal := newCalendar(t)

	assert.True(t, cal.IsTradingDay(at(cal, 2025, 2, 18, 10, 0)))
	assert.False(t, cal.IsTradingDay(at(cal, 2025, 2, 15, 10, 0)), "saturday")
	assert.False(t, cal.IsTradingDay(at(cal, 2025, 2, 17, 10, 0)), "presidents day")
	assert.False(t, cal.IsTradingDay(at(cal, 2026, 7, 3, 10, 0)), "observed independence day")
}

func TestCurrentSessionWalksTheDay(t *testing.T) {
	cal := newCalendar(t)
	hours := cal.Hours(at(cal, 2025, 2, 18, 0, 0))

	assert.Equal(t, model.SessionClosed, CurrentSession(hours, at(cal, 2025, 2, 18, 3, 59)))
	assert.Equal(t, model.SessionPreMarket, CurrentSession(hours, at(cal, 2025, 2, 18, 8, 0)))
	assert.Equal(t, model.SessionRegularMarket, CurrentSession(hours, at(cal, 2025, 2, 18, 9, 30)))
	assert.Equal(t, model.SessionRegularMarket, CurrentSession(hours, at(cal, 2025, 2, 18, 16, 0)))
	assert.Equal(t, model.SessionPostMarket, CurrentSession(hours, at(cal, 2025, 2, 18, 16, 1)))
	assert.Equal(t, model.SessionClosed, CurrentSession(hours, at(cal, 2025, 2, 18, 20, 1)))
}

func TestClearTimeAndLiquidation(t *testing.T) {
	cal := newCalendar(t)
	hours := cal.Hours(at(cal, 2025, 2, 18, 0, 0))

	clear := ClearTime(hours, 5*time.Minute)
	require.True(t, clear.IsSome())
	assert.Equal(t, at(cal, 2025, 2, 18, 15, 55), clear.Unwrap())

	assert.False(t, ShouldLiquidate(at(cal, 2025, 2, 18, 15, 54), clear))
	assert.True(t, ShouldLiquidate(at(cal, 2025, 2, 18, 15, 55), clear))
	assert.True(t, ShouldLiquidate(at(cal, 2025, 2, 18, 17, 0), clear))
}

func TestHolidayHasNoClearTime(t *testing.T) {
	cal := newCalendar(t)
	info := Describe(cal.Hours(at(cal, 2025, 12, 25, 0, 0)), at(cal, 2025, 12, 25, 15, 58), 5*time.Minute)

	assert.Equal(t, model.SessionClosed, info.Session)
	assert.True(t, info.ClearTime.IsNone())
	assert.False(t, info.ShouldLiquidate(at(cal, 2025, 12, 25, 15, 58)))
}

func TestSleepDurationUntilOpen(t *testing.T) {
	cal := newCalendar(t)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"before open same day", at(cal, 2025, 2, 18, 8, 0), 90 * time.Minute},
		{"during regular session", at(cal, 2025, 2, 18, 15, 56), 0},
		{"after close rolls to next day", at(cal, 2025, 2, 18, 16, 0), 17*time.Hour + 30*time.Minute},
		{"friday evening skips weekend and holiday", at(cal, 2025, 2, 14, 17, 0), 88*time.Hour + 30*time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SleepDurationUntilOpen(cal, tt.now, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSleepDurationUntilOpenHorizon(t *testing.T) {
	cal := newCalendar(t)

	_, err := SleepDurationUntilOpen(cal, at(cal, 2025, 2, 14, 17, 0), 2)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCalendarExhausted))
}

func TestWaitUntilOpenReturnsImmediatelyWhenOpen(t *testing.T) {
	cal := newCalendar(t)
	w := &Waiter{
		Clock:       clockwork.NewFakeClockAt(at(cal, 2025, 2, 18, 11, 0)),
		Calendar:    cal,
		HorizonDays: 5,
		Logger:      zap.NewNop(),
	}

	waited, err := w.WaitUntilOpen(context.Background())
	require.NoError(t, err)
	assert.Zero(t, waited)
}

func TestWaitUntilOpenRechecks(t *testing.T) {
	cal := newCalendar(t)
	clock := clockwork.NewFakeClockAt(at(cal, 2025, 2, 18, 8, 0))
	w := &Waiter{Clock: clock, Calendar: cal, HorizonDays: 5, Recheck: time.Hour, Logger: zap.NewNop()}

	type result struct {
		waited time.Duration
		err    error
	}
	done := make(chan result, 1)
	go func() {
		waited, err := w.WaitUntilOpen(context.Background())
		done <- result{waited, err}
	}()

	clock.BlockUntil(1)
	clock.Advance(time.Hour)
	clock.BlockUntil(1)
	clock.Advance(30 * time.Minute)

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, 90*time.Minute, r.waited)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not finish")
	}
}

func TestWaitUntilOpenCancels(t *testing.T) {
	cal := newCalendar(t)
	clock := clockwork.NewFakeClockAt(at(cal, 2025, 2, 14, 17, 0))
	w := &Waiter{Clock: clock, Calendar: cal, HorizonDays: 5, Logger: zap.NewNop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := w.WaitUntilOpen(ctx)
		done <- err
	}()

	clock.BlockUntil(1)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("wait ignored cancellation")
	}
}

func TestStaticHoursServesCalendar(t *testing.T) {
	cal := newCalendar(t)
	hours, err := StaticHours{Calendar: cal}.SessionHours(context.Background(), "", at(cal, 2025, 2, 18, 12, 0))
	require.NoError(t, err)

	regular, ok := hours.Regular()
	require.True(t, ok)
	assert.Equal(t, at(cal, 2025, 2, 18, 16, 0), regular.End)
}
