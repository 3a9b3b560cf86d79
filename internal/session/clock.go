package session

import (
	"time"

	"github.com/moznion/go-optional"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

// Info is the per-tick view of the trading day.
type Info struct {
	Session   model.SessionType
	ClearTime optional.Option[time.Time]
}

// Describe classifies now against hours and derives the clear time.
func Describe(hours model.MarketHours, now time.Time, buffer time.Duration) Info {
	return Info{
		Session:   CurrentSession(hours, now),
		ClearTime: ClearTime(hours, buffer),
	}
}

// ShouldLiquidate is true once the clear time has passed.
func (i Info) ShouldLiquidate(now time.Time) bool {
	return ShouldLiquidate(now, i.ClearTime)
}

// CurrentSession returns the session whose interval contains now, else closed.
// Shared boundaries resolve to the earlier session.
func CurrentSession(hours model.MarketHours, now time.Time) model.SessionType {
	for _, st := range model.SessionOrder {
		for _, iv := range hours.Sessions[st] {
			if iv.Contains(now) {
				return st
			}
		}
	}
	return model.SessionClosed
}

// ClearTime is the regular close minus buffer, or none on a closed day.
func ClearTime(hours model.MarketHours, buffer time.Duration) optional.Option[time.Time] {
	regular, ok := hours.Regular()
	if !ok {
		return optional.None[time.Time]()
	}
	return optional.Some(regular.End.Add(-buffer))
}

// ShouldLiquidate reports whether clear is defined and now is at or past it.
func ShouldLiquidate(now time.Time, clear optional.Option[time.Time]) bool {
	if clear.IsNone() {
		return false
	}
	return !now.Before(clear.Unwrap())
}

// SleepDurationUntilOpen walks forward up to horizonDays trading-calendar days
// for the next regular open. Zero means the regular session is in progress.
func SleepDurationUntilOpen(cal *Calendar, now time.Time, horizonDays int) (time.Duration, error) {
	local := now.In(cal.Location())
	for d := 0; d <= horizonDays; d++ {
		day := time.Date(local.Year(), local.Month(), local.Day()+d, 12, 0, 0, 0, cal.Location())
		regular, ok := cal.RegularSession(day)
		if !ok {
			continue
		}
		if local.Before(regular.Start) {
			return regular.Start.Sub(local), nil
		}
		if local.Before(regular.End) {
			return 0, nil
		}
	}
	return 0, errors.Newf(errors.ErrCodeCalendarExhausted,
		"no regular session within %d days of %s", horizonDays, local.Format(time.RFC3339))
}
