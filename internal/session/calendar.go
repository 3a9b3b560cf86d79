// Package session classifies market sessions, computes the pre-close
// liquidation deadline and decides how long to sleep until the next open.
package session

import (
	"context"
	"time"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

// Exchange session boundaries as offsets from local midnight.
const (
	preMarketOpen = 4 * time.Hour
	regularOpen   = 9*time.Hour + 30*time.Minute
	regularClose  = 16 * time.Hour
	postMarketEnd = 20 * time.Hour
	dateLayout    = "2006-01-02"
	defaultZone   = "America/New_York"
)

// DefaultHolidays lists full-day NYSE closures for 2024 through 2026.
var DefaultHolidays = []string{
	"2024-01-01", "2024-01-15", "2024-02-19", "2024-03-29", "2024-05-27",
	"2024-06-19", "2024-07-04", "2024-09-02", "2024-11-28", "2024-12-25",
	"2025-01-01", "2025-01-09", "2025-01-20", "2025-02-17", "2025-04-18",
	"2025-05-26", "2025-06-19", "2025-07-04", "2025-09-01", "2025-11-27",
	"2025-12-25",
	"2026-01-01", "2026-01-19", "2026-02-16", "2026-04-03", "2026-05-25",
	"2026-06-19", "2026-07-03", "2026-09-07", "2026-11-26", "2026-12-25",
}

// Calendar is a weekday-plus-holiday trading calendar in the exchange timezone.
type Calendar struct {
	loc      *time.Location
	holidays map[string]struct{}
}

// NewCalendar builds a calendar for loc. Holidays are YYYY-MM-DD dates.
func NewCalendar(loc *time.Location, holidays []string) (*Calendar, error) {
	if loc == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "calendar needs a location")
	}
	c := &Calendar{loc: loc, holidays: make(map[string]struct{}, len(holidays))}
	for _, h := range holidays {
		if _, err := time.ParseInLocation(dateLayout, h, loc); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "bad holiday %q", h)
		}
		c.holidays[h] = struct{}{}
	}
	return c, nil
}

// LoadLocation resolves a timezone name, defaulting to New York.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = defaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "unknown timezone %q", name)
	}
	return loc, nil
}

// Location is the exchange timezone.
func (c *Calendar) Location() *time.Location { return c.loc }

// IsTradingDay reports whether the exchange opens on date's local day.
func (c *Calendar) IsTradingDay(date time.Time) bool {
	local := date.In(c.loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, closed := c.holidays[local.Format(dateLayout)]
	return !closed
}

// RegularSession returns the regular open and close for date, if it trades.
func (c *Calendar) RegularSession(date time.Time) (model.Interval, bool) {
	if !c.IsTradingDay(date) {
		return model.Interval{}, false
	}
	midnight := c.midnight(date)
	return model.Interval{Start: midnight.Add(regularOpen), End: midnight.Add(regularClose)}, true
}

// Hours builds the full session table for date. Closed days have no sessions.
func (c *Calendar) Hours(date time.Time) model.MarketHours {
	midnight := c.midnight(date)
	hours := model.MarketHours{Date: midnight, Sessions: map[model.SessionType][]model.Interval{}}
	if !c.IsTradingDay(date) {
		return hours
	}
	hours.Sessions[model.SessionPreMarket] = []model.Interval{{Start: midnight.Add(preMarketOpen), End: midnight.Add(regularOpen)}}
	hours.Sessions[model.SessionRegularMarket] = []model.Interval{{Start: midnight.Add(regularOpen), End: midnight.Add(regularClose)}}
	hours.Sessions[model.SessionPostMarket] = []model.Interval{{Start: midnight.Add(regularClose), End: midnight.Add(postMarketEnd)}}
	return hours
}

func (c *Calendar) midnight(date time.Time) time.Time {
	local := date.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// StaticHours serves calendar-derived session hours when no broker hours API is configured.
type StaticHours struct {
	Calendar *Calendar
}

// SessionHours ignores the token and answers from the calendar.
func (s StaticHours) SessionHours(_ context.Context, _ string, date time.Time) (model.MarketHours, error) {
	return s.Calendar.Hours(date), nil
}
