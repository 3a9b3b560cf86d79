package model

import "time"

// PriceSample is a single observed last price for a symbol.
type PriceSample struct {
	Symbol string
	Price  float64
	Time   time.Time
}

// SessionType is the trading session a point in time falls into.
type SessionType string

const (
	SessionPreMarket     SessionType = "preMarket"
	SessionRegularMarket SessionType = "regularMarket"
	SessionPostMarket    SessionType = "postMarket"
	SessionClosed        SessionType = "closed"
)

// SessionOrder is the order sessions occur in over a trading day.
var SessionOrder = []SessionType{SessionPreMarket, SessionRegularMarket, SessionPostMarket}

// Interval is a closed [Start, End] time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within the interval, bounds included.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}

// MarketHours describes the session intervals for one trading date.
// A date without a regular session is a closed day.
type MarketHours struct {
	Date     time.Time
	Sessions map[SessionType][]Interval
}

// Regular returns the first regular-market interval, if any.
func (h MarketHours) Regular() (Interval, bool) {
	periods := h.Sessions[SessionRegularMarket]
	if len(periods) == 0 {
		return Interval{}, false
	}
	return periods[0], true
}
