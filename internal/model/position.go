package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of an open position.
type Side string

const (
	SideFlat  Side = "flat"
	SideLong  Side = "long"
	SideShort Side = "short"
)

// SideFromSignal converts an entry signal into the side it opens.
func SideFromSignal(s Signal) Side {
	switch s {
	case SignalLong:
		return SideLong
	case SignalShort:
		return SideShort
	default:
		return SideFlat
	}
}

// Position is the per-symbol state. Quantity is shares held for a long and
// borrowed shares for a short. Committed is the capital added to the used
// total when the position was opened.
type Position struct {
	Symbol     string
	Side       Side
	Quantity   int64
	EntryPrice decimal.Decimal
	Committed  decimal.Decimal
	OpenedAt   time.Time
}

// IsFlat reports whether the symbol holds no exposure.
func (p Position) IsFlat() bool {
	return p.Side == SideFlat
}

// Credentials is the token/account pair used for every broker call.
type Credentials struct {
	AccessToken string
	AccountID   string
}
