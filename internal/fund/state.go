package fund

import (
	"github.com/shopspring/decimal"

	"BreakoutTrader/internal/model"
)

// Snapshot is a read-only copy of the ledger for logging and alerts.
type Snapshot struct {
	AvailableCapital decimal.Decimal
	TotalCapitalUsed decimal.Decimal
	Positions        []model.Position
}

// Snapshot copies the current balances and every position in universe order.
func (l *Ledger) Snapshot() Snapshot {
	positions := make([]model.Position, 0, len(l.symbols))
	for _, s := range l.symbols {
		positions = append(positions, l.positions[s])
	}
	return Snapshot{
		AvailableCapital: l.available,
		TotalCapitalUsed: l.used,
		Positions:        positions,
	}
}

// OpenCount returns how many positions carry exposure.
func (s Snapshot) OpenCount() int {
	n := 0
	for _, p := range s.Positions {
		if !p.IsFlat() {
			n++
		}
	}
	return n
}
