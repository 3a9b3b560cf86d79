package recorder

import (
	"context"
	"time"
)

// OrderEvent is one order the controller submitted, filled or not.
type OrderEvent struct {
	OrderID     string
	Time        time.Time
	Symbol      string
	Instruction string
	Quantity    int64
	Price       float64
	Reason      string // "ENTRY", "EXIT" or "LIQUIDATION"
	Accepted    bool
	Error       string
	// Capital balances after the ledger applied the fill.
	AvailableCapital float64
	CapitalUsed      float64
}

// LiquidationEvent records an end-of-day flatten.
type LiquidationEvent struct {
	Time             time.Time
	Closed           int
	Failed           int
	AvailableCapital float64
	CapitalUsed      float64
	Note             string
}

// Recorder is an append-only audit journal of orders and liquidations.
type Recorder interface {
	RecordOrder(ctx context.Context, evt OrderEvent) error
	RecordLiquidation(ctx context.Context, evt LiquidationEvent) error
	Close() error
}
