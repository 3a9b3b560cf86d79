package scheduler

import (
	"context"

	"go.uber.org/zap"

	"BreakoutTrader/internal/gateway"
	"BreakoutTrader/internal/metrics"
	"BreakoutTrader/internal/model"
)

// checkDrift compares broker-reported positions with the ledger. It only
// reports; the ledger changes solely on confirmed orders.
func (c *TradeController) checkDrift(ctx context.Context, creds model.Credentials) {
	reporter, ok := c.Orders.(gateway.PositionReporter)
	if !ok {
		return
	}
	broker, err := reporter.Positions(ctx, creds, c.params.Symbols)
	if err != nil {
		c.Logger.Warn("broker positions unavailable", zap.Error(err))
		return
	}

	for _, symbol := range c.params.Symbols {
		pos := c.Ledger.Position(symbol)
		var long, short int64
		switch pos.Side {
		case model.SideLong:
			long = pos.Quantity
		case model.SideShort:
			short = pos.Quantity
		}
		bp := broker[symbol]
		if bp.Long == long && bp.Short == short {
			continue
		}
		metrics.PositionDriftTotal.WithLabelValues(symbol).Inc()
		c.Logger.Warn("broker position differs from ledger",
			zap.String("symbol", symbol),
			zap.Int64("ledger_long", long),
			zap.Int64("ledger_short", short),
			zap.Int64("broker_long", bp.Long),
			zap.Int64("broker_short", bp.Short))
	}
}
