package scheduler

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"BreakoutTrader/internal/metrics"
	"BreakoutTrader/internal/model"
	"BreakoutTrader/internal/notifier"
	"BreakoutTrader/internal/recorder"
)

// FlattenAll closes every open position, clears all price windows and resets
// the used capital to what is still committed. A position whose quote or close
// order fails stays open and is retried on the next call. Calling it again
// with nothing open only clears the windows.
func (c *TradeController) FlattenAll(ctx context.Context, creds model.Credentials) error {
	var errs error
	closed, failed := 0, 0

	for _, symbol := range c.Ledger.OpenSymbols() {
		pos := c.Ledger.Position(symbol)

		price, err := c.Collector.Quote(ctx, creds.AccessToken, symbol)
		if err != nil {
			failed++
			metrics.QuoteFailuresTotal.WithLabelValues(symbol).Inc()
			c.Logger.Warn("no price to flatten, keeping position", zap.String("symbol", symbol), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}

		order := model.NewOrder(symbol, model.CloseInstruction(pos.Side), pos.Quantity)
		if err := c.submit(ctx, creds, order, price, "LIQUIDATION"); err != nil {
			failed++
			errs = multierr.Append(errs, err)
			continue
		}
		fill, err := c.Ledger.Close(symbol, price)
		if err != nil {
			failed++
			errs = multierr.Append(errs, err)
			continue
		}
		closed++
		c.confirmed(ctx, order, price, fill, "LIQUIDATION")
	}

	c.Collector.Buffer.Reset()
	c.Ledger.ReconcileUsed()
	c.publishBalances()

	snap := c.Ledger.Snapshot()
	c.Logger.Info("positions flattened, price windows cleared",
		zap.Int("closed", closed),
		zap.Int("failed", failed),
		zap.String("available_capital", snap.AvailableCapital.StringFixed(2)),
		zap.String("capital_used", snap.TotalCapitalUsed.StringFixed(2)))

	if closed+failed == 0 {
		return errs
	}
	metrics.LiquidationsTotal.Inc()
	now := c.Clock.Now()
	if err := c.Recorder.RecordLiquidation(ctx, recorder.LiquidationEvent{
		Time:             now,
		Closed:           closed,
		Failed:           failed,
		AvailableCapital: snap.AvailableCapital.InexactFloat64(),
		CapitalUsed:      snap.TotalCapitalUsed.InexactFloat64(),
	}); err != nil {
		c.Logger.Error("record liquidation", zap.Error(err))
	}
	c.alert(ctx, notifier.FormatLiquidation(now, closed, failed, snap))
	return errs
}
