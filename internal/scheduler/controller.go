package scheduler

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"BreakoutTrader/internal/collector"
	"BreakoutTrader/internal/credential"
	"BreakoutTrader/internal/fund"
	"BreakoutTrader/internal/gateway"
	"BreakoutTrader/internal/metrics"
	"BreakoutTrader/internal/model"
	"BreakoutTrader/internal/notifier"
	"BreakoutTrader/internal/recorder"
	"BreakoutTrader/internal/session"
	"BreakoutTrader/internal/strategy"
)

// Params are the static trading settings.
type Params struct {
	Symbols     []string
	Threshold   float64
	StopLoss    float64
	StopMode    strategy.StopMode
	ClearBuffer time.Duration
	// Tick is the cadence of the control loop.
	Tick cron.Schedule
	// WaitOnStart sleeps until the next regular open before the first tick.
	WaitOnStart bool
}

// Deps are the collaborators the controller drives.
type Deps struct {
	Clock       clockwork.Clock
	Credentials *credential.Cache
	Hours       gateway.MarketHours
	Collector   *collector.Collector
	Orders      gateway.OrderGateway
	Ledger      *fund.Ledger
	Policy      fund.Policy
	Waiter      *session.Waiter
	Recorder    recorder.Recorder
	Notifier    notifier.Notifier
	Logger      *zap.Logger
}

// TradeController runs the tick loop. All state is owned by the loop's
// goroutine; nothing here is safe for concurrent use.
type TradeController struct {
	Deps
	params Params
}

// NewTradeController wires the controller.
func NewTradeController(params Params, deps Deps) *TradeController {
	if deps.Recorder == nil {
		deps.Recorder = recorder.NewNoopRecorder()
	}
	if deps.Notifier == nil {
		deps.Notifier = notifier.Noop{}
	}
	return &TradeController{Deps: deps, params: params}
}

// Run ticks until ctx is cancelled. It returns an error only when credentials
// have never been obtained.
func (c *TradeController) Run(ctx context.Context) error {
	c.Logger.Info("trade controller starting",
		zap.Strings("symbols", c.params.Symbols),
		zap.Float64("threshold", c.params.Threshold),
		zap.Float64("stop_loss", c.params.StopLoss),
		zap.String("stop_mode", string(c.params.StopMode)))

	if c.params.WaitOnStart {
		if _, err := c.Waiter.WaitUntilOpen(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.Logger.Warn("initial wait for open failed", zap.Error(err))
		}
	}

	for {
		liquidated, err := c.Tick(ctx)
		if ctx.Err() != nil {
			c.Logger.Info("trade controller stopped")
			return nil
		}
		if err != nil {
			return err
		}

		if liquidated {
			waited, err := c.Waiter.WaitUntilOpen(ctx)
			if ctx.Err() != nil {
				c.Logger.Info("trade controller stopped")
				return nil
			}
			if err != nil {
				c.Logger.Error("wait for next open failed", zap.Error(err))
			}
			if waited > 0 {
				continue
			}
		}

		if err := c.sleepUntilNextTick(ctx); err != nil {
			c.Logger.Info("trade controller stopped")
			return nil
		}
	}
}

func (c *TradeController) sleepUntilNextTick(ctx context.Context) error {
	now := c.Clock.Now()
	timer := c.Clock.NewTimer(c.params.Tick.Next(now).Sub(now))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

// Tick processes every symbol once, in configured order. It reports whether
// the pre-close flatten ran, which ends the tick.
func (c *TradeController) Tick(ctx context.Context) (bool, error) {
	creds, err := c.Credentials.Refresh(ctx)
	if err != nil {
		return false, err
	}
	defer c.publishBalances()
	metrics.TicksTotal.Inc()

	c.checkDrift(ctx, creds)

	for _, symbol := range c.params.Symbols {
		now := c.Clock.Now()

		hours, err := c.Hours.SessionHours(ctx, creds.AccessToken, now)
		if err != nil {
			c.Logger.Warn("market hours unavailable, skipping symbol", zap.String("symbol", symbol), zap.Error(err))
			continue
		}
		info := session.Describe(hours, now, c.params.ClearBuffer)
		if info.ShouldLiquidate(now) {
			c.Logger.Info("clear time reached, flattening",
				zap.Time("clear_time", info.ClearTime.Unwrap()))
			if err := c.FlattenAll(ctx, creds); err != nil {
				c.Logger.Error("flatten left positions open", zap.Error(err))
			}
			return true, nil
		}

		price, err := c.Collector.Sample(ctx, creds.AccessToken, symbol, now)
		if err != nil {
			metrics.QuoteFailuresTotal.WithLabelValues(symbol).Inc()
			c.Logger.Warn("price unavailable, skipping symbol", zap.String("symbol", symbol), zap.Error(err))
			continue
		}
		c.Logger.Info("price",
			zap.String("symbol", symbol),
			zap.Float64("price", price),
			zap.String("session", string(info.Session)))

		if !c.Collector.Buffer.IsReady(symbol) {
			c.Logger.Debug("window filling",
				zap.String("symbol", symbol),
				zap.Int("have", c.Collector.Buffer.Len(symbol)),
				zap.Int("need", c.Collector.Buffer.Size()))
			continue
		}
		if info.Session != model.SessionRegularMarket {
			continue
		}

		window := c.Collector.Buffer.Snapshot(symbol)
		if pos := c.Ledger.Position(symbol); pos.IsFlat() {
			c.tryEnter(ctx, creds, symbol, window, price, now)
		} else {
			c.tryExit(ctx, creds, pos, window, price)
		}
	}
	return false, nil
}

func (c *TradeController) tryEnter(ctx context.Context, creds model.Credentials, symbol string, window []float64, price float64, now time.Time) {
	entry := strategy.EvaluateEntry(window, c.params.Threshold)
	c.Logger.Debug("entry check",
		zap.String("symbol", symbol),
		zap.Float64("price", entry.Current),
		zap.Float64("local_min", entry.LocalMin),
		zap.Float64("local_max", entry.LocalMax),
		zap.Float64("rise_from_min", entry.RiseFromMin),
		zap.Float64("drop_from_max", entry.DropFromMax))

	side := model.SideFromSignal(entry.Signal)
	if side == model.SideFlat {
		return
	}

	qty := c.Policy.Quantity(c.Ledger, side, price)
	if qty <= 0 {
		c.Logger.Info("entry skipped, no allocatable capital",
			zap.String("symbol", symbol),
			zap.String("side", string(side)),
			zap.String("available_capital", c.Ledger.AvailableCapital().StringFixed(2)))
		return
	}
	if err := c.Policy.Admit(c.Ledger, side, qty, price); err != nil {
		c.Logger.Warn("entry skipped by capital limit", zap.String("symbol", symbol), zap.Error(err))
		return
	}

	order := model.NewOrder(symbol, model.OpenInstruction(side), qty)
	if err := c.submit(ctx, creds, order, price, "ENTRY"); err != nil {
		return
	}
	fill, err := c.Ledger.Open(symbol, side, qty, price, now)
	if err != nil {
		c.Logger.Error("ledger refused a confirmed entry", zap.String("symbol", symbol), zap.Error(err))
		return
	}
	c.confirmed(ctx, order, price, fill, "ENTRY")
}

func (c *TradeController) tryExit(ctx context.Context, creds model.Credentials, pos model.Position, window []float64, price float64) {
	exit := strategy.EvaluateExit(pos.Side, window, pos.EntryPrice.InexactFloat64(), c.params.StopLoss, c.params.StopMode)
	c.Logger.Debug("exit check",
		zap.String("symbol", pos.Symbol),
		zap.String("side", string(pos.Side)),
		zap.Float64("price", exit.Current),
		zap.Float64("extreme", exit.Extreme),
		zap.Float64("trigger", exit.Trigger))
	if !exit.Triggered {
		return
	}

	order := model.NewOrder(pos.Symbol, model.CloseInstruction(pos.Side), pos.Quantity)
	if err := c.submit(ctx, creds, order, price, "EXIT"); err != nil {
		return
	}
	fill, err := c.Ledger.Close(pos.Symbol, price)
	if err != nil {
		c.Logger.Error("ledger refused a confirmed exit", zap.String("symbol", pos.Symbol), zap.Error(err))
		return
	}
	c.confirmed(ctx, order, price, fill, "EXIT")
}

// submit sends the order once. On failure it journals and alerts, and the
// caller must leave all state untouched.
func (c *TradeController) submit(ctx context.Context, creds model.Credentials, order model.Order, price float64, reason string) error {
	c.Logger.Info("submitting order",
		zap.String("order_id", order.ID.String()),
		zap.String("symbol", order.Symbol),
		zap.String("instruction", string(order.Instruction)),
		zap.Int64("quantity", order.Quantity),
		zap.Float64("price", price),
		zap.String("reason", reason))

	err := c.Orders.SubmitMarketOrder(ctx, creds, order)
	if err == nil {
		return nil
	}

	metrics.OrdersTotal.WithLabelValues(order.Symbol, string(order.Instruction), "failed").Inc()
	c.Logger.Error("order failed", zap.String("symbol", order.Symbol), zap.String("instruction", string(order.Instruction)), zap.Error(err))
	c.journal(ctx, recorder.OrderEvent{
		OrderID:     order.ID.String(),
		Time:        c.Clock.Now(),
		Symbol:      order.Symbol,
		Instruction: string(order.Instruction),
		Quantity:    order.Quantity,
		Price:       price,
		Reason:      reason,
		Error:       err.Error(),
	})
	c.alert(ctx, notifier.FormatRejection(order, err))
	return err
}

func (c *TradeController) confirmed(ctx context.Context, order model.Order, price float64, fill fund.Fill, reason string) {
	snap := c.Ledger.Snapshot()
	metrics.OrdersTotal.WithLabelValues(order.Symbol, string(order.Instruction), "filled").Inc()
	c.Logger.Info("order filled",
		zap.String("symbol", order.Symbol),
		zap.String("instruction", string(order.Instruction)),
		zap.Int64("quantity", order.Quantity),
		zap.Float64("price", price),
		zap.String("capital_delta", fill.CapitalDelta.StringFixed(2)),
		zap.String("available_capital", snap.AvailableCapital.StringFixed(2)),
		zap.String("capital_used", snap.TotalCapitalUsed.StringFixed(2)))
	c.journal(ctx, recorder.OrderEvent{
		OrderID:          order.ID.String(),
		Time:             c.Clock.Now(),
		Symbol:           order.Symbol,
		Instruction:      string(order.Instruction),
		Quantity:         order.Quantity,
		Price:            price,
		Reason:           reason,
		Accepted:         true,
		AvailableCapital: snap.AvailableCapital.InexactFloat64(),
		CapitalUsed:      snap.TotalCapitalUsed.InexactFloat64(),
	})
	c.alert(ctx, notifier.FormatFill(order, price, fill, snap))
}

func (c *TradeController) journal(ctx context.Context, evt recorder.OrderEvent) {
	if err := c.Recorder.RecordOrder(ctx, evt); err != nil {
		c.Logger.Error("record order", zap.Error(err))
	}
}

func (c *TradeController) alert(ctx context.Context, text string) {
	if err := c.Notifier.Send(ctx, text); err != nil {
		c.Logger.Error("send notification", zap.Error(err))
	}
}

func (c *TradeController) publishBalances() {
	metrics.AvailableCapital.Set(c.Ledger.AvailableCapital().InexactFloat64())
	metrics.CapitalUsed.Set(c.Ledger.TotalCapitalUsed().InexactFloat64())
}
