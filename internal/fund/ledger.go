package fund

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

// Ledger tracks one position per symbol and the shared capital account.
// It is owned by a single control loop and is not safe for concurrent use.
type Ledger struct {
	available decimal.Decimal
	used      decimal.Decimal
	costRate  decimal.Decimal
	symbols   []string
	positions map[string]model.Position
}

// Fill describes the capital effect of a confirmed open or close.
type Fill struct {
	Symbol   string
	Side     model.Side
	Quantity int64
	Price    decimal.Decimal
	// CapitalDelta is the change applied to available capital.
	CapitalDelta decimal.Decimal
	// GrossProfit is the price move times quantity, before costs. Zero on open.
	GrossProfit decimal.Decimal
	// Cost is the transaction cost charged by this fill.
	Cost decimal.Decimal
	// Committed is the capital added to (open) or released from (close) the used total.
	Committed decimal.Decimal
}

// NewLedger creates a ledger with every symbol flat.
func NewLedger(symbols []string, startingCapital, costRate decimal.Decimal) *Ledger {
	l := &Ledger{
		available: startingCapital,
		used:      decimal.Zero,
		costRate:  costRate,
		symbols:   append([]string(nil), symbols...),
		positions: make(map[string]model.Position, len(symbols)),
	}
	for _, s := range symbols {
		l.positions[s] = model.Position{Symbol: s, Side: model.SideFlat}
	}
	return l
}

// AvailableCapital is the free cash balance.
func (l *Ledger) AvailableCapital() decimal.Decimal { return l.available }

// TotalCapitalUsed is the capital committed to open positions.
func (l *Ledger) TotalCapitalUsed() decimal.Decimal { return l.used }

// CostRate is the transaction cost fraction.
func (l *Ledger) CostRate() decimal.Decimal { return l.costRate }

// Symbols returns the configured universe in order.
func (l *Ledger) Symbols() []string { return append([]string(nil), l.symbols...) }

// Position returns the current position for symbol. Unknown symbols report flat.
func (l *Ledger) Position(symbol string) model.Position {
	if p, ok := l.positions[symbol]; ok {
		return p
	}
	return model.Position{Symbol: symbol, Side: model.SideFlat}
}

// OpenSymbols lists symbols with exposure, in universe order.
func (l *Ledger) OpenSymbols() []string {
	var out []string
	for _, s := range l.symbols {
		if !l.positions[s].IsFlat() {
			out = append(out, s)
		}
	}
	return out
}

// ProjectedCost is the capital an entry is checked against.
// Longs include the transaction cost; shorts use their market value.
func (l *Ledger) ProjectedCost(side model.Side, quantity int64, price float64) decimal.Decimal {
	notional := decimal.NewFromInt(quantity).Mul(decimal.NewFromFloat(price))
	if side == model.SideLong {
		return notional.Mul(decimal.NewFromInt(1).Add(l.costRate))
	}
	return notional
}

// Open records a confirmed entry. The symbol must be flat.
func (l *Ledger) Open(symbol string, side model.Side, quantity int64, price float64, at time.Time) (Fill, error) {
	pos, ok := l.positions[symbol]
	if !ok {
		return Fill{}, errors.Newf(errors.ErrCodeUnknownSymbol, "symbol %s is not in the universe", symbol)
	}
	if !pos.IsFlat() {
		return Fill{}, errors.Newf(errors.ErrCodePositionNotFlat, "cannot open %s on %s: already %s", side, symbol, pos.Side)
	}
	if side != model.SideLong && side != model.SideShort {
		return Fill{}, errors.Newf(errors.ErrCodeInvalidQuantity, "cannot open side %q", side)
	}
	if quantity <= 0 {
		return Fill{}, errors.Newf(errors.ErrCodeInvalidQuantity, "quantity must be positive, got %d", quantity)
	}
	if err := validPrice(symbol, price); err != nil {
		return Fill{}, err
	}

	px := decimal.NewFromFloat(price)
	// Used capital tracks notional at entry; the long cost is a cash debit only.
	committed := decimal.NewFromInt(quantity).Mul(px)

	fill := Fill{Symbol: symbol, Side: side, Quantity: quantity, Price: px, Committed: committed}
	if side == model.SideLong {
		debit := l.ProjectedCost(side, quantity, price)
		fill.Cost = debit.Sub(committed)
		fill.CapitalDelta = debit.Neg()
		l.available = l.available.Sub(debit)
	}
	l.used = l.used.Add(committed)
	l.positions[symbol] = model.Position{
		Symbol:     symbol,
		Side:       side,
		Quantity:   quantity,
		EntryPrice: px,
		Committed:  committed,
		OpenedAt:   at,
	}
	return fill, nil
}

// Close records a confirmed exit at price and returns the symbol to flat.
func (l *Ledger) Close(symbol string, price float64) (Fill, error) {
	pos, ok := l.positions[symbol]
	if !ok {
		return Fill{}, errors.Newf(errors.ErrCodeUnknownSymbol, "symbol %s is not in the universe", symbol)
	}
	if pos.IsFlat() {
		return Fill{}, errors.Newf(errors.ErrCodePositionNotOpen, "no open position on %s", symbol)
	}
	if err := validPrice(symbol, price); err != nil {
		return Fill{}, err
	}

	px := decimal.NewFromFloat(price)
	qty := decimal.NewFromInt(pos.Quantity)
	notional := qty.Mul(px)
	one := decimal.NewFromInt(1)

	fill := Fill{Symbol: symbol, Side: pos.Side, Quantity: pos.Quantity, Price: px, Committed: pos.Committed}
	switch pos.Side {
	case model.SideLong:
		proceeds := notional.Mul(one.Sub(l.costRate))
		fill.CapitalDelta = proceeds
		fill.GrossProfit = px.Sub(pos.EntryPrice).Mul(qty)
		fill.Cost = notional.Mul(l.costRate)
	case model.SideShort:
		coverCost := notional.Mul(one.Add(l.costRate))
		profit := qty.Mul(pos.EntryPrice).Sub(coverCost)
		fill.CapitalDelta = profit
		fill.GrossProfit = pos.EntryPrice.Sub(px).Mul(qty)
		fill.Cost = notional.Mul(l.costRate)
	}

	l.available = l.available.Add(fill.CapitalDelta)
	l.used = l.used.Sub(pos.Committed)
	l.positions[symbol] = model.Position{Symbol: symbol, Side: model.SideFlat}
	return fill, nil
}

// ReconcileUsed resets the used total to the commitments of positions still open.
// After a full flatten this is zero.
func (l *Ledger) ReconcileUsed() {
	used := decimal.Zero
	for _, s := range l.symbols {
		if p := l.positions[s]; !p.IsFlat() {
			used = used.Add(p.Committed)
		}
	}
	l.used = used
}

func validPrice(symbol string, price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPrice, "invalid price %v for %s", price, symbol)
	}
	return nil
}
