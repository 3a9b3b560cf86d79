package fund

import (
	"fmt"

	"github.com/shopspring/decimal"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

// PolicyMode selects how entry size and the capital limit are derived.
type PolicyMode string

const (
	// PolicyGlobal caps total committed capital at a fixed dollar limit.
	PolicyGlobal PolicyMode = "global"
	// PolicyPerSymbol sizes each entry from a fraction of available capital.
	PolicyPerSymbol PolicyMode = "per_symbol"
)

// ParsePolicyMode validates a configured policy name.
func ParsePolicyMode(s string) (PolicyMode, error) {
	switch PolicyMode(s) {
	case PolicyGlobal, PolicyPerSymbol:
		return PolicyMode(s), nil
	default:
		return "", fmt.Errorf("unknown capital policy %q", s)
	}
}

// Policy decides how much capital an entry may use.
type Policy struct {
	Mode           PolicyMode
	GlobalLimit    decimal.Decimal
	SymbolFraction decimal.Decimal
}

// Allocatable is the capital available to size the next entry.
//   - global: min(available, limit - used)
//   - per_symbol: available * fraction
func (p Policy) Allocatable(l *Ledger) decimal.Decimal {
	var a decimal.Decimal
	switch p.Mode {
	case PolicyGlobal:
		a = decimal.Min(l.AvailableCapital(), p.GlobalLimit.Sub(l.TotalCapitalUsed()))
	default:
		a = l.AvailableCapital().Mul(p.SymbolFraction)
	}
	if a.IsNegative() {
		return decimal.Zero
	}
	return a
}

// Limit is the ceiling that used capital plus a new entry may not exceed.
// Under per_symbol the pool is whatever is committed plus still available.
func (p Policy) Limit(l *Ledger) decimal.Decimal {
	if p.Mode == PolicyGlobal {
		return p.GlobalLimit
	}
	return l.TotalCapitalUsed().Add(l.AvailableCapital())
}

// Quantity is floor(allocatable / price) whole shares. A long that would not
// fit its headroom once the transaction cost is added is sized down to
// floor(headroom / (price * (1 + cost))), so the result always passes Admit.
func (p Policy) Quantity(l *Ledger, side model.Side, price float64) int64 {
	if price <= 0 {
		return 0
	}
	px := decimal.NewFromFloat(price)
	q := p.Allocatable(l).Div(px).Floor()
	if q.IsNegative() {
		return 0
	}
	if side != model.SideLong {
		return q.IntPart()
	}

	headroom := decimal.Min(l.AvailableCapital(), p.Limit(l).Sub(l.TotalCapitalUsed()))
	if l.ProjectedCost(side, q.IntPart(), price).LessThanOrEqual(headroom) {
		return q.IntPart()
	}
	if !headroom.IsPositive() {
		return 0
	}
	return headroom.Div(px.Mul(decimal.NewFromInt(1).Add(l.CostRate()))).Floor().IntPart()
}

// Admit rejects an entry whose projected cost would push used capital past the limit.
func (p Policy) Admit(l *Ledger, side model.Side, quantity int64, price float64) error {
	projected := l.ProjectedCost(side, quantity, price)
	limit := p.Limit(l)
	if l.TotalCapitalUsed().Add(projected).GreaterThan(limit) {
		return errors.Newf(errors.ErrCodeCapitalLimit,
			"entry needs %s, used %s, limit %s",
			projected.StringFixed(2), l.TotalCapitalUsed().StringFixed(2), limit.StringFixed(2))
	}
	if side == model.SideLong && projected.GreaterThan(l.AvailableCapital()) {
		return errors.Newf(errors.ErrCodeCapitalLimit,
			"long entry needs %s, only %s available",
			projected.StringFixed(2), l.AvailableCapital().StringFixed(2))
	}
	return nil
}
