package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"BreakoutTrader/internal/fund"
	"BreakoutTrader/internal/model"
)

// FormatFill describes a confirmed order and the balances after it.
func FormatFill(order model.Order, price float64, fill fund.Fill, snap fund.Snapshot) string {
	var b strings.Builder
	icon := "🟢"
	if order.Instruction == model.InstructionSell || order.Instruction == model.InstructionBuyToCover {
		icon = "🔵"
	}
	b.WriteString(fmt.Sprintf("%s <b>%s %d %s</b> @ %.4f\n", icon, order.Instruction, order.Quantity, order.Symbol, price))
	if !fill.GrossProfit.IsZero() || order.Instruction == model.InstructionSell || order.Instruction == model.InstructionBuyToCover {
		b.WriteString(fmt.Sprintf("P/L: %s (cost %s)\n", fill.GrossProfit.StringFixed(2), fill.Cost.StringFixed(2)))
	}
	writeBalances(&b, snap)
	return b.String()
}

// FormatRejection reports an order the broker did not confirm. The error may
// carry a raw response body, so it is escaped for HTML parse mode.
func FormatRejection(order model.Order, err error) string {
	return fmt.Sprintf("🔴 <b>Order failed</b>: %s %d %s\n%s",
		order.Instruction, order.Quantity, html.EscapeString(order.Symbol), html.EscapeString(fmt.Sprint(err)))
}

// FormatLiquidation summarizes an end-of-day flatten.
func FormatLiquidation(at time.Time, closed, failed int, snap fund.Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌙 <b>End of day flatten</b> | %s\n", at.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Closed: %d", closed))
	if failed > 0 {
		b.WriteString(fmt.Sprintf(" | ⚠️ Failed: %d", failed))
	}
	b.WriteString("\n")
	writeBalances(&b, snap)
	return b.String()
}

func writeBalances(b *strings.Builder, snap fund.Snapshot) {
	b.WriteString(fmt.Sprintf("Available: %s | Used: %s\n",
		snap.AvailableCapital.StringFixed(2), snap.TotalCapitalUsed.StringFixed(2)))
	for _, p := range snap.Positions {
		if p.IsFlat() {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s %d @ %s\n", p.Symbol, p.Side, p.Quantity, p.EntryPrice.StringFixed(4)))
	}
}
