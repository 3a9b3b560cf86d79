package strategy

import (
	"fmt"

	"BreakoutTrader/internal/calculator"
	"BreakoutTrader/internal/model"
)

// StopMode selects how the stop-loss trigger is anchored.
type StopMode string

const (
	// StopTrailing anchors the stop on the favorable extreme of the window only.
	StopTrailing StopMode = "trailing"
	// StopTrailingWithEntryFloor additionally anchors the stop on the entry
	// price, so the stop never sits further away than entry*(1-stop).
	StopTrailingWithEntryFloor StopMode = "trailing_with_entry_floor"
)

// ParseStopMode validates a configured stop mode.
func ParseStopMode(s string) (StopMode, error) {
	switch StopMode(s) {
	case StopTrailing, StopTrailingWithEntryFloor:
		return StopMode(s), nil
	default:
		return "", fmt.Errorf("unknown stop mode %q", s)
	}
}

// Entry is the outcome of an entry evaluation with the figures behind it.
type Entry struct {
	Signal      model.Signal
	Current     float64
	LocalMin    float64
	LocalMax    float64
	RiseFromMin float64
	DropFromMax float64
}

// EvaluateEntry applies the breakout rule to a ready window.
// The rise check runs first, so a window that breaks both ways goes long.
func EvaluateEntry(window []float64, threshold float64) Entry {
	low, high, err := calculator.WindowRange(window)
	if err != nil {
		return Entry{Signal: model.SignalNone}
	}
	current := window[len(window)-1]

	e := Entry{
		Signal:      model.SignalNone,
		Current:     current,
		LocalMin:    low,
		LocalMax:    high,
		RiseFromMin: calculator.RiseFromMin(current, low),
		DropFromMax: calculator.DropFromMax(current, high),
	}
	switch {
	case e.RiseFromMin > threshold:
		e.Signal = model.SignalLong
	case e.DropFromMax > threshold:
		e.Signal = model.SignalShort
	}
	return e
}

// ShouldEnterTrade returns only the entry signal.
func ShouldEnterTrade(window []float64, threshold float64) model.Signal {
	return EvaluateEntry(window, threshold).Signal
}

// Exit is the outcome of a stop-loss evaluation.
type Exit struct {
	Triggered bool
	Current   float64
	// Extreme is the window max for a long and the window min for a short.
	Extreme float64
	// Trigger is the price at or beyond which the stop fires.
	Trigger float64
}

// EvaluateExit applies the stop-loss rule to an open position.
// A flat position or an empty window never triggers.
func EvaluateExit(side model.Side, window []float64, entryPrice, stopLoss float64, mode StopMode) Exit {
	low, high, err := calculator.WindowRange(window)
	if err != nil {
		return Exit{}
	}
	current := window[len(window)-1]

	switch side {
	case model.SideLong:
		anchor := high
		if mode == StopTrailingWithEntryFloor && entryPrice > anchor {
			anchor = entryPrice
		}
		trigger := anchor * (1 - stopLoss)
		return Exit{Triggered: current <= trigger, Current: current, Extreme: high, Trigger: trigger}
	case model.SideShort:
		anchor := low
		if mode == StopTrailingWithEntryFloor && entryPrice > 0 && entryPrice < anchor {
			anchor = entryPrice
		}
		trigger := anchor * (1 + stopLoss)
		return Exit{Triggered: current >= trigger, Current: current, Extreme: low, Trigger: trigger}
	default:
		return Exit{Current: current}
	}
}

// ShouldExitTrade returns only whether the stop fires.
func ShouldExitTrade(side model.Side, window []float64, entryPrice, stopLoss float64, mode StopMode) bool {
	return EvaluateExit(side, window, entryPrice, stopLoss, mode).Triggered
}
