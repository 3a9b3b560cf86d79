package collector

import (
	"math"
	"time"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

// PriceBuffer keeps a fixed-size FIFO window of recent prices per symbol.
type PriceBuffer struct {
	size    int
	windows map[string][]model.PriceSample
}

// NewPriceBuffer creates a buffer holding at most size samples per symbol.
func NewPriceBuffer(size int) *PriceBuffer {
	if size < 1 {
		size = 1
	}
	return &PriceBuffer{size: size, windows: make(map[string][]model.PriceSample)}
}

// Size is the neighborhood size N.
func (b *PriceBuffer) Size() int { return b.size }

// Push appends a price, evicting the oldest sample once the window is full.
// Non-finite or non-positive prices are rejected and leave the window unchanged.
func (b *PriceBuffer) Push(symbol string, price float64, at time.Time) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPrice, "invalid price %v for %s", price, symbol)
	}
	w := append(b.windows[symbol], model.PriceSample{Symbol: symbol, Price: price, Time: at})
	if len(w) > b.size {
		// copy down rather than reslice so the backing array does not grow unbounded
		w = append(w[:0], w[len(w)-b.size:]...)
	}
	b.windows[symbol] = w
	return nil
}

// IsReady reports whether the window holds a full N samples.
func (b *PriceBuffer) IsReady(symbol string) bool {
	return len(b.windows[symbol]) == b.size
}

// Len returns the number of samples held for symbol.
func (b *PriceBuffer) Len(symbol string) int {
	return len(b.windows[symbol])
}

// Snapshot returns a copy of the window prices, oldest first.
func (b *PriceBuffer) Snapshot(symbol string) []float64 {
	w := b.windows[symbol]
	out := make([]float64, len(w))
	for i, s := range w {
		out[i] = s.Price
	}
	return out
}

// Samples returns a copy of the window samples, oldest first.
func (b *PriceBuffer) Samples(symbol string) []model.PriceSample {
	w := b.windows[symbol]
	out := make([]model.PriceSample, len(w))
	copy(out, w)
	return out
}

// Clear empties one symbol's window.
func (b *PriceBuffer) Clear(symbol string) {
	delete(b.windows, symbol)
}

// Reset empties every window.
func (b *PriceBuffer) Reset() {
	b.windows = make(map[string][]model.PriceSample)
}
