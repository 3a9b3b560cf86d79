package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"BreakoutTrader/internal/errors"
)

// MockFetcher replays scripted prices per symbol for development and tests.
// Each call consumes the next price; the last one repeats once the script is
// exhausted. A zero entry is reported as unavailable.
type MockFetcher struct {
	mu     sync.Mutex
	Prices map[string][]float64
	calls  map[string]int
}

// NewMockFetcher creates a fetcher with the given scripts.
func NewMockFetcher(prices map[string][]float64) *MockFetcher {
	return &MockFetcher{Prices: prices, calls: make(map[string]int)}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) LastPrice(_ context.Context, _ string, symbol string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	script := m.Prices[symbol]
	if len(script) == 0 {
		return 0, errors.Newf(errors.ErrCodeQuoteUnavailable, "no scripted price for %s", symbol)
	}
	i := m.calls[symbol]
	if i >= len(script) {
		i = len(script) - 1
	}
	m.calls[symbol]++
	if script[i] == 0 {
		return 0, errors.Newf(errors.ErrCodeQuoteUnavailable, "scripted gap for %s", symbol)
	}
	return script[i], nil
}

// Collector fetches quotes and feeds them into the price buffer.
type Collector struct {
	Source QuoteSource
	Buffer *PriceBuffer
}

// NewCollector creates a new Collector.
func NewCollector(source QuoteSource, buffer *PriceBuffer) *Collector {
	return &Collector{Source: source, Buffer: buffer}
}

// Quote fetches the last price without touching the buffer.
func (c *Collector) Quote(ctx context.Context, token, symbol string) (float64, error) {
	price, err := c.Source.LastPrice(ctx, token, symbol)
	if err != nil {
		if errors.GetCode(err) == errors.ErrCodeUnknown {
			return 0, errors.Wrapf(errors.ErrCodeQuoteUnavailable, err, "%s quote for %s", c.Source.Name(), symbol)
		}
		return 0, err
	}
	return price, nil
}

// Sample fetches the last price and appends it to the symbol's window.
// On any failure the window is left untouched.
func (c *Collector) Sample(ctx context.Context, token, symbol string, at time.Time) (float64, error) {
	price, err := c.Quote(ctx, token, symbol)
	if err != nil {
		return 0, err
	}
	if err := c.Buffer.Push(symbol, price, at); err != nil {
		return 0, fmt.Errorf("sample %s: %w", symbol, err)
	}
	return price, nil
}
