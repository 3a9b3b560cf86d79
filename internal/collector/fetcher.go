package collector

import "context"

// QuoteSource fetches the latest traded price for a symbol.
// The token is the broker access token; sources that do not need one ignore it.
type QuoteSource interface {
	LastPrice(ctx context.Context, token, symbol string) (float64, error)
	Name() string
}
