package collector

import (
	"context"
	"fmt"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"BreakoutTrader/internal/errors"
)

// PolygonFetcher implements QuoteSource using the Polygon last-trade endpoint.
type PolygonFetcher struct {
	client *polygon.Client
}

// NewPolygonFetcher creates a fetcher authenticated with apiKey.
func NewPolygonFetcher(apiKey string) (*PolygonFetcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("polygon api key is required")
	}
	return &PolygonFetcher{client: polygon.New(apiKey)}, nil
}

func (f *PolygonFetcher) Name() string { return "polygon" }

func (f *PolygonFetcher) LastPrice(ctx context.Context, _ string, symbol string) (float64, error) {
	res, err := f.client.GetLastTrade(ctx, &models.GetLastTradeParams{Ticker: symbol})
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeQuoteUnavailable, err, "polygon last trade %s", symbol)
	}
	if res == nil || res.Results.Price <= 0 {
		return 0, errors.Newf(errors.ErrCodeQuoteUnavailable, "polygon: no trade for %s", symbol)
	}
	return res.Results.Price, nil
}
