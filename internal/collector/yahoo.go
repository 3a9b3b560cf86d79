package collector

import (
	"context"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"BreakoutTrader/internal/errors"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher reads delayed quotes from the public chart API. It needs no
// token, which makes it the fallback source for paper runs.
type YahooFetcher struct {
	BaseURL   string
	client    *resty.Client
	SymbolMap map[string]string // internal symbol -> Yahoo ticker
}

// NewYahooFetcher creates a fetcher, optionally routed through proxyURL.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	client := resty.New().
		SetTimeout(15*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		BaseURL:   yahooBaseURL,
		client:    client,
		SymbolMap: map[string]string{},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) ticker(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// LastPrice returns the live regular-market price, falling back to the newest
// non-null one-minute close.
func (f *YahooFetcher) LastPrice(ctx context.Context, _ string, symbol string) (float64, error) {
	var chart yahooChart
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"interval": "1m", "range": "1d"}).
		SetResult(&chart).
		ForceContentType("application/json").
		Get(f.BaseURL + "/v8/finance/chart/" + url.PathEscape(f.ticker(symbol)))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQuoteUnavailable, "yahoo fetch", err)
	}
	if resp.IsError() {
		return 0, errors.Newf(errors.ErrCodeQuoteUnavailable, "yahoo: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if chart.Chart.Error != nil {
		return 0, errors.Newf(errors.ErrCodeQuoteUnavailable, "yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return 0, errors.New(errors.ErrCodeQuoteUnavailable, "yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if result.Meta.RegularMarketPrice > 0 {
		return result.Meta.RegularMarketPrice, nil
	}
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if c := closes[i]; c != nil && *c > 0 {
				return *c, nil
			}
		}
	}
	return 0, errors.Newf(errors.ErrCodeQuoteUnavailable, "yahoo: no price for %s", symbol)
}
