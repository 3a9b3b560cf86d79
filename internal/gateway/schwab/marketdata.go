package schwab

import (
	"context"
	"time"

	"go.uber.org/zap"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

type quoteEntry struct {
	Quote struct {
		LastPrice float64 `json:"lastPrice"`
	} `json:"quote"`
}

type sessionWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type marketEntry struct {
	Date         string                     `json:"date"`
	MarketType   string                     `json:"marketType"`
	IsOpen       bool                       `json:"isOpen"`
	SessionHours map[string][]sessionWindow `json:"sessionHours"`
}

// Name identifies the quote source in logs.
func (c *Client) Name() string { return "schwab" }

// LastPrice returns the last traded price for symbol.
func (c *Client) LastPrice(ctx context.Context, token, symbol string) (float64, error) {
	req, err := c.read(ctx, token)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQuoteUnavailable, "rate limit wait", err)
	}

	var out map[string]quoteEntry
	resp, err := req.
		SetQueryParam("symbols", symbol).
		SetQueryParam("fields", "quote").
		SetResult(&out).
		Get("/marketdata/v1/quotes")
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeQuoteUnavailable, err, "quote %s", symbol)
	}
	if !resp.IsSuccess() {
		return 0, errors.Newf(errors.ErrCodeQuoteUnavailable, "quote %s: status %d", symbol, resp.StatusCode())
	}
	entry, ok := out[symbol]
	if !ok || entry.Quote.LastPrice <= 0 {
		return 0, errors.Newf(errors.ErrCodeQuoteUnavailable, "no last price for %s", symbol)
	}
	c.logger.Debug("quote", zap.String("symbol", symbol), zap.Float64("price", entry.Quote.LastPrice))
	return entry.Quote.LastPrice, nil
}

// SessionHours fetches the equity session table for the market-local day
// containing date. A response without session hours is a closed day.
func (c *Client) SessionHours(ctx context.Context, token string, date time.Time) (model.MarketHours, error) {
	date = date.In(c.loc)
	req, err := c.read(ctx, token)
	if err != nil {
		return model.MarketHours{}, errors.Wrap(errors.ErrCodeMarketHoursUnavailable, "rate limit wait", err)
	}

	var out map[string]map[string]marketEntry
	resp, err := req.
		SetQueryParam("date", date.Format("2006-01-02")).
		SetResult(&out).
		Get("/marketdata/v1/markets/equity")
	if err != nil {
		return model.MarketHours{}, errors.Wrap(errors.ErrCodeMarketHoursUnavailable, "market hours", err)
	}
	if !resp.IsSuccess() {
		return model.MarketHours{}, errors.Newf(errors.ErrCodeMarketHoursUnavailable, "market hours: status %d", resp.StatusCode())
	}
	return parseMarketHours(out, date)
}

func parseMarketHours(out map[string]map[string]marketEntry, date time.Time) (model.MarketHours, error) {
	hours := model.MarketHours{Date: date, Sessions: map[model.SessionType][]model.Interval{}}

	products, ok := out["equity"]
	if !ok {
		return hours, errors.New(errors.ErrCodeSessionParseFailed, "market hours response has no equity entry")
	}
	entry, ok := products["EQ"]
	if !ok {
		for _, e := range products {
			entry = e
			break
		}
	}

	for _, st := range model.SessionOrder {
		for _, w := range entry.SessionHours[string(st)] {
			start, err := time.Parse(time.RFC3339, w.Start)
			if err != nil {
				return hours, errors.Wrapf(errors.ErrCodeSessionParseFailed, err, "%s start", st)
			}
			end, err := time.Parse(time.RFC3339, w.End)
			if err != nil {
				return hours, errors.Wrapf(errors.ErrCodeSessionParseFailed, err, "%s end", st)
			}
			hours.Sessions[st] = append(hours.Sessions[st], model.Interval{Start: start, End: end})
		}
	}
	return hours, nil
}
