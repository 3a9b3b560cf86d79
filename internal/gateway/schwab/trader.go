package schwab

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/gateway"
	"BreakoutTrader/internal/model"
)

type accountNumber struct {
	AccountNumber string `json:"accountNumber"`
	HashValue     string `json:"hashValue"`
}

type orderInstrument struct {
	Symbol    string `json:"symbol"`
	AssetType string `json:"assetType"`
}

type orderLeg struct {
	Instruction string          `json:"instruction"`
	Quantity    int64           `json:"quantity"`
	Instrument  orderInstrument `json:"instrument"`
}

type orderRequest struct {
	OrderType          string     `json:"orderType"`
	Session            string     `json:"session"`
	Duration           string     `json:"duration"`
	OrderStrategyType  string     `json:"orderStrategyType"`
	OrderLegCollection []orderLeg `json:"orderLegCollection"`
}

type accountPositions struct {
	SecuritiesAccount struct {
		Positions []struct {
			LongQuantity  float64 `json:"longQuantity"`
			ShortQuantity float64 `json:"shortQuantity"`
			Instrument    struct {
				Symbol string `json:"symbol"`
			} `json:"instrument"`
		} `json:"positions"`
	} `json:"securitiesAccount"`
}

// ResolveAccountID maps the plain account number to its hash. When no entry
// matches, the first linked account is used.
func (c *Client) ResolveAccountID(ctx context.Context, token, number string) (string, error) {
	req, err := c.read(ctx, token)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeAccountUnresolved, "rate limit wait", err)
	}

	var out []accountNumber
	resp, err := req.SetResult(&out).Get("/trader/v1/accounts/accountNumbers")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeAccountUnresolved, "account numbers", err)
	}
	if !resp.IsSuccess() {
		return "", errors.Newf(errors.ErrCodeAccountUnresolved, "account numbers: status %d", resp.StatusCode())
	}
	if len(out) == 0 {
		return "", errors.New(errors.ErrCodeAccountUnresolved, "no linked accounts")
	}
	for _, a := range out {
		if number != "" && a.AccountNumber == number {
			return a.HashValue, nil
		}
	}
	return out[0].HashValue, nil
}

// SubmitMarketOrder places a single-leg DAY market order. It is sent once:
// transport errors and server errors are reported as ambiguous.
func (c *Client) SubmitMarketOrder(ctx context.Context, creds model.Credentials, order model.Order) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeOrderRejected, "rate limit wait", err)
	}

	body := orderRequest{
		OrderType:         "MARKET",
		Session:           "NORMAL",
		Duration:          "DAY",
		OrderStrategyType: "SINGLE",
		OrderLegCollection: []orderLeg{{
			Instruction: string(order.Instruction),
			Quantity:    order.Quantity,
			Instrument:  orderInstrument{Symbol: order.Symbol, AssetType: "EQUITY"},
		}},
	}

	resp, err := c.orders.R().
		SetContext(ctx).
		SetAuthToken(creds.AccessToken).
		SetPathParam("account", creds.AccountID).
		SetBody(body).
		Post("/trader/v1/accounts/{account}/orders")
	if err != nil {
		return errors.Wrapf(errors.ErrCodeOrderAmbiguous, err, "%s %d %s", order.Instruction, order.Quantity, order.Symbol)
	}
	if resp.IsSuccess() {
		c.logger.Info("order accepted",
			zap.String("order_id", order.ID.String()),
			zap.String("symbol", order.Symbol),
			zap.String("instruction", string(order.Instruction)),
			zap.Int64("quantity", order.Quantity),
			zap.String("location", resp.Header().Get("Location")))
		return nil
	}

	code := errors.ErrCodeOrderRejected
	if resp.StatusCode() >= http.StatusInternalServerError || resp.StatusCode() == http.StatusRequestTimeout {
		code = errors.ErrCodeOrderAmbiguous
	}
	return errors.Newf(code, "%s %d %s: status %d: %s",
		order.Instruction, order.Quantity, order.Symbol, resp.StatusCode(), resp.String())
}

// Positions lists long and short share counts for symbols.
// Symbols without a broker position are reported flat.
func (c *Client) Positions(ctx context.Context, creds model.Credentials, symbols []string) (map[string]gateway.BrokerPosition, error) {
	req, err := c.read(ctx, creds.AccessToken)
	if err != nil {
		return nil, err
	}

	var out accountPositions
	resp, err := req.
		SetPathParam("account", creds.AccountID).
		SetQueryParam("fields", "positions").
		SetResult(&out).
		Get("/trader/v1/accounts/{account}")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAccountUnresolved, "account positions", err)
	}
	if !resp.IsSuccess() {
		return nil, errors.Newf(errors.ErrCodeAccountUnresolved, "account positions: status %d", resp.StatusCode())
	}

	result := make(map[string]gateway.BrokerPosition, len(symbols))
	for _, s := range symbols {
		result[s] = gateway.BrokerPosition{Symbol: s}
	}
	for _, p := range out.SecuritiesAccount.Positions {
		bp, ok := result[p.Instrument.Symbol]
		if !ok {
			continue
		}
		bp.Long += int64(p.LongQuantity)
		bp.Short += int64(p.ShortQuantity)
		result[p.Instrument.Symbol] = bp
	}
	return result, nil
}
