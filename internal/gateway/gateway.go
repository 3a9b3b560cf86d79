// Package gateway defines the broker-facing collaborators of the trade loop
// and a paper implementation for dry runs.
package gateway

import (
	"context"
	"time"

	"BreakoutTrader/internal/model"
)

// OrderGateway submits market orders. A nil error means the broker accepted
// the order. Any error, including a timeout, means the caller must assume the
// order did not go through; implementations never retry a submission.
type OrderGateway interface {
	SubmitMarketOrder(ctx context.Context, creds model.Credentials, order model.Order) error
}

// MarketHours returns the session table for a trading date.
type MarketHours interface {
	SessionHours(ctx context.Context, token string, date time.Time) (model.MarketHours, error)
}

// BrokerPosition is the share count the broker reports for a symbol.
type BrokerPosition struct {
	Symbol string
	Long   int64
	Short  int64
}

// PositionReporter is implemented by gateways that can list account positions.
type PositionReporter interface {
	Positions(ctx context.Context, creds model.Credentials, symbols []string) (map[string]BrokerPosition, error)
}
