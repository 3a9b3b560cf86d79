package gateway

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

// Paper accepts every well-formed order and tracks the positions it implies.
type Paper struct {
	mu        sync.Mutex
	positions map[string]BrokerPosition
	orders    []model.Order
	logger    *zap.Logger
}

// NewPaper returns an empty paper account.
func NewPaper(logger *zap.Logger) *Paper {
	return &Paper{positions: make(map[string]BrokerPosition), logger: logger}
}

func (p *Paper) SubmitMarketOrder(_ context.Context, _ model.Credentials, order model.Order) error {
	if order.Quantity <= 0 {
		return errors.Newf(errors.ErrCodeOrderRejected, "quantity must be positive, got %d", order.Quantity)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pos := p.positions[order.Symbol]
	pos.Symbol = order.Symbol
	switch order.Instruction {
	case model.InstructionBuy:
		pos.Long += order.Quantity
	case model.InstructionSell:
		if pos.Long < order.Quantity {
			return errors.Newf(errors.ErrCodeOrderRejected, "sell %d %s exceeds held %d", order.Quantity, order.Symbol, pos.Long)
		}
		pos.Long -= order.Quantity
	case model.InstructionSellShort:
		pos.Short += order.Quantity
	case model.InstructionBuyToCover:
		if pos.Short < order.Quantity {
			return errors.Newf(errors.ErrCodeOrderRejected, "cover %d %s exceeds borrowed %d", order.Quantity, order.Symbol, pos.Short)
		}
		pos.Short -= order.Quantity
	default:
		return errors.Newf(errors.ErrCodeOrderRejected, "unknown instruction %q", order.Instruction)
	}
	p.positions[order.Symbol] = pos
	p.orders = append(p.orders, order)

	p.logger.Info("paper order filled",
		zap.String("order_id", order.ID.String()),
		zap.String("symbol", order.Symbol),
		zap.String("instruction", string(order.Instruction)),
		zap.Int64("quantity", order.Quantity))
	return nil
}

func (p *Paper) Positions(_ context.Context, _ model.Credentials, symbols []string) (map[string]BrokerPosition, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]BrokerPosition, len(symbols))
	for _, s := range symbols {
		pos := p.positions[s]
		pos.Symbol = s
		out[s] = pos
	}
	return out, nil
}

// Orders returns the accepted orders in submission order.
func (p *Paper) Orders() []model.Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Order(nil), p.orders...)
}
