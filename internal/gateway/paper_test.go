package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

func TestPaperTracksRoundTrips(t *testing.T) {
	p := NewPaper(zap.NewNop())
	ctx := context.Background()
	creds := model.Credentials{AccessToken: "t", AccountID: "a"}

	require.NoError(t, p.SubmitMarketOrder(ctx, creds, model.NewOrder("RGTI", model.InstructionBuy, 10)))
	require.NoError(t, p.SubmitMarketOrder(ctx, creds, model.NewOrder("QBTS", model.InstructionSellShort, 5)))

	positions, err := p.Positions(ctx, creds, []string{"RGTI", "QBTS"})
	require.NoError(t, err)
	assert.Equal(t, BrokerPosition{Symbol: "RGTI", Long: 10}, positions["RGTI"])
	assert.Equal(t, BrokerPosition{Symbol: "QBTS", Short: 5}, positions["QBTS"])

	require.NoError(t, p.SubmitMarketOrder(ctx, creds, model.NewOrder("RGTI", model.InstructionSell, 10)))
	require.NoError(t, p.SubmitMarketOrder(ctx, creds, model.NewOrder("QBTS", model.InstructionBuyToCover, 5)))

	positions, err = p.Positions(ctx, creds, []string{"RGTI", "QBTS"})
	require.NoError(t, err)
	assert.Zero(t, positions["RGTI"].Long)
	assert.Zero(t, positions["QBTS"].Short)
	assert.Len(t, p.Orders(), 4)
}

func TestPaperRejectsOversell(t *testing.T) {
	p := NewPaper(zap.NewNop())

	err := p.SubmitMarketOrder(context.Background(), model.Credentials{}, model.NewOrder("RGTI", model.InstructionSell, 1))
	assert.True(t, errors.HasCode(err, errors.ErrCodeOrderRejected))
	assert.Empty(t, p.Orders())
}
