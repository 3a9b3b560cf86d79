package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSQLiteRecorderJournalsOrders(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "journal.db"), zap.NewNop())
	require.NoError(t, err)
	defer r.Close()

	ctx := context.Background()
	now := time.Date(2025, 2, 18, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.RecordOrder(ctx, OrderEvent{
		OrderID: "a", Time: now, Symbol: "RGTI", Instruction: "BUY", Quantity: 10,
		Price: 12.5, Reason: "ENTRY", Accepted: true, AvailableCapital: 3875, CapitalUsed: 125,
	}))
	require.NoError(t, r.RecordOrder(ctx, OrderEvent{
		OrderID: "b", Time: now, Symbol: "RGTI", Instruction: "SELL", Quantity: 10,
		Price: 12.1, Reason: "EXIT", Accepted: false, Error: "rejected",
	}))
	require.NoError(t, r.RecordLiquidation(ctx, LiquidationEvent{Time: now, Closed: 1}))
	require.NoError(t, r.Optimize(ctx))

	n, err := r.CountOrders(ctx, "RGTI")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.CountOrders(ctx, "QBTS")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordOrder(context.Background(), OrderEvent{}))
	assert.NoError(t, r.RecordLiquidation(context.Background(), LiquidationEvent{}))
	assert.NoError(t, r.Close())
}
