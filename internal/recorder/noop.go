package recorder

import "context"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordOrder(context.Context, OrderEvent) error             { return nil }
func (n *NoopRecorder) RecordLiquidation(context.Context, LiquidationEvent) error { return nil }
func (n *NoopRecorder) Close() error                                              { return nil }
