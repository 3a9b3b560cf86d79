package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeQuoteUnavailable, "no quote")
	assert.Equal(t, "[200] no quote", err.Error())

	cause := stderrors.New("timeout")
	wrapped := Wrapf(ErrCodeOrderAmbiguous, cause, "submit %s", "RGTI")
	assert.Equal(t, "[401] submit RGTI: timeout", wrapped.Error())
	assert.True(t, Is(wrapped, cause))
}

func TestGetCodeThroughChain(t *testing.T) {
	inner := Newf(ErrCodePositionNotFlat, "symbol %s already long", "QBTS")
	outer := fmt.Errorf("open: %w", inner)

	assert.Equal(t, ErrCodePositionNotFlat, GetCode(outer))
	assert.True(t, HasCode(outer, ErrCodePositionNotFlat))
	assert.True(t, IsLedgerInvariant(outer))
	assert.False(t, IsLedgerInvariant(New(ErrCodeOrderRejected, "rejected")))
	assert.Equal(t, ErrCodeUnknown, GetCode(stderrors.New("plain")))
}
