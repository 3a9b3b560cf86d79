package schwab

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		RetryCount: 2,
		RetryWait:  time.Millisecond,
	}, zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLastPrice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/marketdata/v1/quotes", r.URL.Path)
		assert.Equal(t, "RGTI", r.URL.Query().Get("symbols"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"RGTI": map[string]any{"quote": map[string]any{"lastPrice": 12.34}},
		})
	})

	price, err := c.LastPrice(context.Background(), "tok", "RGTI")
	require.NoError(t, err)
	assert.Equal(t, 12.34, price)
}

func TestLastPriceMissingSymbol(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})

	_, err := c.LastPrice(context.Background(), "tok", "RGTI")
	assert.True(t, errors.HasCode(err, errors.ErrCodeQuoteUnavailable))
}

func TestReadsRetryServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"QBTS": map[string]any{"quote": map[string]any{"lastPrice": 7.5}},
		})
	})

	price, err := c.LastPrice(context.Background(), "tok", "QBTS")
	require.NoError(t, err)
	assert.Equal(t, 7.5, price)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSessionHours(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/marketdata/v1/markets/equity", r.URL.Path)
		assert.Equal(t, "2025-02-18", r.URL.Query().Get("date"))
		writeJSON(w, http.StatusOK, map[string]any{
			"equity": map[string]any{
				"EQ": map[string]any{
					"date":       "2025-02-18",
					"marketType": "EQUITY",
					"isOpen":     true,
					"sessionHours": map[string]any{
						"preMarket":     []any{map[string]string{"start": "2025-02-18T07:00:00-05:00", "end": "2025-02-18T09:30:00-05:00"}},
						"regularMarket": []any{map[string]string{"start": "2025-02-18T09:30:00-05:00", "end": "2025-02-18T16:00:00-05:00"}},
						"postMarket":    []any{map[string]string{"start": "2025-02-18T16:00:00-05:00", "end": "2025-02-18T20:00:00-05:00"}},
					},
				},
			},
		})
	})

	date := time.Date(2025, 2, 18, 12, 0, 0, 0, time.UTC)
	hours, err := c.SessionHours(context.Background(), "tok", date)
	require.NoError(t, err)

	regular, ok := hours.Regular()
	require.True(t, ok)
	assert.True(t, regular.End.Equal(time.Date(2025, 2, 18, 21, 0, 0, 0, time.UTC)))
	assert.Len(t, hours.Sessions[model.SessionPreMarket], 1)
}

func TestSessionHoursUsesMarketDate(t *testing.T) {
	var dates []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		dates = append(dates, r.URL.Query().Get("date"))
		writeJSON(w, http.StatusOK, map[string]any{"equity": map[string]any{}})
	})

	// 21:30 ET on the 18th is already the 19th in UTC.
	_, err := c.SessionHours(context.Background(), "tok", time.Date(2025, 2, 19, 2, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	// 08:00 in Tokyo on the 19th is still the 18th in New York.
	tokyo := time.FixedZone("JST", 9*60*60)
	_, err = c.SessionHours(context.Background(), "tok", time.Date(2025, 2, 19, 8, 0, 0, 0, tokyo))
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-02-18", "2025-02-18"}, dates)
}

func TestSessionHoursClosedDay(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"equity": map[string]any{
				"equity": map[string]any{"date": "2025-12-25", "marketType": "EQUITY", "isOpen": false},
			},
		})
	})

	hours, err := c.SessionHours(context.Background(), "tok", time.Date(2025, 12, 25, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, ok := hours.Regular()
	assert.False(t, ok)
}

func TestSessionHoursBadTimestamp(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"equity": map[string]any{
				"EQ": map[string]any{
					"sessionHours": map[string]any{
						"regularMarket": []any{map[string]string{"start": "09:30", "end": "16:00"}},
					},
				},
			},
		})
	})

	_, err := c.SessionHours(context.Background(), "tok", time.Now())
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionParseFailed))
}

func TestResolveAccountID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trader/v1/accounts/accountNumbers", r.URL.Path)
		writeJSON(w, http.StatusOK, []map[string]string{
			{"accountNumber": "1111", "hashValue": "HASH1"},
			{"accountNumber": "2222", "hashValue": "HASH2"},
		})
	})

	id, err := c.ResolveAccountID(context.Background(), "tok", "2222")
	require.NoError(t, err)
	assert.Equal(t, "HASH2", id)

	id, err = c.ResolveAccountID(context.Background(), "tok", "9999")
	require.NoError(t, err)
	assert.Equal(t, "HASH1", id)
}

func TestSubmitMarketOrder(t *testing.T) {
	var got orderRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/trader/v1/accounts/HASH/orders", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Location", "/trader/v1/accounts/HASH/orders/42")
		w.WriteHeader(http.StatusCreated)
	})

	order := model.NewOrder("RGTI", model.InstructionSellShort, 25)
	err := c.SubmitMarketOrder(context.Background(), model.Credentials{AccessToken: "tok", AccountID: "HASH"}, order)
	require.NoError(t, err)

	assert.Equal(t, "MARKET", got.OrderType)
	assert.Equal(t, "NORMAL", got.Session)
	assert.Equal(t, "DAY", got.Duration)
	require.Len(t, got.OrderLegCollection, 1)
	assert.Equal(t, "SELL_SHORT", got.OrderLegCollection[0].Instruction)
	assert.Equal(t, int64(25), got.OrderLegCollection[0].Quantity)
	assert.Equal(t, "EQUITY", got.OrderLegCollection[0].Instrument.AssetType)
}

func TestSubmitMarketOrderIsNeverRetried(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   errors.ErrorCode
	}{
		{"client error is a rejection", http.StatusBadRequest, errors.ErrCodeOrderRejected},
		{"server error is ambiguous", http.StatusInternalServerError, errors.ErrCodeOrderAmbiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			})

			err := c.SubmitMarketOrder(context.Background(), model.Credentials{AccessToken: "tok", AccountID: "HASH"},
				model.NewOrder("QBTS", model.InstructionBuy, 1))
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestPositions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trader/v1/accounts/HASH", r.URL.Path)
		assert.Equal(t, "positions", r.URL.Query().Get("fields"))
		writeJSON(w, http.StatusOK, map[string]any{
			"securitiesAccount": map[string]any{
				"positions": []any{
					map[string]any{"longQuantity": 10.0, "shortQuantity": 0.0, "instrument": map[string]any{"symbol": "RGTI"}},
					map[string]any{"longQuantity": 3.0, "instrument": map[string]any{"symbol": "AAPL"}},
				},
			},
		})
	})

	got, err := c.Positions(context.Background(), model.Credentials{AccessToken: "tok", AccountID: "HASH"}, []string{"RGTI", "QBTS"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got["RGTI"].Long)
	assert.Zero(t, got["QBTS"].Long)
	assert.NotContains(t, got, "AAPL")
}
