package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjcallan/paperdesk/internal/models"
)

func TestTradeCreate(t *testing.T) {
	srv, storage := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/trades", "", map[string]interface{}{
		"symbol": "aapl", "action": "BUY", "quantity": 100, "price": 150.25,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "AAPL", body["symbol"])
	assert.NotEmpty(t, body["id"])

	trades, err := storage.TradeStore().ListTrades(context.Background(), "default")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, 150.25, trades[0].Price)
}

func TestTradeCreate_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing symbol", map[string]interface{}{"action": "BUY", "quantity": 1, "price": 1}},
		{"bad action", map[string]interface{}{"symbol": "AAPL", "action": "HOLD", "quantity": 1, "price": 1}},
		{"zero quantity", map[string]interface{}{"symbol": "AAPL", "action": "BUY", "quantity": 0, "price": 1}},
		{"negative price", map[string]interface{}{"symbol": "AAPL", "action": "BUY", "quantity": 1, "price": -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/trades", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestTradeCreate_RejectsMalformedJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/trades", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTradeList(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, sym := range []string{"AAPL", "MSFT", "NVDA"} {
		rec := doRequest(t, srv, http.MethodPost, "/api/trades", "", map[string]interface{}{
			"symbol": sym, "action": "BUY", "quantity": 1, "price": 1,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/trades", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["count"])
}

func TestTradeList_SymbolFilterAndLimit(t *testing.T) {
	srv, storage := newTestServer(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		require.NoError(t, storage.TradeStore().SaveTrade(ctx, &models.Trade{
			ID: string(rune('a' + i)), UserID: "default", Symbol: "AAPL",
			Action: models.ActionBuy, Quantity: 1, Price: 1,
			ExecutedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, storage.TradeStore().SaveTrade(ctx, &models.Trade{
		ID: "other", UserID: "default", Symbol: "MSFT",
		Action: models.ActionBuy, Quantity: 1, Price: 1, ExecutedAt: base,
	}))

	rec := doRequest(t, srv, http.MethodGet, "/api/trades?symbol=AAPL&limit=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])

	rec = doRequest(t, srv, http.MethodGet, "/api/trades?limit=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTradeDelete(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/trades", "", map[string]interface{}{
		"symbol": "AAPL", "action": "BUY", "quantity": 1, "price": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	tradeID := decodeBody(t, rec)["id"].(string)

	rec = doRequest(t, srv, http.MethodDelete, "/api/trades/"+tradeID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/trades/"+tradeID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTradeDelete_WrongUserForbidden(t *testing.T) {
	srv, _ := newTestServer(t)
	aliceToken := registerUser(t, srv, "alice", "pw1")

	rec := doRequest(t, srv, http.MethodPost, "/api/trades", aliceToken, map[string]interface{}{
		"symbol": "AAPL", "action": "BUY", "quantity": 1, "price": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	tradeID := decodeBody(t, rec)["id"].(string)

	// Unauthenticated request runs as "default" and must not delete alice's trade.
	rec = doRequest(t, srv, http.MethodDelete, "/api/trades/"+tradeID, "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTrades_MethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPut, "/api/trades", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Allow"))
}
