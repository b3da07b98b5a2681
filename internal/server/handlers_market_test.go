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

func TestMarketQuote(t *testing.T) {
	srv, storage := newTestServer(t)

	require.NoError(t, storage.QuoteStore().SaveQuote(context.Background(), &models.Quote{
		Symbol: "AAPL", Price: 160.5, UpdatedAt: time.Now().UTC(),
	}))

	rec := doRequest(t, srv, http.MethodGet, "/api/market/quote/AAPL", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "AAPL", body["symbol"])
	assert.Equal(t, 160.5, body["price"])
}

func TestMarketQuote_Unknown(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/market/quote/GHOST", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarketQuotes(t *testing.T) {
	srv, storage := newTestServer(t)
	ctx := context.Background()

	for _, sym := range []string{"AAPL", "MSFT"} {
		require.NoError(t, storage.QuoteStore().SaveQuote(ctx, &models.Quote{
			Symbol: sym, Price: 100, UpdatedAt: time.Now().UTC(),
		}))
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/market/quotes?symbols=AAPL,MSFT,GHOST", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])
}

func TestMarketQuotes_MissingParam(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/market/quotes", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketMock(t *testing.T) {
	srv, storage := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/market/mock", "", map[string]interface{}{
		"symbols": []string{"AAPL", "MSFT"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.GreaterOrEqual(t, body["trades_seeded"].(float64), float64(2))

	trades, err := storage.TradeStore().ListTrades(context.Background(), "default")
	require.NoError(t, err)
	assert.NotEmpty(t, trades)
}

func TestMarketMock_DefaultSymbols(t *testing.T) {
	srv, storage := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/market/mock", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	quotes, err := storage.QuoteStore().ListQuotes(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, quotes)
}
