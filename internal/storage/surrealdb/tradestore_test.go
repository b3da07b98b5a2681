package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjcallan/paperdesk/internal/models"
)

func seedTrade(id, userID, symbol string, action models.TradeAction, qty, price float64, at time.Time) *models.Trade {
	return &models.Trade{
		ID:         id,
		UserID:     userID,
		Symbol:     symbol,
		Action:     action,
		Quantity:   qty,
		Price:      price,
		ExecutedAt: at,
		CreatedAt:  at,
	}
}

func TestSaveAndGetTrade(t *testing.T) {
	db := testDB(t)
	store := NewTradeStore(db, testLogger())
	ctx := context.Background()

	at := time.Now().UTC().Truncate(time.Second)
	trade := seedTrade("trade1", "u1", "AAPL", models.ActionBuy, 100, 150, at)
	trade.Notes = "first buy"
	trade.Tags = []string{"swing", "earnings"}
	require.NoError(t, store.SaveTrade(ctx, trade))

	got, err := store.GetTrade(ctx, "trade1")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, models.ActionBuy, got.Action)
	assert.Equal(t, 100.0, got.Quantity)
	assert.Equal(t, "first buy", got.Notes)
	assert.Equal(t, []string{"swing", "earnings"}, got.Tags)
}

func TestGetTradeNotFound(t *testing.T) {
	db := testDB(t)
	store := NewTradeStore(db, testLogger())

	_, err := store.GetTrade(context.Background(), "nope")
	require.Error(t, err)
}

func TestListTradesOrdered(t *testing.T) {
	db := testDB(t)
	store := NewTradeStore(db, testLogger())
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	// Saved out of order; listing must come back chronological.
	require.NoError(t, store.SaveTrade(ctx, seedTrade("t2", "u1", "AAPL", models.ActionSell, 50, 160, base.Add(2*time.Hour))))
	require.NoError(t, store.SaveTrade(ctx, seedTrade("t1", "u1", "AAPL", models.ActionBuy, 100, 150, base)))
	require.NoError(t, store.SaveTrade(ctx, seedTrade("t3", "u2", "MSFT", models.ActionBuy, 10, 300, base.Add(time.Hour))))

	trades, err := store.ListTrades(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "t1", trades[0].ID)
	assert.Equal(t, "t2", trades[1].ID)
}

func TestListTradesBySymbol(t *testing.T) {
	db := testDB(t)
	store := NewTradeStore(db, testLogger())
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.SaveTrade(ctx, seedTrade("s1", "u1", "AAPL", models.ActionBuy, 100, 150, base)))
	require.NoError(t, store.SaveTrade(ctx, seedTrade("s2", "u1", "MSFT", models.ActionBuy, 10, 300, base)))

	trades, err := store.ListTradesBySymbol(ctx, "u1", "AAPL")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "AAPL", trades[0].Symbol)
}

func TestListTradesEmpty(t *testing.T) {
	db := testDB(t)
	store := NewTradeStore(db, testLogger())

	trades, err := store.ListTrades(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestDeleteTrade(t *testing.T) {
	db := testDB(t)
	store := NewTradeStore(db, testLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveTrade(ctx, seedTrade("del1", "u1", "AAPL", models.ActionBuy, 1, 1, time.Now().UTC())))
	require.NoError(t, store.DeleteTrade(ctx, "del1"))

	_, err := store.GetTrade(ctx, "del1")
	assert.Error(t, err)
}

func TestDeleteUserTrades(t *testing.T) {
	db := testDB(t)
	store := NewTradeStore(db, testLogger())
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.SaveTrade(ctx, seedTrade("p1", "purge", "AAPL", models.ActionBuy, 1, 1, base)))
	require.NoError(t, store.SaveTrade(ctx, seedTrade("p2", "purge", "MSFT", models.ActionBuy, 1, 1, base)))
	require.NoError(t, store.SaveTrade(ctx, seedTrade("p3", "keep", "AAPL", models.ActionBuy, 1, 1, base)))

	count, err := store.DeleteUserTrades(ctx, "purge")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	remaining, err := store.ListTrades(ctx, "keep")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
