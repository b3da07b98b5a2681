package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
	tcommon "github.com/sjcallan/paperdesk/tests/common"
)

func newTestService(t *testing.T) (*Service, *tcommon.MemoryStorage) {
	t.Helper()
	storage := tcommon.NewMemoryStorage()
	return NewService(storage, common.NewSilentLogger()), storage
}

func TestRecordTrade(t *testing.T) {
	svc, _ := newTestService(t)

	trade, err := svc.RecordTrade(context.Background(), &models.Trade{
		UserID:   "u1",
		Symbol:   " aapl ",
		Action:   models.ActionBuy,
		Quantity: 100,
		Price:    150,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, trade.ID)
	assert.Equal(t, "AAPL", trade.Symbol)
	assert.False(t, trade.ExecutedAt.IsZero())
	assert.False(t, trade.CreatedAt.IsZero())
}

func TestRecordTrade_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		trade *models.Trade
	}{
		{"missing symbol", &models.Trade{UserID: "u1", Action: models.ActionBuy, Quantity: 1, Price: 1}},
		{"bad action", &models.Trade{UserID: "u1", Symbol: "AAPL", Action: "HOLD", Quantity: 1, Price: 1}},
		{"zero quantity", &models.Trade{UserID: "u1", Symbol: "AAPL", Action: models.ActionBuy, Quantity: 0, Price: 1}},
		{"negative price", &models.Trade{UserID: "u1", Symbol: "AAPL", Action: models.ActionBuy, Quantity: 1, Price: -5}},
		{"missing user", &models.Trade{Symbol: "AAPL", Action: models.ActionBuy, Quantity: 1, Price: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordTrade(ctx, tt.trade)
			assert.Error(t, err)
		})
	}
}

func TestListTrades_NewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, sym := range []string{"AAPL", "MSFT", "NVDA"} {
		_, err := svc.RecordTrade(ctx, &models.Trade{
			UserID: "u1", Symbol: sym, Action: models.ActionBuy,
			Quantity: 1, Price: 1, ExecutedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	trades, err := svc.ListTrades(ctx, "u1", interfaces.TradeListOptions{})
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.Equal(t, "NVDA", trades[0].Symbol)
	assert.Equal(t, "AAPL", trades[2].Symbol)
}

func TestListTrades_SymbolFilterAndLimit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_, err := svc.RecordTrade(ctx, &models.Trade{
			UserID: "u1", Symbol: "AAPL", Action: models.ActionBuy,
			Quantity: 1, Price: 1, ExecutedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := svc.RecordTrade(ctx, &models.Trade{
		UserID: "u1", Symbol: "MSFT", Action: models.ActionBuy,
		Quantity: 1, Price: 1, ExecutedAt: base,
	})
	require.NoError(t, err)

	trades, err := svc.ListTrades(ctx, "u1", interfaces.TradeListOptions{Symbol: "aapl", Limit: 3})
	require.NoError(t, err)
	assert.Len(t, trades, 3)
	for _, tr := range trades {
		assert.Equal(t, "AAPL", tr.Symbol)
	}
}

func TestDeleteTrade(t *testing.T) {
	svc, storage := newTestService(t)
	ctx := context.Background()

	trade, err := svc.RecordTrade(ctx, &models.Trade{
		UserID: "u1", Symbol: "AAPL", Action: models.ActionBuy, Quantity: 1, Price: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTrade(ctx, "u1", trade.ID))

	_, err = storage.TradeStore().GetTrade(ctx, trade.ID)
	assert.Error(t, err)
}

func TestDeleteTrade_WrongUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	trade, err := svc.RecordTrade(ctx, &models.Trade{
		UserID: "u1", Symbol: "AAPL", Action: models.ActionBuy, Quantity: 1, Price: 1,
	})
	require.NoError(t, err)

	err = svc.DeleteTrade(ctx, "intruder", trade.ID)
	assert.Error(t, err)
}

func TestDeleteTrade_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.DeleteTrade(context.Background(), "u1", "ghost")
	assert.Error(t, err)
}
