package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/models"
	"github.com/sjcallan/paperdesk/internal/services/portfolio"
	tcommon "github.com/sjcallan/paperdesk/tests/common"
)

func newTestService(t *testing.T, gemini *tcommon.MockGeminiClient) (*Service, *tcommon.MemoryStorage) {
	t.Helper()
	storage := tcommon.NewMemoryStorage()
	pf := portfolio.NewService(storage, 100000, common.NewSilentLogger())
	if gemini == nil {
		return NewService(pf, nil, common.NewSilentLogger()), storage
	}
	return NewService(pf, gemini, common.NewSilentLogger()), storage
}

func TestChat_EmptyMessage(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Chat(context.Background(), "u1", &models.ChatRequest{Message: "  "})
	require.Error(t, err)
}

func TestChat_PanelRouting(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	tests := []struct {
		message string
		panel   string
	}{
		{"show me my positions", "portfolio"},
		{"what did I trade last week", "journal"},
		{"set an alert on AAPL", "alerts"},
		{"what's the price of NVDA", "market"},
		{"hello there", ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			reply, err := svc.Chat(ctx, "u1", &models.ChatRequest{Message: tt.message})
			require.NoError(t, err)
			assert.Equal(t, tt.panel, reply.OpenPanel)
			assert.NotEmpty(t, reply.Message)
		})
	}
}

func TestChat_PromptCarriesPortfolioContext(t *testing.T) {
	gemini := &tcommon.MockGeminiClient{Response: "You hold 100 shares of AAPL."}
	svc, storage := newTestService(t, gemini)
	ctx := context.Background()

	require.NoError(t, storage.TradeStore().SaveTrade(ctx, &models.Trade{
		ID: "t1", UserID: "u1", Symbol: "AAPL", Action: models.ActionBuy,
		Quantity: 100, Price: 150, ExecutedAt: time.Now().UTC(),
	}))

	reply, err := svc.Chat(ctx, "u1", &models.ChatRequest{Message: "how is my portfolio doing"})
	require.NoError(t, err)
	assert.Equal(t, "You hold 100 shares of AAPL.", reply.Message)
	assert.Equal(t, "portfolio", reply.OpenPanel)

	require.Len(t, gemini.Prompts, 1)
	assert.Contains(t, gemini.Prompts[0], "AAPL")
	assert.Contains(t, gemini.Prompts[0], "how is my portfolio doing")
}

func TestChat_GenerationFailureFallsBack(t *testing.T) {
	gemini := &tcommon.MockGeminiClient{Err: errors.New("quota exceeded")}
	svc, _ := newTestService(t, gemini)

	reply, err := svc.Chat(context.Background(), "u1", &models.ChatRequest{Message: "show my positions"})
	require.NoError(t, err)
	assert.NotEmpty(t, reply.Message)
	assert.Equal(t, "portfolio", reply.OpenPanel)
}
