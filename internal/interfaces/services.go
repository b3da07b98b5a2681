// Package interfaces defines service contracts for Paperdesk
package interfaces

import (
	"context"

	"github.com/sjcallan/paperdesk/internal/models"
)

// PortfolioService derives portfolio state from the trade journal.
type PortfolioService interface {
	// GetPositions rebuilds positions from the user's trades, marked to
	// market with whatever quotes are cached.
	GetPositions(ctx context.Context, userID string) ([]*models.Position, error)

	// GetSummary computes aggregate account metrics for the user.
	GetSummary(ctx context.Context, userID string) (*models.PortfolioSummary, error)

	// RenderAllocationChart renders a PNG donut of position weights.
	RenderAllocationChart(ctx context.Context, userID string) ([]byte, error)
}

// JournalService manages the trade journal.
type JournalService interface {
	// RecordTrade validates and persists a trade.
	RecordTrade(ctx context.Context, trade *models.Trade) (*models.Trade, error)

	// ListTrades returns a user's trades, newest first.
	ListTrades(ctx context.Context, userID string, opts TradeListOptions) ([]*models.Trade, error)

	DeleteTrade(ctx context.Context, userID, tradeID string) error
}

// TradeListOptions configures filtering for journal queries.
type TradeListOptions struct {
	Symbol string
	Limit  int
}

// AlertService manages price alerts and their evaluation.
type AlertService interface {
	CreateAlert(ctx context.Context, alert *models.PriceAlert) (*models.PriceAlert, error)
	ListAlerts(ctx context.Context, userID string) ([]*models.PriceAlert, error)
	DeleteAlert(ctx context.Context, userID, alertID string) error

	// EvaluateAlerts checks pending alerts against the latest quotes and
	// returns the alerts that fired.
	EvaluateAlerts(ctx context.Context) ([]*models.PriceAlert, error)
}

// MarketService handles quote retrieval and caching.
type MarketService interface {
	// GetQuote returns the quote for a symbol, refreshing from the feed
	// when the cached copy is stale or absent.
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetQuotes returns quotes for several symbols at once.
	GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error)

	// SeedMockData generates synthetic quotes and trades for demo accounts.
	SeedMockData(ctx context.Context, userID string, symbols []string) (int, error)
}

// AssistantService answers dashboard chat messages.
type AssistantService interface {
	Chat(ctx context.Context, userID string, req *models.ChatRequest) (*models.ChatReply, error)
}
