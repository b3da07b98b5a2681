// Package journal manages the append-only trade journal.
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
)

// Service implements JournalService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new journal service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// RecordTrade validates and persists a trade. The symbol is uppercased and
// the execution time defaults to now when absent.
func (s *Service) RecordTrade(ctx context.Context, trade *models.Trade) (*models.Trade, error) {
	trade.Symbol = strings.ToUpper(strings.TrimSpace(trade.Symbol))
	if trade.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if trade.Action != models.ActionBuy && trade.Action != models.ActionSell {
		return nil, fmt.Errorf("action must be BUY or SELL")
	}
	if trade.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if trade.Price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}
	if trade.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	now := time.Now().UTC()
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	if trade.ExecutedAt.IsZero() {
		trade.ExecutedAt = now
	}
	trade.CreatedAt = now

	if err := s.storage.TradeStore().SaveTrade(ctx, trade); err != nil {
		return nil, fmt.Errorf("failed to save trade: %w", err)
	}

	s.logger.Info().
		Str("user_id", trade.UserID).
		Str("symbol", trade.Symbol).
		Str("action", string(trade.Action)).
		Float64("quantity", trade.Quantity).
		Float64("price", trade.Price).
		Msg("Trade recorded")

	return trade, nil
}

// ListTrades returns a user's trades, newest first.
func (s *Service) ListTrades(ctx context.Context, userID string, opts interfaces.TradeListOptions) ([]*models.Trade, error) {
	var trades []*models.Trade
	var err error

	if opts.Symbol != "" {
		trades, err = s.storage.TradeStore().ListTradesBySymbol(ctx, userID, strings.ToUpper(opts.Symbol))
	} else {
		trades, err = s.storage.TradeStore().ListTrades(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	// Stores return chronological order for the engine; the journal view
	// wants the most recent entries first.
	for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
		trades[i], trades[j] = trades[j], trades[i]
	}

	if opts.Limit > 0 && len(trades) > opts.Limit {
		trades = trades[:opts.Limit]
	}
	return trades, nil
}

// DeleteTrade removes a trade after verifying ownership.
func (s *Service) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	trade, err := s.storage.TradeStore().GetTrade(ctx, tradeID)
	if err != nil {
		return fmt.Errorf("trade not found: %w", err)
	}
	if trade.UserID != userID {
		return fmt.Errorf("trade does not belong to user")
	}

	if err := s.storage.TradeStore().DeleteTrade(ctx, tradeID); err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("trade_id", tradeID).Msg("Trade deleted")
	return nil
}

// Compile-time check
var _ interfaces.JournalService = (*Service)(nil)
