// Package portfolio derives positions and account metrics from the trade journal.
package portfolio

import (
	"context"
	"fmt"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
	"github.com/sjcallan/paperdesk/internal/positions"
)

// Service implements PortfolioService
type Service struct {
	storage      interfaces.StorageManager
	logger       *common.Logger
	startingCash float64
}

// NewService creates a new portfolio service
func NewService(storage interfaces.StorageManager, startingCash float64, logger *common.Logger) *Service {
	if startingCash <= 0 {
		startingCash = positions.DefaultStartingCash
	}
	return &Service{
		storage:      storage,
		logger:       logger,
		startingCash: startingCash,
	}
}

// GetPositions rebuilds positions from the user's trades and marks them to
// market with whatever quotes are cached. Missing quotes leave positions at
// cost basis rather than failing the request.
func (s *Service) GetPositions(ctx context.Context, userID string) ([]*models.Position, error) {
	trades, err := s.storage.TradeStore().ListTrades(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}

	history := make([]models.Trade, len(trades))
	for i, t := range trades {
		history[i] = *t
	}

	open := positions.Aggregate(history)
	if len(open) == 0 {
		return open, nil
	}

	symbols := make([]string, len(open))
	for i, p := range open {
		symbols[i] = p.Symbol
	}

	quotes, err := s.storage.QuoteStore().GetQuotes(ctx, symbols)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Quote lookup failed, serving positions at cost")
		return open, nil
	}

	return positions.MarkToMarket(open, models.PriceMap(quotes)), nil
}

// GetSummary computes aggregate account metrics for the user.
func (s *Service) GetSummary(ctx context.Context, userID string) (*models.PortfolioSummary, error) {
	marked, err := s.GetPositions(ctx, userID)
	if err != nil {
		return nil, err
	}

	startingCash := common.ResolveStartingCash(ctx, s.storage.InternalStore(), userID, s.startingCash)
	summary := positions.Summarize(marked, startingCash)

	s.logger.Debug().
		Str("user_id", userID).
		Float64("total_value", summary.TotalValue).
		Int("positions", summary.PositionsCount).
		Msg("Portfolio summary computed")

	return summary, nil
}

// Compile-time check
var _ interfaces.PortfolioService = (*Service)(nil)
