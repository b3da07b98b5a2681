package surrealdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
)

// TradeStore persists the trade journal in the "trade" table.
type TradeStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTradeStore(db *surrealdb.DB, logger *common.Logger) *TradeStore {
	return &TradeStore{
		db:     db,
		logger: logger,
	}
}

func (s *TradeStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	sql := "UPSERT type::record('trade', $id) CONTENT $trade"
	vars := map[string]any{"id": trade.ID, "trade": trade}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Trade](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save trade after retries: %w", err)
		}
	}
	return nil
}

func (s *TradeStore) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	trade, err := surrealdb.Select[models.Trade](ctx, s.db, surrealmodels.NewRecordID("trade", id))
	if err != nil {
		return nil, fmt.Errorf("failed to select trade: %w", err)
	}
	if trade == nil || trade.ID == "" {
		return nil, errors.New("trade not found")
	}
	return trade, nil
}

func (s *TradeStore) ListTrades(ctx context.Context, userID string) ([]*models.Trade, error) {
	sql := "SELECT * FROM trade WHERE user_id = $user_id ORDER BY executed_at ASC"
	vars := map[string]any{"user_id": userID}
	return s.queryTrades(ctx, sql, vars)
}

func (s *TradeStore) ListTradesBySymbol(ctx context.Context, userID, symbol string) ([]*models.Trade, error) {
	sql := "SELECT * FROM trade WHERE user_id = $user_id AND symbol = $symbol ORDER BY executed_at ASC"
	vars := map[string]any{"user_id": userID, "symbol": symbol}
	return s.queryTrades(ctx, sql, vars)
}

func (s *TradeStore) queryTrades(ctx context.Context, sql string, vars map[string]any) ([]*models.Trade, error) {
	results, err := surrealdb.Query[[]models.Trade](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Trade
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

func (s *TradeStore) DeleteTrade(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.Trade](ctx, s.db, surrealmodels.NewRecordID("trade", id))
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return nil
}

func (s *TradeStore) DeleteUserTrades(ctx context.Context, userID string) (int, error) {
	existing, err := s.ListTrades(ctx, userID)
	if err != nil {
		return 0, err
	}

	sql := "DELETE FROM trade WHERE user_id = $user_id"
	vars := map[string]any{"user_id": userID}
	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return 0, fmt.Errorf("failed to delete user trades: %w", err)
	}
	return len(existing), nil
}

// Compile-time check
var _ interfaces.TradeStore = (*TradeStore)(nil)
