// Package market handles quote retrieval and caching.
package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
)

const DefaultCacheTTL = 60 * time.Second

// Service implements MarketService
type Service struct {
	storage  interfaces.StorageManager
	feed     interfaces.MarketFeedClient
	logger   *common.Logger
	cacheTTL time.Duration
}

// NewService creates a new market service
func NewService(storage interfaces.StorageManager, feed interfaces.MarketFeedClient, cacheTTL time.Duration, logger *common.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Service{
		storage:  storage,
		feed:     feed,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// GetQuote returns the quote for a symbol. A cached snapshot within the TTL
// is served directly; otherwise the feed is queried and the cache refreshed.
// When the feed fails, a stale cached quote is better than no quote.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	cached, cacheErr := s.storage.QuoteStore().GetQuote(ctx, symbol)
	if cacheErr == nil && time.Since(cached.UpdatedAt) < s.cacheTTL {
		return cached, nil
	}

	if s.feed == nil {
		if cacheErr == nil {
			return cached, nil
		}
		return nil, fmt.Errorf("no quote available for %s", symbol)
	}

	fresh, err := s.feed.GetQuote(ctx, symbol)
	if err != nil {
		if cacheErr == nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Feed unavailable, serving stale quote")
			return cached, nil
		}
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	if saveErr := s.storage.QuoteStore().SaveQuote(ctx, fresh); saveErr != nil {
		s.logger.Warn().Err(saveErr).Str("symbol", symbol).Msg("Failed to cache quote")
	}
	return fresh, nil
}

// GetQuotes returns quotes for several symbols. Symbols that cannot be
// resolved are omitted rather than failing the batch.
func (s *Service) GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error) {
	var quotes []*models.Quote
	for _, symbol := range symbols {
		quote, err := s.GetQuote(ctx, symbol)
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Skipping unresolvable symbol")
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// Compile-time check
var _ interfaces.MarketService = (*Service)(nil)
