package market

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sjcallan/paperdesk/internal/models"
)

// DefaultMockSymbols seed demo accounts when no symbols are requested.
var DefaultMockSymbols = []string{"AAPL", "MSFT", "GOOGL", "NVDA", "TSLA"}

// basePrice anchors mock quotes to plausible levels per symbol.
var basePrices = map[string]float64{
	"AAPL":  180,
	"MSFT":  410,
	"GOOGL": 170,
	"NVDA":  130,
	"TSLA":  250,
}

// SeedMockData generates synthetic quotes and a small trade history for a
// demo account. Returns the number of trades written.
func (s *Service) SeedMockData(ctx context.Context, userID string, symbols []string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user id is required")
	}
	if len(symbols) == 0 {
		symbols = DefaultMockSymbols
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()
	written := 0

	for _, raw := range symbols {
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		if symbol == "" {
			continue
		}

		base, ok := basePrices[symbol]
		if !ok {
			base = 20 + rng.Float64()*480
		}

		// Latest quote, drifted off the base price.
		price := base * (0.95 + rng.Float64()*0.1)
		change := price - base
		quote := &models.Quote{
			Symbol:    symbol,
			Price:     round2(price),
			Change:    round2(change),
			ChangePct: round2(change / base * 100),
			Volume:    int64(1_000_000 + rng.Intn(9_000_000)),
			UpdatedAt: now,
		}
		if err := s.storage.QuoteStore().SaveQuote(ctx, quote); err != nil {
			return written, fmt.Errorf("failed to seed quote for %s: %w", symbol, err)
		}

		// A buy some weeks back, and sometimes a partial sell after it.
		buyQty := float64(10 * (1 + rng.Intn(10)))
		buyAt := now.AddDate(0, 0, -(7 + rng.Intn(60)))
		buy := &models.Trade{
			ID:         uuid.NewString(),
			UserID:     userID,
			Symbol:     symbol,
			Action:     models.ActionBuy,
			Quantity:   buyQty,
			Price:      round2(base * (0.85 + rng.Float64()*0.2)),
			Notes:      "seeded demo trade",
			Tags:       []string{"demo"},
			ExecutedAt: buyAt,
			CreatedAt:  now,
		}
		if err := s.storage.TradeStore().SaveTrade(ctx, buy); err != nil {
			return written, fmt.Errorf("failed to seed trade for %s: %w", symbol, err)
		}
		written++

		if rng.Float64() < 0.4 {
			sell := &models.Trade{
				ID:         uuid.NewString(),
				UserID:     userID,
				Symbol:     symbol,
				Action:     models.ActionSell,
				Quantity:   float64(int(buyQty / 2)),
				Price:      round2(base * (0.9 + rng.Float64()*0.2)),
				Notes:      "seeded demo trade",
				Tags:       []string{"demo"},
				ExecutedAt: buyAt.AddDate(0, 0, 1+rng.Intn(14)),
				CreatedAt:  now,
			}
			if sell.Quantity > 0 {
				if err := s.storage.TradeStore().SaveTrade(ctx, sell); err != nil {
					return written, fmt.Errorf("failed to seed trade for %s: %w", symbol, err)
				}
				written++
			}
		}
	}

	s.logger.Info().Str("user_id", userID).Int("trades", written).Msg("Mock data seeded")
	return written, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
