package models

import "time"

// Position is the aggregated state of one symbol, reconstructed from the
// user's trade history with FIFO lot matching. The mark-to-market fields are
// pointers: nil means "no live price attached" (flat position or no quote),
// and consumers must not rely on their presence.
type Position struct {
	Symbol      string  `json:"symbol"`
	Quantity    float64 `json:"quantity"`
	AvgCost     float64 `json:"avg_cost"`
	TotalCost   float64 `json:"total_cost"`
	RealizedPnL float64 `json:"realized_pnl"`

	CurrentPrice     *float64 `json:"current_price,omitempty"`
	MarketValue      *float64 `json:"market_value,omitempty"`
	UnrealizedPnL    *float64 `json:"unrealized_pnl,omitempty"`
	UnrealizedPnLPct *float64 `json:"unrealized_pnl_pct,omitempty"`

	Trades       []Trade   `json:"trades,omitempty"`
	FirstTradeAt time.Time `json:"first_trade_at"`
	LastTradeAt  time.Time `json:"last_trade_at"`
}

// Open reports whether the position still holds units.
func (p *Position) Open() bool {
	return p.Quantity != 0
}

// PortfolioSummary is a single aggregate snapshot of the paper account.
// DayPnL currently mirrors UnrealizedPnL. True day-over-day P&L needs a
// prior-day snapshot, which is not tracked.
type PortfolioSummary struct {
	TotalValue     float64 `json:"total_value"`
	Cash           float64 `json:"cash"`
	PositionsValue float64 `json:"positions_value"`
	UnrealizedPnL  float64 `json:"unrealized_pnl"`
	RealizedPnL    float64 `json:"realized_pnl"`
	DayPnL         float64 `json:"day_pnl"`
	PositionsCount int     `json:"positions_count"`
}
