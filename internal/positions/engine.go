// Package positions reconstructs portfolio state from an append-only trade
// history using FIFO lot matching. All three stages are pure functions: no
// I/O, no shared state, safe to call concurrently.
package positions

import (
	"sort"

	"github.com/sjcallan/paperdesk/internal/models"
)

// DefaultStartingCash is the synthetic paper-trading balance used when no
// per-user override is configured.
const DefaultStartingCash = 100000

// lot is an unconsumed portion of a BUY, tracked until fully matched
// against later SELLs. Lots are never reordered or merged.
type lot struct {
	quantity float64
	price    float64
}

// symbolState accumulates per-symbol state during aggregation. The lot queue
// is a slice with a head index rather than a spliced array, so long histories
// consume from the front in O(1).
type symbolState struct {
	lots        []lot
	head        int
	realizedPnL float64
	trades      []models.Trade
}

// Aggregate folds a chronological trade list into one Position per symbol.
//
// The caller must supply trades in non-decreasing time order; FIFO matching
// is order-dependent and the aggregator does not sort the input itself
// (FirstTradeAt/LastTradeAt are re-derived defensively, nothing else is).
// A SELL that exceeds the held quantity consumes every remaining lot and
// silently drops the excess: no negative position, no error. Symbols whose
// trades net out to zero quantity and zero realized P&L are omitted.
func Aggregate(trades []models.Trade) []*models.Position {
	states := make(map[string]*symbolState)
	var order []string

	for _, t := range trades {
		st, ok := states[t.Symbol]
		if !ok {
			st = &symbolState{}
			states[t.Symbol] = st
			order = append(order, t.Symbol)
		}
		st.trades = append(st.trades, t)

		switch t.Action {
		case models.ActionBuy:
			st.lots = append(st.lots, lot{quantity: t.Quantity, price: t.Price})
		case models.ActionSell:
			remaining := t.Quantity
			for remaining > 0 && st.head < len(st.lots) {
				l := &st.lots[st.head]
				closeQty := remaining
				if l.quantity < closeQty {
					closeQty = l.quantity
				}
				st.realizedPnL += closeQty * (t.Price - l.price)
				l.quantity -= closeQty
				remaining -= closeQty
				if l.quantity == 0 {
					st.head++
				}
			}
			// Lots exhausted: the oversold remainder is dropped.
		}
	}

	out := make([]*models.Position, 0, len(order))
	for _, symbol := range order {
		st := states[symbol]

		var totalQty, totalCost float64
		for _, l := range st.lots[st.head:] {
			totalQty += l.quantity
			totalCost += l.quantity * l.price
		}

		// A wash that never affected the account produces no position.
		if totalQty == 0 && st.realizedPnL == 0 {
			continue
		}

		avgCost := 0.0
		if totalQty > 0 {
			avgCost = totalCost / totalQty
		}

		sorted := make([]models.Trade, len(st.trades))
		copy(sorted, st.trades)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ExecutedAt.Before(sorted[j].ExecutedAt)
		})

		out = append(out, &models.Position{
			Symbol:       symbol,
			Quantity:     totalQty,
			AvgCost:      avgCost,
			TotalCost:    totalCost,
			RealizedPnL:  st.realizedPnL,
			Trades:       sorted,
			FirstTradeAt: sorted[0].ExecutedAt,
			LastTradeAt:  sorted[len(sorted)-1].ExecutedAt,
		})
	}

	return out
}

// MarkToMarket attaches current price, market value, and unrealized P&L to
// each open position with a known price. Copy-on-write: the input slice and
// its elements are never mutated. Positions that are flat or have no price
// in the map pass through unchanged; absence of data is not an error.
func MarkToMarket(positions []*models.Position, prices map[string]float64) []*models.Position {
	out := make([]*models.Position, len(positions))
	for i, p := range positions {
		price, ok := prices[p.Symbol]
		if !ok || price <= 0 || p.Quantity == 0 {
			out[i] = p
			continue
		}

		marked := *p
		marketValue := marked.Quantity * price
		unrealized := marketValue - marked.TotalCost
		unrealizedPct := 0.0
		if marked.TotalCost > 0 {
			unrealizedPct = unrealized / marked.TotalCost * 100
		}

		marked.CurrentPrice = &price
		marked.MarketValue = &marketValue
		marked.UnrealizedPnL = &unrealized
		marked.UnrealizedPnLPct = &unrealizedPct
		out[i] = &marked
	}
	return out
}

// Summarize computes aggregate account metrics from positions (marked to
// market or not) and a starting cash balance. Positions without a market
// value fall back to cost basis, so the summary is always computable with
// partial price data.
func Summarize(positions []*models.Position, startingCash float64) *models.PortfolioSummary {
	summary := &models.PortfolioSummary{}

	var cashUsed float64
	for _, p := range positions {
		cashUsed += p.TotalCost
		summary.RealizedPnL += p.RealizedPnL

		if p.MarketValue != nil {
			summary.PositionsValue += *p.MarketValue
		} else {
			summary.PositionsValue += p.TotalCost
		}
		if p.UnrealizedPnL != nil {
			summary.UnrealizedPnL += *p.UnrealizedPnL
		}
		if p.Open() {
			summary.PositionsCount++
		}
	}

	summary.Cash = startingCash - cashUsed + summary.RealizedPnL
	summary.TotalValue = summary.Cash + summary.PositionsValue
	// Day P&L placeholder: needs a prior-day snapshot to compute properly.
	summary.DayPnL = summary.UnrealizedPnL

	return summary
}
