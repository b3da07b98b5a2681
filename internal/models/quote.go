package models

import "time"

// Quote is a single current-price snapshot for a symbol. The dashboard only
// supports one live price per symbol, with no intraday history.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_pct"`
	Volume    int64     `json:"volume,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceMap flattens quotes into the symbol→price form the position engine
// consumes. Quotes with a non-positive price are skipped.
func PriceMap(quotes []*Quote) map[string]float64 {
	prices := make(map[string]float64, len(quotes))
	for _, q := range quotes {
		if q == nil || q.Price <= 0 {
			continue
		}
		prices[q.Symbol] = q.Price
	}
	return prices
}
