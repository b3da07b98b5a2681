// Package models defines data structures for Paperdesk
package models

import (
	"strings"
	"time"
)

// TradeAction is the side of a trade.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// ParseTradeAction normalizes a raw action string to a TradeAction.
// Returns false for anything other than BUY or SELL.
func ParseTradeAction(raw string) (TradeAction, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BUY":
		return ActionBuy, true
	case "SELL":
		return ActionSell, true
	default:
		return "", false
	}
}

// Trade is an immutable journal fact: a single fill recorded by the user.
// Trades are the only source of truth for positions; the engine never
// mutates them, and notes/tags are carried through untouched.
type Trade struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Symbol     string      `json:"symbol"`
	Action     TradeAction `json:"action"`
	Quantity   float64     `json:"quantity"`
	Price      float64     `json:"price"`
	Notes      string      `json:"notes,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	ExecutedAt time.Time   `json:"executed_at"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Value returns the gross cash value of the trade (quantity × price).
func (t Trade) Value() float64 {
	return t.Quantity * t.Price
}
