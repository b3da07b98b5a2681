package models

import (
	"strings"
	"time"
)

// AlertCondition is the direction a price alert watches.
type AlertCondition string

const (
	AlertAbove AlertCondition = "above"
	AlertBelow AlertCondition = "below"
)

// ParseAlertCondition normalizes a raw condition string.
func ParseAlertCondition(raw string) (AlertCondition, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "above":
		return AlertAbove, true
	case "below":
		return AlertBelow, true
	default:
		return "", false
	}
}

// PriceAlert is a user-defined trigger against the live quote snapshot.
// Alerts are one-shot: once triggered they stay triggered until deleted.
type PriceAlert struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Symbol      string         `json:"symbol"`
	Condition   AlertCondition `json:"condition"`
	TargetPrice float64        `json:"target_price"`
	Note        string         `json:"note,omitempty"`
	Triggered   bool           `json:"triggered"`
	TriggeredAt *time.Time     `json:"triggered_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Matches reports whether the given price satisfies the alert condition.
func (a *PriceAlert) Matches(price float64) bool {
	if price <= 0 {
		return false
	}
	switch a.Condition {
	case AlertAbove:
		return price >= a.TargetPrice
	case AlertBelow:
		return price <= a.TargetPrice
	default:
		return false
	}
}
