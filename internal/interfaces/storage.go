// Package interfaces defines service contracts for Paperdesk
package interfaces

import (
	"context"
	"time"

	"github.com/sjcallan/paperdesk/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	InternalStore() InternalStore
	TradeStore() TradeStore
	AlertStore() AlertStore
	QuoteStore() QuoteStore

	// Lifecycle
	Close() error
}

// InternalStore manages user accounts, per-user config, and system-level KV.
type InternalStore interface {
	// User accounts
	GetUser(ctx context.Context, userID string) (*models.InternalUser, error)
	GetUserByEmail(ctx context.Context, email string) (*models.InternalUser, error)
	SaveUser(ctx context.Context, user *models.InternalUser) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]string, error)

	// Per-user key-value config
	GetUserKV(ctx context.Context, userID, key string) (*models.UserKeyValue, error)
	SetUserKV(ctx context.Context, userID, key, value string) error
	DeleteUserKV(ctx context.Context, userID, key string) error
	ListUserKV(ctx context.Context, userID string) ([]*models.UserKeyValue, error)

	// System key-value (non-user-scoped)
	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}

// TradeStore persists the append-only trade journal.
type TradeStore interface {
	SaveTrade(ctx context.Context, trade *models.Trade) error
	GetTrade(ctx context.Context, id string) (*models.Trade, error)

	// ListTrades returns a user's trades ordered by execution time ascending.
	ListTrades(ctx context.Context, userID string) ([]*models.Trade, error)

	// ListTradesBySymbol returns a user's trades for one symbol, ordered by
	// execution time ascending.
	ListTradesBySymbol(ctx context.Context, userID, symbol string) ([]*models.Trade, error)

	DeleteTrade(ctx context.Context, id string) error
	DeleteUserTrades(ctx context.Context, userID string) (int, error)
}

// AlertStore persists price alerts.
type AlertStore interface {
	SaveAlert(ctx context.Context, alert *models.PriceAlert) error
	GetAlert(ctx context.Context, id string) (*models.PriceAlert, error)
	ListAlerts(ctx context.Context, userID string) ([]*models.PriceAlert, error)

	// ListPending returns untriggered alerts across all users.
	ListPending(ctx context.Context) ([]*models.PriceAlert, error)

	// MarkTriggered flips an alert to triggered at the given time.
	MarkTriggered(ctx context.Context, id string, at time.Time) error

	DeleteAlert(ctx context.Context, id string) error
}

// QuoteStore caches the latest quote snapshot per symbol.
type QuoteStore interface {
	SaveQuote(ctx context.Context, quote *models.Quote) error
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error)
	ListQuotes(ctx context.Context) ([]*models.Quote, error)
}
