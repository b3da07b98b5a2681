// Package interfaces defines service contracts for Paperdesk
package interfaces

import (
	"context"

	"github.com/sjcallan/paperdesk/internal/models"
)

// MarketFeedClient provides access to the upstream quote feed.
type MarketFeedClient interface {
	// GetQuote retrieves the latest quote for a symbol
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetQuotes retrieves quotes for multiple symbols
	GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error)
}

// GeminiClient provides access to the Gemini API
type GeminiClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
