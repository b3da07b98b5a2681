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

// QuoteStore caches the latest quote per symbol in the "quote" table.
// The symbol itself is the record ID, so a save always replaces the
// previous snapshot.
type QuoteStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewQuoteStore(db *surrealdb.DB, logger *common.Logger) *QuoteStore {
	return &QuoteStore{
		db:     db,
		logger: logger,
	}
}

func (s *QuoteStore) SaveQuote(ctx context.Context, quote *models.Quote) error {
	sql := "UPSERT type::record('quote', $id) CONTENT $quote"
	vars := map[string]any{"id": quote.Symbol, "quote": quote}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.Quote](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save quote after retries: %w", err)
		}
	}
	return nil
}

func (s *QuoteStore) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	quote, err := surrealdb.Select[models.Quote](ctx, s.db, surrealmodels.NewRecordID("quote", symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to select quote: %w", err)
	}
	if quote == nil || quote.Symbol == "" {
		return nil, errors.New("quote not found")
	}
	return quote, nil
}

func (s *QuoteStore) GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error) {
	var quotes []*models.Quote
	for _, symbol := range symbols {
		quote, err := s.GetQuote(ctx, symbol)
		if err != nil {
			continue // missing quotes are not an error for batch reads
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

func (s *QuoteStore) ListQuotes(ctx context.Context) ([]*models.Quote, error) {
	list, err := surrealdb.Select[[]models.Quote](ctx, s.db, surrealmodels.Table("quote"))
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	var quotes []*models.Quote
	if list != nil {
		for i := range *list {
			quotes = append(quotes, &(*list)[i])
		}
	}
	return quotes, nil
}

// Compile-time check
var _ interfaces.QuoteStore = (*QuoteStore)(nil)
