package common

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
)

// MemoryStorage implements interfaces.StorageManager in memory for tests.
type MemoryStorage struct {
	internal *MemoryInternalStore
	trades   *MemoryTradeStore
	alerts   *MemoryAlertStore
	quotes   *MemoryQuoteStore
}

// NewMemoryStorage creates an empty in-memory storage manager.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		internal: &MemoryInternalStore{
			users:  make(map[string]*models.InternalUser),
			userKV: make(map[string]*models.UserKeyValue),
			sysKV:  make(map[string]string),
		},
		trades: &MemoryTradeStore{trades: make(map[string]*models.Trade)},
		alerts: &MemoryAlertStore{alerts: make(map[string]*models.PriceAlert)},
		quotes: &MemoryQuoteStore{quotes: make(map[string]*models.Quote)},
	}
}

func (m *MemoryStorage) InternalStore() interfaces.InternalStore { return m.internal }
func (m *MemoryStorage) TradeStore() interfaces.TradeStore       { return m.trades }
func (m *MemoryStorage) AlertStore() interfaces.AlertStore       { return m.alerts }
func (m *MemoryStorage) QuoteStore() interfaces.QuoteStore       { return m.quotes }
func (m *MemoryStorage) Close() error                            { return nil }

var _ interfaces.StorageManager = (*MemoryStorage)(nil)

// MemoryInternalStore is an in-memory InternalStore.
type MemoryInternalStore struct {
	mu     sync.RWMutex
	users  map[string]*models.InternalUser
	userKV map[string]*models.UserKeyValue
	sysKV  map[string]string
}

func (s *MemoryInternalStore) GetUser(ctx context.Context, userID string) (*models.InternalUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, errors.New("user not found")
}

func (s *MemoryInternalStore) GetUserByEmail(ctx context.Context, email string) (*models.InternalUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, errors.New("user not found")
}

func (s *MemoryInternalStore) SaveUser(ctx context.Context, user *models.InternalUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *user
	s.users[user.UserID] = &copy
	return nil
}

func (s *MemoryInternalStore) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return nil
}

func (s *MemoryInternalStore) ListUsers(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryInternalStore) GetUserKV(ctx context.Context, userID, key string) (*models.UserKeyValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if kv, ok := s.userKV[userID+"_"+key]; ok {
		copy := *kv
		return &copy, nil
	}
	return nil, errors.New("user KV not found")
}

func (s *MemoryInternalStore) SetUserKV(ctx context.Context, userID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userKV[userID+"_"+key] = &models.UserKeyValue{
		UserID:   userID,
		Key:      key,
		Value:    value,
		DateTime: time.Now().UTC(),
	}
	return nil
}

func (s *MemoryInternalStore) DeleteUserKV(ctx context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.userKV, userID+"_"+key)
	return nil
}

func (s *MemoryInternalStore) ListUserKV(ctx context.Context, userID string) ([]*models.UserKeyValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.UserKeyValue
	for _, kv := range s.userKV {
		if kv.UserID == userID {
			copy := *kv
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (s *MemoryInternalStore) GetSystemKV(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.sysKV[key]; ok {
		return v, nil
	}
	return "", errors.New("system KV not found")
}

func (s *MemoryInternalStore) SetSystemKV(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sysKV[key] = value
	return nil
}

func (s *MemoryInternalStore) Close() error { return nil }

// MemoryTradeStore is an in-memory TradeStore.
type MemoryTradeStore struct {
	mu     sync.RWMutex
	trades map[string]*models.Trade
}

func (s *MemoryTradeStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *trade
	s.trades[trade.ID] = &copy
	return nil
}

func (s *MemoryTradeStore) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.trades[id]; ok {
		copy := *t
		return &copy, nil
	}
	return nil, errors.New("trade not found")
}

func (s *MemoryTradeStore) ListTrades(ctx context.Context, userID string) ([]*models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Trade
	for _, t := range s.trades {
		if t.UserID == userID {
			copy := *t
			out = append(out, &copy)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExecutedAt.Before(out[j].ExecutedAt)
	})
	return out, nil
}

func (s *MemoryTradeStore) ListTradesBySymbol(ctx context.Context, userID, symbol string) ([]*models.Trade, error) {
	all, _ := s.ListTrades(ctx, userID)
	var out []*models.Trade
	for _, t := range all {
		if t.Symbol == symbol {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryTradeStore) DeleteTrade(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trades, id)
	return nil
}

func (s *MemoryTradeStore) DeleteUserTrades(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, t := range s.trades {
		if t.UserID == userID {
			delete(s.trades, id)
			count++
		}
	}
	return count, nil
}

// MemoryAlertStore is an in-memory AlertStore.
type MemoryAlertStore struct {
	mu     sync.RWMutex
	alerts map[string]*models.PriceAlert
}

func (s *MemoryAlertStore) SaveAlert(ctx context.Context, alert *models.PriceAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *alert
	s.alerts[alert.ID] = &copy
	return nil
}

func (s *MemoryAlertStore) GetAlert(ctx context.Context, id string) (*models.PriceAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.alerts[id]; ok {
		copy := *a
		return &copy, nil
	}
	return nil, errors.New("alert not found")
}

func (s *MemoryAlertStore) ListAlerts(ctx context.Context, userID string) ([]*models.PriceAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.PriceAlert
	for _, a := range s.alerts {
		if a.UserID == userID {
			copy := *a
			out = append(out, &copy)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryAlertStore) ListPending(ctx context.Context) ([]*models.PriceAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.PriceAlert
	for _, a := range s.alerts {
		if !a.Triggered {
			copy := *a
			out = append(out, &copy)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryAlertStore) MarkTriggered(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[id]
	if !ok {
		return errors.New("alert not found")
	}
	a.Triggered = true
	a.TriggeredAt = &at
	return nil
}

func (s *MemoryAlertStore) DeleteAlert(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.alerts, id)
	return nil
}

// MemoryQuoteStore is an in-memory QuoteStore.
type MemoryQuoteStore struct {
	mu     sync.RWMutex
	quotes map[string]*models.Quote
}

func (s *MemoryQuoteStore) SaveQuote(ctx context.Context, quote *models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *quote
	s.quotes[quote.Symbol] = &copy
	return nil
}

func (s *MemoryQuoteStore) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q, ok := s.quotes[symbol]; ok {
		copy := *q
		return &copy, nil
	}
	return nil, errors.New("quote not found")
}

func (s *MemoryQuoteStore) GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error) {
	var out []*models.Quote
	for _, sym := range symbols {
		if q, err := s.GetQuote(ctx, sym); err == nil {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *MemoryQuoteStore) ListQuotes(ctx context.Context) ([]*models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Quote
	for _, q := range s.quotes {
		copy := *q
		out = append(out, &copy)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Symbol < out[j].Symbol
	})
	return out, nil
}

// MockMarketFeedClient implements MarketFeedClient for testing.
type MockMarketFeedClient struct {
	mu            sync.Mutex
	Quotes        map[string]*models.Quote
	Err           error
	GetQuoteCalls int
}

// NewMockMarketFeedClient creates a mock quote feed client.
func NewMockMarketFeedClient() *MockMarketFeedClient {
	return &MockMarketFeedClient{Quotes: make(map[string]*models.Quote)}
}

func (m *MockMarketFeedClient) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetQuoteCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	if q, ok := m.Quotes[symbol]; ok {
		copy := *q
		return &copy, nil
	}
	return nil, errors.New("symbol not found")
}

func (m *MockMarketFeedClient) GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Quote
	for _, s := range symbols {
		if q, err := m.GetQuote(ctx, s); err == nil {
			out = append(out, q)
		}
	}
	return out, nil
}

var _ interfaces.MarketFeedClient = (*MockMarketFeedClient)(nil)

// MockGeminiClient implements GeminiClient for testing.
type MockGeminiClient struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockGeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

var _ interfaces.GeminiClient = (*MockGeminiClient)(nil)
