// Package marketfeed provides a client for the upstream quote feed API
package marketfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
)

const (
	DefaultBaseURL   = "https://api.marketfeed.dev/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the MarketFeedClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new quote feed client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("market feed API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// quoteResponse is the feed's wire format for a quote.
type quoteResponse struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_percent"`
	Volume    int64   `json:"volume"`
	Timestamp int64   `json:"timestamp"`
}

func (q *quoteResponse) toModel() *models.Quote {
	updated := time.Now().UTC()
	if q.Timestamp > 0 {
		updated = time.Unix(q.Timestamp, 0).UTC()
	}
	return &models.Quote{
		Symbol:    strings.ToUpper(q.Symbol),
		Price:     q.Price,
		Change:    q.Change,
		ChangePct: q.ChangePct,
		Volume:    q.Volume,
		UpdatedAt: updated,
	}
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Market feed API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetQuote retrieves the latest quote for a symbol
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	path := fmt.Sprintf("/quote/%s", strings.ToUpper(symbol))

	var raw quoteResponse
	if err := c.get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	if raw.Symbol == "" {
		raw.Symbol = symbol
	}
	return raw.toModel(), nil
}

// GetQuotes retrieves quotes for multiple symbols in one request
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]*models.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	upper := make([]string, len(symbols))
	for i, s := range symbols {
		upper[i] = strings.ToUpper(s)
	}

	params := url.Values{}
	params.Set("symbols", strings.Join(upper, ","))

	var raw []quoteResponse
	if err := c.get(ctx, "/quotes", params, &raw); err != nil {
		return nil, err
	}

	quotes := make([]*models.Quote, 0, len(raw))
	for i := range raw {
		quotes = append(quotes, raw[i].toModel())
	}
	return quotes, nil
}

// Compile-time check
var _ interfaces.MarketFeedClient = (*Client)(nil)
