package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sjcallan/paperdesk/internal/app"
	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/services/alerts"
	"github.com/sjcallan/paperdesk/internal/services/assistant"
	"github.com/sjcallan/paperdesk/internal/services/journal"
	"github.com/sjcallan/paperdesk/internal/services/market"
	"github.com/sjcallan/paperdesk/internal/services/portfolio"
	tcommon "github.com/sjcallan/paperdesk/tests/common"
)

// newTestServer builds a server over in-memory storage with no external clients.
func newTestServer(t *testing.T) (*Server, *tcommon.MemoryStorage) {
	t.Helper()

	storage := tcommon.NewMemoryStorage()
	config := common.NewDefaultConfig()
	logger := common.NewSilentLogger()

	portfolioService := portfolio.NewService(storage, config.Portfolio.StartingCash, logger)

	a := &app.App{
		Config:           config,
		Logger:           logger,
		Storage:          storage,
		PortfolioService: portfolioService,
		JournalService:   journal.NewService(storage, logger),
		AlertService:     alerts.NewService(storage, logger),
		MarketService:    market.NewService(storage, nil, time.Minute, logger),
		AssistantService: assistant.NewService(portfolioService, nil, logger),
		StartupTime:      time.Now(),
	}

	return NewServer(a), storage
}

// doRequest executes a request against the server's full middleware stack.
func doRequest(t *testing.T, srv *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, srv *Server, username, password string) string {
	t.Helper()

	rec := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}
