package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjcallan/paperdesk/internal/models"
)

func TestAlertCreateAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/alerts", "", map[string]interface{}{
		"symbol": "AAPL", "condition": "above", "target_price": 200,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, false, body["triggered"])

	rec = doRequest(t, srv, http.MethodGet, "/api/alerts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["count"])
}

func TestAlertCreate_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing symbol", map[string]interface{}{"condition": "above", "target_price": 1}},
		{"bad condition", map[string]interface{}{"symbol": "AAPL", "condition": "crosses", "target_price": 1}},
		{"zero target", map[string]interface{}{"symbol": "AAPL", "condition": "above", "target_price": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/alerts", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAlertDelete(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/alerts", "", map[string]interface{}{
		"symbol": "AAPL", "condition": "above", "target_price": 200,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	alertID := decodeBody(t, rec)["id"].(string)

	rec = doRequest(t, srv, http.MethodDelete, "/api/alerts/"+alertID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, "/api/alerts/"+alertID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertsEvaluate(t *testing.T) {
	srv, storage := newTestServer(t)
	ctx := context.Background()

	rec := doRequest(t, srv, http.MethodPost, "/api/alerts", "", map[string]interface{}{
		"symbol": "AAPL", "condition": "above", "target_price": 200,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NoError(t, storage.QuoteStore().SaveQuote(ctx, &models.Quote{
		Symbol: "AAPL", Price: 205, UpdatedAt: time.Now().UTC(),
	}))

	rec = doRequest(t, srv, http.MethodPost, "/api/alerts/evaluate", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["count"])

	// One-shot: a second pass fires nothing.
	rec = doRequest(t, srv, http.MethodPost, "/api/alerts/evaluate", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeBody(t, rec)["count"])
}
