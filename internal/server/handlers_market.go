package server

import (
	"net/http"
	"strings"

	"github.com/sjcallan/paperdesk/internal/common"
)

// handleMarketQuote handles GET /api/market/quote/{symbol}.
func (s *Server) handleMarketQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := symbolFromPath(r, "/api/market/quote/")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	quote, err := s.app.MarketService.GetQuote(r.Context(), symbol)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, quote)
}

// handleMarketQuotes handles GET /api/market/quotes?symbols=AAPL,MSFT.
func (s *Server) handleMarketQuotes(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		WriteError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}

	var symbols []string
	for _, sym := range strings.Split(raw, ",") {
		if sym = strings.TrimSpace(sym); sym != "" {
			symbols = append(symbols, sym)
		}
	}

	quotes, err := s.app.MarketService.GetQuotes(r.Context(), symbols)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch quotes")
		WriteError(w, http.StatusInternalServerError, "failed to fetch quotes")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"quotes": quotes,
		"count":  len(quotes),
	})
}

// handleMarketMock handles POST /api/market/mock - seed demo quotes and trades.
func (s *Server) handleMarketMock(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Symbols []string `json:"symbols"`
	}
	// Body is optional; default symbols are used when absent.
	if r.ContentLength > 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	count, err := s.app.MarketService.SeedMockData(ctx, userID, req.Symbols)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to seed mock data")
		WriteError(w, http.StatusInternalServerError, "failed to seed mock data")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status":        "ok",
		"trades_seeded": count,
	})
}
