package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
)

// handleTrades handles GET and POST /api/trades.
func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleTradeList(w, r)
	case http.MethodPost:
		s.handleTradeCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeTrades dispatches /api/trades/{id}.
func (s *Server) routeTrades(w http.ResponseWriter, r *http.Request) {
	tradeID := PathParam(r, "/api/trades/", "")
	if tradeID == "" {
		s.handleTrades(w, r)
		return
	}

	switch r.Method {
	case http.MethodDelete:
		s.handleTradeDelete(w, r, tradeID)
	default:
		RequireMethod(w, r, http.MethodDelete)
	}
}

func (s *Server) handleTradeList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	opts := interfaces.TradeListOptions{
		Symbol: r.URL.Query().Get("symbol"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = v
	}

	trades, err := s.app.JournalService.ListTrades(ctx, userID, opts)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list trades")
		WriteError(w, http.StatusInternalServerError, "failed to list trades")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"trades": trades,
		"count":  len(trades),
	})
}

func (s *Server) handleTradeCreate(w http.ResponseWriter, r *http.Request) {
	var trade models.Trade
	if !DecodeJSON(w, r, &trade) {
		return
	}

	ctx := r.Context()
	trade.UserID = common.ResolveUserID(ctx)

	saved, err := s.app.JournalService.RecordTrade(ctx, &trade)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleTradeDelete(w http.ResponseWriter, r *http.Request, tradeID string) {
	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	if err := s.app.JournalService.DeleteTrade(ctx, userID, tradeID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		if strings.Contains(err.Error(), "belong") {
			WriteError(w, http.StatusForbidden, err.Error())
			return
		}
		s.logger.Error().Err(err).Str("trade_id", tradeID).Msg("Failed to delete trade")
		WriteError(w, http.StatusInternalServerError, "failed to delete trade")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
