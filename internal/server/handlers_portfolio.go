package server

import (
	"net/http"
	"strings"

	"github.com/sjcallan/paperdesk/internal/common"
)

// handlePortfolioPositions handles GET /api/portfolio/positions.
func (s *Server) handlePortfolioPositions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	positions, err := s.app.PortfolioService.GetPositions(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to build positions")
		WriteError(w, http.StatusInternalServerError, "failed to build positions")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"positions": positions,
		"count":     len(positions),
	})
}

// handlePortfolioSummary handles GET /api/portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	summary, err := s.app.PortfolioService.GetSummary(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to build summary")
		WriteError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}

// handlePortfolioChart handles GET /api/portfolio/chart. Responds with a
// rendered PNG, not JSON.
func (s *Server) handlePortfolioChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	png, err := s.app.PortfolioService.RenderAllocationChart(ctx, userID)
	if err != nil {
		if strings.Contains(err.Error(), "no open positions") {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to render allocation chart")
		WriteError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
