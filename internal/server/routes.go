package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/sjcallan/paperdesk/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	// Trade journal
	mux.HandleFunc("/api/trades/", s.routeTrades)
	mux.HandleFunc("/api/trades", s.handleTrades)

	// Portfolio
	mux.HandleFunc("/api/portfolio/positions", s.handlePortfolioPositions)
	mux.HandleFunc("/api/portfolio/summary", s.handlePortfolioSummary)
	mux.HandleFunc("/api/portfolio/chart", s.handlePortfolioChart)

	// Market data
	mux.HandleFunc("/api/market/quote/", s.handleMarketQuote)
	mux.HandleFunc("/api/market/quotes", s.handleMarketQuotes)
	mux.HandleFunc("/api/market/mock", s.handleMarketMock)

	// Price alerts
	mux.HandleFunc("/api/alerts/evaluate", s.handleAlertsEvaluate)
	mux.HandleFunc("/api/alerts/", s.routeAlerts)
	mux.HandleFunc("/api/alerts", s.handleAlerts)

	// Assistant
	mux.HandleFunc("/api/chat", s.handleChat)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := time.Since(s.app.StartupTime).Round(time.Second)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":           s.app.Config.Environment,
		"uptime":                uptime.String(),
		"storage_address":       s.app.Config.Storage.Address,
		"storage_namespace":     s.app.Config.Storage.Namespace,
		"storage_database":      s.app.Config.Storage.Database,
		"logging_level":         s.app.Config.Logging.Level,
		"starting_cash":         s.app.Config.Portfolio.StartingCash,
		"marketfeed_configured": s.app.MarketFeedClient != nil,
		"gemini_configured":     s.app.GeminiClient != nil,
		"marketfeed_api_key":    maskSecret(s.app.Config.Clients.MarketFeed.APIKey),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

// symbolFromPath extracts the trailing symbol segment from a quote path.
func symbolFromPath(r *http.Request, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(r.URL.Path, prefix))
}
