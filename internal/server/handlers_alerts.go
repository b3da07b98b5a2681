package server

import (
	"net/http"
	"strings"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/models"
)

// handleAlerts handles GET and POST /api/alerts.
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleAlertList(w, r)
	case http.MethodPost:
		s.handleAlertCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeAlerts dispatches /api/alerts/{id}.
func (s *Server) routeAlerts(w http.ResponseWriter, r *http.Request) {
	alertID := PathParam(r, "/api/alerts/", "")
	if alertID == "" {
		s.handleAlerts(w, r)
		return
	}

	switch r.Method {
	case http.MethodDelete:
		s.handleAlertDelete(w, r, alertID)
	default:
		RequireMethod(w, r, http.MethodDelete)
	}
}

func (s *Server) handleAlertList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	alerts, err := s.app.AlertService.ListAlerts(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list alerts")
		WriteError(w, http.StatusInternalServerError, "failed to list alerts")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

func (s *Server) handleAlertCreate(w http.ResponseWriter, r *http.Request) {
	var alert models.PriceAlert
	if !DecodeJSON(w, r, &alert) {
		return
	}

	ctx := r.Context()
	alert.UserID = common.ResolveUserID(ctx)

	saved, err := s.app.AlertService.CreateAlert(ctx, &alert)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleAlertDelete(w http.ResponseWriter, r *http.Request, alertID string) {
	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	if err := s.app.AlertService.DeleteAlert(ctx, userID, alertID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		if strings.Contains(err.Error(), "belong") {
			WriteError(w, http.StatusForbidden, err.Error())
			return
		}
		s.logger.Error().Err(err).Str("alert_id", alertID).Msg("Failed to delete alert")
		WriteError(w, http.StatusInternalServerError, "failed to delete alert")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAlertsEvaluate handles POST /api/alerts/evaluate - run an on-demand
// evaluation pass against cached quotes.
func (s *Server) handleAlertsEvaluate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	fired, err := s.app.AlertService.EvaluateAlerts(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Alert evaluation failed")
		WriteError(w, http.StatusInternalServerError, "alert evaluation failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"fired": fired,
		"count": len(fired),
	})
}
