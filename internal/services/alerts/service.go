// Package alerts manages price alerts and their evaluation against quotes.
package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
)

// Service implements AlertService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new alert service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// CreateAlert validates and persists an alert.
func (s *Service) CreateAlert(ctx context.Context, alert *models.PriceAlert) (*models.PriceAlert, error) {
	alert.Symbol = strings.ToUpper(strings.TrimSpace(alert.Symbol))
	if alert.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if alert.Condition != models.AlertAbove && alert.Condition != models.AlertBelow {
		return nil, fmt.Errorf("condition must be above or below")
	}
	if alert.TargetPrice <= 0 {
		return nil, fmt.Errorf("target price must be positive")
	}
	if alert.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	alert.Triggered = false
	alert.TriggeredAt = nil
	alert.CreatedAt = time.Now().UTC()

	if err := s.storage.AlertStore().SaveAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to save alert: %w", err)
	}

	s.logger.Info().
		Str("user_id", alert.UserID).
		Str("symbol", alert.Symbol).
		Str("condition", string(alert.Condition)).
		Float64("target", alert.TargetPrice).
		Msg("Alert created")

	return alert, nil
}

// ListAlerts returns a user's alerts, newest first.
func (s *Service) ListAlerts(ctx context.Context, userID string) ([]*models.PriceAlert, error) {
	alerts, err := s.storage.AlertStore().ListAlerts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// DeleteAlert removes an alert after verifying ownership.
func (s *Service) DeleteAlert(ctx context.Context, userID, alertID string) error {
	alert, err := s.storage.AlertStore().GetAlert(ctx, alertID)
	if err != nil {
		return fmt.Errorf("alert not found: %w", err)
	}
	if alert.UserID != userID {
		return fmt.Errorf("alert does not belong to user")
	}

	if err := s.storage.AlertStore().DeleteAlert(ctx, alertID); err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return nil
}

// EvaluateAlerts checks pending alerts against the cached quote snapshot and
// marks matches as triggered. Alerts are one-shot: a fired alert stays
// triggered until deleted. Symbols without a cached quote are skipped.
func (s *Service) EvaluateAlerts(ctx context.Context) ([]*models.PriceAlert, error) {
	pending, err := s.storage.AlertStore().ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending alerts: %w", err)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	var fired []*models.PriceAlert
	now := time.Now().UTC()

	for _, alert := range pending {
		quote, err := s.storage.QuoteStore().GetQuote(ctx, alert.Symbol)
		if err != nil {
			continue
		}
		if !alert.Matches(quote.Price) {
			continue
		}

		if err := s.storage.AlertStore().MarkTriggered(ctx, alert.ID, now); err != nil {
			s.logger.Warn().Err(err).Str("alert_id", alert.ID).Msg("Failed to mark alert triggered")
			continue
		}

		alert.Triggered = true
		alert.TriggeredAt = &now
		fired = append(fired, alert)

		s.logger.Info().
			Str("alert_id", alert.ID).
			Str("symbol", alert.Symbol).
			Float64("target", alert.TargetPrice).
			Float64("price", quote.Price).
			Msg("Alert triggered")
	}

	return fired, nil
}

// Compile-time check
var _ interfaces.AlertService = (*Service)(nil)
