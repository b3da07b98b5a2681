package surrealdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/models"
)

// AlertStore persists price alerts in the "alert" table.
type AlertStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewAlertStore(db *surrealdb.DB, logger *common.Logger) *AlertStore {
	return &AlertStore{
		db:     db,
		logger: logger,
	}
}

func (s *AlertStore) SaveAlert(ctx context.Context, alert *models.PriceAlert) error {
	sql := "UPSERT type::record('alert', $id) CONTENT $alert"
	vars := map[string]any{"id": alert.ID, "alert": alert}

	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.PriceAlert](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		if attempt == 3 {
			return fmt.Errorf("failed to save alert after retries: %w", err)
		}
	}
	return nil
}

func (s *AlertStore) GetAlert(ctx context.Context, id string) (*models.PriceAlert, error) {
	alert, err := surrealdb.Select[models.PriceAlert](ctx, s.db, surrealmodels.NewRecordID("alert", id))
	if err != nil {
		return nil, fmt.Errorf("failed to select alert: %w", err)
	}
	if alert == nil || alert.ID == "" {
		return nil, errors.New("alert not found")
	}
	return alert, nil
}

func (s *AlertStore) ListAlerts(ctx context.Context, userID string) ([]*models.PriceAlert, error) {
	sql := "SELECT * FROM alert WHERE user_id = $user_id ORDER BY created_at DESC"
	vars := map[string]any{"user_id": userID}
	return s.queryAlerts(ctx, sql, vars)
}

func (s *AlertStore) ListPending(ctx context.Context) ([]*models.PriceAlert, error) {
	sql := "SELECT * FROM alert WHERE triggered = false ORDER BY created_at ASC"
	return s.queryAlerts(ctx, sql, nil)
}

func (s *AlertStore) queryAlerts(ctx context.Context, sql string, vars map[string]any) ([]*models.PriceAlert, error) {
	results, err := surrealdb.Query[[]models.PriceAlert](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.PriceAlert
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

func (s *AlertStore) MarkTriggered(ctx context.Context, id string, at time.Time) error {
	sql := "UPDATE type::record('alert', $id) SET triggered = true, triggered_at = $at"
	vars := map[string]any{"id": id, "at": at}

	if _, err := surrealdb.Query[[]models.PriceAlert](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to mark alert triggered: %w", err)
	}
	return nil
}

func (s *AlertStore) DeleteAlert(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.PriceAlert](ctx, s.db, surrealmodels.NewRecordID("alert", id))
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return nil
}

// Compile-time check
var _ interfaces.AlertStore = (*AlertStore)(nil)
