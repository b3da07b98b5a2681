package app

import (
	"context"
	"time"
)

// DefaultAlertInterval is how often pending price alerts are re-evaluated.
const DefaultAlertInterval = time.Minute

// StartAlertScheduler launches the background alert evaluation loop.
// Fired alerts are logged; the UI picks them up via the alerts endpoint.
func (a *App) StartAlertScheduler(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultAlertInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.alertSchedulerStop = cancel

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				evalCtx, evalCancel := context.WithTimeout(ctx, 30*time.Second)
				fired, err := a.AlertService.EvaluateAlerts(evalCtx)
				evalCancel()
				if err != nil {
					a.Logger.Warn().Err(err).Msg("Alert evaluation pass failed")
					continue
				}
				for _, alert := range fired {
					a.Logger.Info().
						Str("user_id", alert.UserID).
						Str("symbol", alert.Symbol).
						Str("condition", string(alert.Condition)).
						Float64("target_price", alert.TargetPrice).
						Msg("Price alert triggered")
				}
			}
		}
	}()
}
