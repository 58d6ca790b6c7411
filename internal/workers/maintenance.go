package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/plugscrtf/marketplace-service/internal/ports"
)

// MaintenanceSweeper clears the maintenance flag in settings once the
// scheduled end time has passed, so the storefront reopens without an admin
// touching anything.
type MaintenanceSweeper struct {
	settings ports.SettingsRepository
	logger   *slog.Logger
	interval time.Duration
	nowFn    func() time.Time
}

func NewMaintenanceSweeper(settings ports.SettingsRepository, logger *slog.Logger, interval time.Duration) *MaintenanceSweeper {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &MaintenanceSweeper{
		settings: settings,
		logger:   logger,
		interval: interval,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}

func (w *MaintenanceSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.sweepOnce(ctx); err != nil {
			w.logger.ErrorContext(ctx, "maintenance sweep failed",
				"module", "workers.maintenance",
				"operation", "sweep_once",
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *MaintenanceSweeper) sweepOnce(ctx context.Context) error {
	settings, err := w.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.MaintenanceMode || settings.MaintenanceEndTime == nil {
		return nil
	}
	if w.nowFn().Before(*settings.MaintenanceEndTime) {
		return nil
	}
	if _, err := w.settings.Update(ctx, ports.Patch{
		"maintenanceMode":    false,
		"maintenanceEndTime": nil,
	}, 0); err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "maintenance mode cleared",
		"module", "workers.maintenance",
		"ended_at", settings.MaintenanceEndTime.Format(time.RFC3339),
	)
	return nil
}
