package workers

import (
	"context"
	"time"

	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/services"

	"github.com/jonboulle/clockwork"
)

// MaintenanceWorker periodically sweeps active sensors and raises
// maintenance alerts for the silent ones.
type MaintenanceWorker struct {
	notifications services.NotificationService
	interval      time.Duration
	clock         clockwork.Clock
}

func NewMaintenanceWorker(notifications services.NotificationService, interval time.Duration, clock clockwork.Clock) *MaintenanceWorker {
	return &MaintenanceWorker{
		notifications: notifications,
		interval:      interval,
		clock:         clock,
	}
}

// Start launches the sweep loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (w *MaintenanceWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *MaintenanceWorker) run(ctx context.Context) {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("maintenance worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("maintenance worker stopped")
			return
		case <-ticker.Chan():
			err := w.notifications.CheckSensorMaintenance(ctx)
			logger.WorkerLog("maintenance", "sensor sweep", err)
		}
	}
}
