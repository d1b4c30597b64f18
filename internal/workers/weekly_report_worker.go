package workers

import (
	"context"
	"time"

	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/repositories"
	"floodguard_backend/internal/services"

	"github.com/jonboulle/clockwork"
)

// WeeklyReportWorker sends the weekly summary email to every active
// user on a fixed cadence.
type WeeklyReportWorker struct {
	notifications services.NotificationService
	userRepo      repositories.UserRepository
	interval      time.Duration
	clock         clockwork.Clock
}

func NewWeeklyReportWorker(
	notifications services.NotificationService,
	userRepo repositories.UserRepository,
	interval time.Duration,
	clock clockwork.Clock,
) *WeeklyReportWorker {
	return &WeeklyReportWorker{
		notifications: notifications,
		userRepo:      userRepo,
		interval:      interval,
		clock:         clock,
	}
}

func (w *WeeklyReportWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *WeeklyReportWorker) run(ctx context.Context) {
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("weekly report worker started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("weekly report worker stopped")
			return
		case <-ticker.Chan():
			w.sendAll(ctx)
		}
	}
}

// sendAll dispatches one report per active user. A failure for one user
// never blocks the rest of the batch.
func (w *WeeklyReportWorker) sendAll(ctx context.Context) {
	users, err := w.userRepo.FindAllActive()
	if err != nil {
		logger.WorkerLog("weekly_report", "load users", err)
		return
	}

	var sent, failed int
	for i := range users {
		if ctx.Err() != nil {
			return
		}
		delivered, err := w.notifications.SendWeeklyReportNotification(ctx, users[i].ID)
		switch {
		case err != nil:
			failed++
			logger.Warn("weekly report failed", "error", err.Error(), "user_id", users[i].ID)
		case delivered:
			sent++
		default:
			failed++
		}
	}

	logger.Info("weekly report batch finished", "users", len(users), "sent", sent, "failed", failed)
}
