package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/telalestate/propertydesk/internal/featureflags"
	"github.com/telalestate/propertydesk/internal/observability/metrics"
	"github.com/telalestate/propertydesk/internal/service"
)

const resendAfter = 24 * time.Hour

// ReminderWorker periodically scans rentals for overdue payments and sends
// reminder emails. Sending is gated behind the auto_reminders feature flag;
// the overdue scan itself always runs so the gauge stays current.
type ReminderWorker struct {
	aggregation *service.AggregationService
	reminders   *service.ReminderService
	logger      *slog.Logger
	interval    time.Duration

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewReminderWorker creates a new reminder worker
func NewReminderWorker(
	aggregation *service.AggregationService,
	reminders *service.ReminderService,
	logger *slog.Logger,
	interval time.Duration,
) *ReminderWorker {
	return &ReminderWorker{
		aggregation: aggregation,
		reminders:   reminders,
		logger:      logger,
		interval:    interval,
		lastSent:    make(map[string]time.Time),
	}
}

// Start begins the reminder worker loop
func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("reminder worker started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.checkOverdueRentals(ctx)
		}
	}
}

func (w *ReminderWorker) checkOverdueRentals(ctx context.Context) {
	overdue, err := w.aggregation.ListOverdue()
	if err != nil {
		w.logger.Error("failed to list overdue rentals", slog.String("error", err.Error()))
		return
	}

	if len(overdue) == 0 {
		return
	}
	w.logger.Info("overdue rentals found", slog.Int("count", len(overdue)))

	if !featureflags.Enabled(featureflags.AutoReminders) {
		return
	}

	now := time.Now()
	for _, o := range overdue {
		if o.TenantEmail == "" {
			continue
		}
		if !w.shouldSend(o.RentalID, now) {
			continue
		}

		if _, err := w.reminders.SendReminder(ctx, o.RentalID); err != nil {
			w.logger.Error("auto reminder failed",
				slog.String("rental_id", o.RentalID),
				slog.String("error", err.Error()),
			)
			metrics.ObserveReminder("worker", "error")
			continue
		}
		metrics.ObserveReminder("worker", "success")
		w.markSent(o.RentalID, now)
	}
}

// shouldSend enforces at most one automatic reminder per rental per day.
func (w *ReminderWorker) shouldSend(rentalID string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	last, ok := w.lastSent[rentalID]
	return !ok || now.Sub(last) >= resendAfter
}

func (w *ReminderWorker) markSent(rentalID string, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastSent[rentalID] = now

	cutoff := now.Add(-7 * 24 * time.Hour)
	for id, t := range w.lastSent {
		if t.Before(cutoff) {
			delete(w.lastSent, id)
		}
	}
}
