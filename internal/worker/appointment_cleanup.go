package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/wardlink/admin-api/pkg/logger"
	"github.com/wardlink/admin-api/pkg/metrics"
)

// StaleCleaner removes appointments from past days.
type StaleCleaner interface {
	CleanupStale(ctx context.Context) (int64, error)
}

// AppointmentCleanupWorker sweeps stale scheduled appointments on an
// interval. One sweep runs at startup so a restart does not leave
// yesterday's rows around until the next tick.
type AppointmentCleanupWorker struct {
	cleaner  StaleCleaner
	interval time.Duration
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewAppointmentCleanupWorker(cleaner StaleCleaner, interval time.Duration, log *logger.Logger, m *metrics.Metrics) *AppointmentCleanupWorker {
	return &AppointmentCleanupWorker{
		cleaner:  cleaner,
		interval: interval,
		logger:   log,
		metrics:  m,
	}
}

func (w *AppointmentCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Starting appointment cleanup worker")

	if err := w.sweep(ctx); err != nil {
		w.logger.Error(err, "Failed initial appointment sweep")
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Shutting down appointment cleanup worker")
			return
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				w.logger.Error(err, "Failed to sweep stale appointments")
			}
		}
	}
}

func (w *AppointmentCleanupWorker) sweep(ctx context.Context) error {
	removed, err := w.cleaner.CleanupStale(ctx)
	if err != nil {
		return fmt.Errorf("failed to cleanup appointments: %w", err)
	}
	if w.metrics != nil {
		w.metrics.AppointmentsSwept.Add(float64(removed))
	}
	if removed > 0 {
		w.logger.Info("Swept stale appointments", "removed", removed)
	}
	return nil
}
