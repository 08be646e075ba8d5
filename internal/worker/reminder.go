package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wardlink/admin-api/internal/service/reminder"
	"github.com/wardlink/admin-api/pkg/logger"
	"github.com/wardlink/admin-api/pkg/metrics"
)

// ReminderScanner walks scheduled appointments for due reminders.
type ReminderScanner interface {
	Scan(ctx context.Context) (*reminder.ScanResult, error)
}

// ReminderWorker runs the reminder scan on an interval.
type ReminderWorker struct {
	scanner  ReminderScanner
	interval time.Duration
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewReminderWorker(scanner ReminderScanner, interval time.Duration, log *logger.Logger, m *metrics.Metrics) *ReminderWorker {
	return &ReminderWorker{
		scanner:  scanner,
		interval: interval,
		logger:   log,
		metrics:  m,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Starting reminder worker")
	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Shutting down reminder worker")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *ReminderWorker) scan(ctx context.Context) {
	var timer *prometheus.Timer
	if w.metrics != nil {
		timer = prometheus.NewTimer(w.metrics.ReminderScanLatency)
	}

	result, err := w.scanner.Scan(ctx)
	if timer != nil {
		timer.ObserveDuration()
	}
	if err != nil {
		w.logger.Error(err, "Failed reminder scan")
		return
	}

	if w.metrics != nil {
		w.metrics.RemindersSuppressed.Add(float64(result.Suppressed))
		for window, count := range result.SentByWindow {
			w.metrics.RemindersSent.WithLabelValues(window).Add(float64(count))
		}
	}
	if result.Sent > 0 {
		w.logger.Info("Reminder scan complete",
			"scanned", result.Scanned,
			"sent", result.Sent,
			"suppressed", result.Suppressed)
	}
}
