package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wardlink/admin-api/internal/config"
	"github.com/wardlink/admin-api/internal/email"
	"github.com/wardlink/admin-api/internal/repository/postgres"
	appointmentService "github.com/wardlink/admin-api/internal/service/appointment"
	notificationService "github.com/wardlink/admin-api/internal/service/notification"
	reminderService "github.com/wardlink/admin-api/internal/service/reminder"
	internalworker "github.com/wardlink/admin-api/internal/worker"
	"github.com/wardlink/admin-api/pkg/logger"
	"github.com/wardlink/admin-api/pkg/messaging/redis"
	"github.com/wardlink/admin-api/pkg/metrics"
	"github.com/wardlink/admin-api/pkg/worker"
)

func setupHealthCheck(log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			log.Fatal(err, "health check server failed")
		}
	}()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	baseRepo := postgres.NewBaseRepository(db)
	patientRepo := postgres.NewPatientRepository(baseRepo)
	appointmentRepo := postgres.NewAppointmentRepository(baseRepo)
	notificationRepo := postgres.NewNotificationRepository(baseRepo)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)

	emailSvc := email.NewService(email.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})
	notificationSvc := notificationService.NewService(notificationRepo, outboxRepo, emailSvc)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	reminderSvc := reminderService.NewService(appointmentRepo, patientRepo, notificationSvc, appLogger)

	m := metrics.NewMetrics("wardlink", "worker")

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
	}, appLogger, m)
	reminderWorker := internalworker.NewReminderWorker(reminderSvc, cfg.Reminder.ScanInterval, appLogger, m)
	cleanupWorker := internalworker.NewAppointmentCleanupWorker(appointmentSvc, cfg.Appointment.CleanupInterval, appLogger, m)

	setupHealthCheck(appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		outboxProcessor.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		reminderWorker.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		cleanupWorker.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	appLogger.Info("shutting down workers...")
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		appLogger.Warn("timed out waiting for workers to stop")
	}
	appLogger.Info("workers exited")
}
