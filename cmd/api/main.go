package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/wardlink/admin-api/internal/config"
	"github.com/wardlink/admin-api/internal/email"
	admissionHandler "github.com/wardlink/admin-api/internal/handler/admission"
	appointmentHandler "github.com/wardlink/admin-api/internal/handler/appointment"
	authHandler "github.com/wardlink/admin-api/internal/handler/auth"
	healthHandler "github.com/wardlink/admin-api/internal/handler/health"
	labfileHandler "github.com/wardlink/admin-api/internal/handler/labfile"
	notificationHandler "github.com/wardlink/admin-api/internal/handler/notification"
	patientHandler "github.com/wardlink/admin-api/internal/handler/patient"
	prenatalHandler "github.com/wardlink/admin-api/internal/handler/prenatal"
	recordHandler "github.com/wardlink/admin-api/internal/handler/record"
	"github.com/wardlink/admin-api/internal/middleware"
	"github.com/wardlink/admin-api/internal/repository/postgres"
	"github.com/wardlink/admin-api/internal/router"
	admissionService "github.com/wardlink/admin-api/internal/service/admission"
	appointmentService "github.com/wardlink/admin-api/internal/service/appointment"
	authService "github.com/wardlink/admin-api/internal/service/auth"
	labfileService "github.com/wardlink/admin-api/internal/service/labfile"
	notificationService "github.com/wardlink/admin-api/internal/service/notification"
	patientService "github.com/wardlink/admin-api/internal/service/patient"
	prenatalService "github.com/wardlink/admin-api/internal/service/prenatal"
	recordService "github.com/wardlink/admin-api/internal/service/record"
	"github.com/wardlink/admin-api/pkg/auth"
	"github.com/wardlink/admin-api/pkg/identifier"
	"github.com/wardlink/admin-api/pkg/metrics"
	"github.com/wardlink/admin-api/pkg/security"
	"github.com/wardlink/admin-api/pkg/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	objectStore, err := storage.NewS3Store(context.Background(), storage.Config{
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		Endpoint:  cfg.Storage.Endpoint,
		PathStyle: cfg.Storage.PathStyle,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	// Repositories
	baseRepo := postgres.NewBaseRepository(db)
	patientRepo := postgres.NewPatientRepository(baseRepo)
	admissionRepo := postgres.NewAdmissionRepository(baseRepo)
	orderRepo := postgres.NewOrderRepository(baseRepo)
	medicationRepo := postgres.NewMedicationRepository(baseRepo)
	noteRepo := postgres.NewNoteRepository(baseRepo)
	labFileRepo := postgres.NewLabFileRepository(baseRepo)
	prenatalRepo := postgres.NewPrenatalRepository(baseRepo)
	appointmentRepo := postgres.NewAppointmentRepository(baseRepo)
	notificationRepo := postgres.NewNotificationRepository(baseRepo)
	userRepo := postgres.NewUserRepository(baseRepo)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)

	codeSource, err := postgres.NewSequenceSource(context.Background(), db, "record_codes")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize record code sequence")
	}
	idGen := identifier.NewGenerator(codeSource)

	appMetrics := metrics.NewMetrics("wardlink", "api")

	// Services
	jwtExpiry := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	tokens := auth.NewJWTService(cfg.JWT.Secret, jwtExpiry)
	hasher := security.NewBcryptHasher(0)

	admissionSvc := admissionService.NewService(admissionRepo, idGen, appMetrics)
	recordSvc := recordService.NewService(orderRepo, medicationRepo, noteRepo, admissionSvc, idGen)
	labFileSvc := labfileService.NewService(labFileRepo, objectStore, admissionSvc)
	patientSvc := patientService.NewService(patientRepo, idGen, labFileSvc)
	prenatalSvc := prenatalService.NewService(prenatalRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	emailSvc := email.NewService(email.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})
	notificationSvc := notificationService.NewService(notificationRepo, outboxRepo, emailSvc)
	authSvc := authService.NewService(userRepo, hasher, tokens, jwtExpiry)

	// Router
	authMiddleware := middleware.NewAuthMiddleware(tokens)
	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(db),
		patientHandler.NewHandler(patientSvc),
		admissionHandler.NewHandler(admissionSvc),
		recordHandler.NewHandler(recordSvc),
		labfileHandler.NewHandler(labFileSvc),
		prenatalHandler.NewHandler(prenatalSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		notificationHandler.NewHandler(notificationSvc),
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RPS),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "wardlink_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
