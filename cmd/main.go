package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/compawny/scheduling-service/internal/api/handlers/cancel_appointment"
	caregiverAppointmentsHandler "github.com/compawny/scheduling-service/internal/api/handlers/caregiver_appointments"
	completeAppointmentHandler "github.com/compawny/scheduling-service/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/compawny/scheduling-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/compawny/scheduling-service/internal/api/handlers/get_appointment"
	listAppointmentsHandler "github.com/compawny/scheduling-service/internal/api/handlers/list_appointments"
	petAppointmentsHandler "github.com/compawny/scheduling-service/internal/api/handlers/pet_appointments"
	startAppointmentHandler "github.com/compawny/scheduling-service/internal/api/handlers/start_appointment"
	updateAppointmentHandler "github.com/compawny/scheduling-service/internal/api/handlers/update_appointment"
	"github.com/compawny/scheduling-service/internal/api/middleware"
	"github.com/compawny/scheduling-service/internal/config"
	"github.com/compawny/scheduling-service/internal/infra/lock"
	appointmentRepo "github.com/compawny/scheduling-service/internal/infra/storage/appointment"
	"github.com/compawny/scheduling-service/internal/infra/storage/migrator"
	caregiverServiceClient "github.com/compawny/scheduling-service/internal/integrations/caregiverservice"
	petServiceClient "github.com/compawny/scheduling-service/internal/integrations/petservice"
	appointmentsService "github.com/compawny/scheduling-service/internal/service/appointments"
	createAppointmentUC "github.com/compawny/scheduling-service/internal/usecase/create_appointment"
	updateAppointmentUC "github.com/compawny/scheduling-service/internal/usecase/update_appointment"
	"github.com/compawny/scheduling-service/pkg/dbmetrics"
	"github.com/compawny/scheduling-service/pkg/logger"
	"github.com/compawny/scheduling-service/pkg/metrics"
	"github.com/compawny/scheduling-service/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting scheduling-service...")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Migrations.Enabled {
		mig, err := migrator.New(db)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := mig.Run(context.Background()); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		version, err := mig.Version(context.Background())
		if err != nil {
			log.Fatal("Failed to read migration version: %v", err)
		}
		log.Info("Migrations applied, schema version=%d", version)
	}

	caregiverClient := caregiverServiceClient.NewClient(
		cfg.CaregiverService.URL,
		time.Duration(cfg.CaregiverService.Timeout)*time.Second,
		log,
	)
	petClient := petServiceClient.NewClient(
		cfg.PetService.URL,
		time.Duration(cfg.PetService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CaregiverService=%s timeout=%ds, PetService=%s timeout=%ds)",
		cfg.CaregiverService.URL, cfg.CaregiverService.Timeout, cfg.PetService.URL, cfg.PetService.Timeout)

	var (
		repository *appointmentRepo.Repository
		txMgr      *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		repository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewWithBeginner(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		repository = appointmentRepo.NewRepository(db)
		txMgr = txmanager.New(db)
	}

	var caregiverLocker lock.CaregiverLocker = lock.NewNoopLocker()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		caregiverLocker = lock.NewRedisLocker(redisClient, time.Duration(cfg.Redis.LockTTLSecs)*time.Second)
		log.Info("Redis caregiver locking enabled (addr=%s)", cfg.Redis.Addr)
	}

	appointmentSvc := appointmentsService.NewService(repository, txMgr, log)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		repository,
		caregiverClient,
		petClient,
		txMgr,
		caregiverLocker,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		repository,
		caregiverClient,
		txMgr,
		caregiverLocker,
		log,
	)

	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	startAppointment := startAppointmentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	caregiverAppointments := caregiverAppointmentsHandler.NewHandler(appointmentSvc, log)
	petAppointments := petAppointmentsHandler.NewHandler(appointmentSvc, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/caregiver/{caregiverId}/upcoming", caregiverAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/pet/{petId}/upcoming", petAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id}/start", startAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/complete", completeAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
