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

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SalonScheduling/internal/api"
	"github.com/m04kA/SMC-SalonScheduling/internal/config"
	"github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/migrations"
	snapshotRepo "github.com/m04kA/SMC-SalonScheduling/internal/infra/storage/snapshot"
	salonAPIClient "github.com/m04kA/SMC-SalonScheduling/internal/integrations/salonapi"
	appointmentsService "github.com/m04kA/SMC-SalonScheduling/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-SalonScheduling/internal/service/availability"
	slotsService "github.com/m04kA/SMC-SalonScheduling/internal/service/slots"
	timeOffService "github.com/m04kA/SMC-SalonScheduling/internal/service/timeoff"
	getScheduleOverviewUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/get_schedule_overview"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SalonScheduling/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonScheduling/pkg/keylock"
	"github.com/m04kA/SMC-SalonScheduling/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduling/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonScheduling...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики нужны сервисам всегда, флаг управляет только HTTP частью
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	// Хранилище снимков расписаний (опционально)
	var snapshots availabilityService.SnapshotRepository
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Database.Migrate {
			migrator, err := migrations.NewMigrator(db, log)
			if err != nil {
				log.Fatal("Failed to initialize migrator: %v", err)
			}
			if err := migrator.Run(context.Background()); err != nil {
				log.Fatal("Failed to apply migrations: %v", err)
			}
		}

		if cfg.Scheduling.TrackDrift {
			snapshots = snapshotRepo.NewRepository(db)
			log.Info("Schedule drift tracking enabled")
		}
	}

	// Инициализируем клиент salon API
	salonClient := salonAPIClient.NewClient(salonAPIClient.Config{
		BaseURL:   cfg.SalonAPI.URL,
		Token:     cfg.SalonAPI.Token,
		Timeout:   cfg.SalonAPI.TimeoutDuration(),
		RateLimit: cfg.SalonAPI.RateLimit,
		Burst:     cfg.SalonAPI.Burst,
		Format:    cfg.SalonAPI.WireFormat(),
	}, log, metricsCollector)
	log.Info("Salon API client initialized (url=%s, timeout=%ds, weekday_keys=%s)",
		cfg.SalonAPI.URL, cfg.SalonAPI.Timeout, cfg.SalonAPI.WeekdayKeys)

	locks := keylock.New()
	timeProvider := &rescheduleAppointmentUC.RealTimeProvider{}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(salonClient, snapshots, locks, metricsCollector, log)
	timeOffSvc := timeOffService.NewService(salonClient, locks, metricsCollector, log)
	slotsSvc := slotsService.NewService(salonClient, log)
	appointmentsSvc := appointmentsService.NewService(salonClient, locks, metricsCollector, timeProvider, log)

	// Инициализируем use cases
	overviewUseCase := getScheduleOverviewUC.NewUseCase(availabilitySvc, timeOffSvc, slotsSvc, log)
	rescheduleUseCase := rescheduleAppointmentUC.NewUseCase(salonClient, locks, metricsCollector, log).
		WithTimeProvider(timeProvider)

	deps := api.Dependencies{
		Availability: availabilitySvc,
		TimeOff:      timeOffSvc,
		Appointments: appointmentsSvc,
		Slots:        slotsSvc,
		Overview:     overviewUseCase,
		Reschedule:   rescheduleUseCase,
		Logger:       log,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = metricsCollector
		deps.MetricsPath = cfg.Metrics.Path
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r := api.NewRouter(deps)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
