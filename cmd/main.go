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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getFullyBookedDatesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_fully_booked_dates"
	getStaffAppointmentsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_staff_appointments"
	getTenantSettingsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_tenant_settings"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_appointment_status"
	updateTenantSettingsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_tenant_settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	appointmentRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	settingsRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/settings"
	staffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/bookingevents"
	catalogServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/catalogservice"
	appointmentsService "github.com/m04kA/SMC-AvailabilityService/internal/service/appointments"
	schedulingService "github.com/m04kA/SMC-AvailabilityService/internal/service/scheduling"
	settingsService "github.com/m04kA/SMC-AvailabilityService/internal/service/settings"
	createAppointmentUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	getFullyBookedDatesUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_fully_booked_dates"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// EventPublisher публикует события изменения записей
type EventPublisher interface {
	Publish(ctx context.Context, event bookingevents.AppointmentChanged) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Трейсинг
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled (endpoint=%s, ratio=%.2f)", cfg.Tracing.OTLPEndpoint, cfg.Tracing.SampleRatio)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// С nil-метриками обёртка работает как прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)

	// Кэш доступности: Redis для нескольких экземпляров, иначе память процесса
	var store cache.Store
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		store = cache.NewRedisStore(rdb, "availability")
		log.Info("Availability cache backed by redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	} else {
		store = cache.NewMemoryStore()
		log.Info("Availability cache backed by process memory")
	}
	availabilityCache := cache.NewAvailability(store, cfg.Availability.CacheTTLDuration(), metricsCollector, log)

	// Интеграции
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	var publisher EventPublisher = bookingevents.NopPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaPublisher := bookingevents.NewPublisher(
			bookingevents.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic),
			cfg.Kafka.Topic,
		)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher

		consumer := bookingevents.NewConsumer(
			bookingevents.NewKafkaReader(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic),
			bookingevents.InvalidateOnChange(availabilityCache),
			log,
			metricsCollector,
		)
		go consumer.Run(ctx)
		log.Info("Kafka events enabled (brokers=%v, topic=%s, group=%s)",
			cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.ConsumerGroup)
	} else {
		log.Info("Kafka brokers not configured, appointment events disabled")
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, availabilityCache, log)
	schedulingSvc := schedulingService.NewService(settingsSvc, catalogClient, staffRepository, appointmentRepository)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, settingsSvc, availabilityCache, publisher, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(schedulingSvc, availabilityCache, metricsCollector, log)
	getFullyBookedDatesUseCase := getFullyBookedDatesUC.NewUseCase(schedulingSvc, availabilityCache, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		schedulingSvc,
		appointmentRepository,
		txMgr,
		availabilityCache,
		publisher,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getFullyBookedDates := getFullyBookedDatesHandler.NewHandler(getFullyBookedDatesUseCase, log)
	getTenantSettings := getTenantSettingsHandler.NewHandler(settingsSvc, log)
	updateTenantSettings := updateTenantSettingsHandler.NewHandler(settingsSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1/tenants/{tenantId}").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Полностью занятые даты месяца
	api.HandleFunc("/fully-booked-dates", getFullyBookedDates.Handle).Methods(http.MethodGet)

	// Действующие настройки расписания
	api.HandleFunc("/settings", getTenantSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Настройки тенанта ---
	protected.HandleFunc("/settings", updateTenantSettings.Handle).Methods(http.MethodPut)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// --- Занятость мастера для администратора ---
	protected.HandleFunc("/staff/{staffId}/appointments", getStaffAppointments.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "http.server"),
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

	// Останавливаем потребителя событий и сбор метрик connection pool
	stop()
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
