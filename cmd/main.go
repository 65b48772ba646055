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

	createBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_booking"
	deactivateBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/deactivate_booking"
	deleteBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_booking"
	getNextSlotHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_next_slot"
	getOwnerBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_owner_bookings"
	getOwnerConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_owner_config"
	resetOwnerConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/reset_owner_config"
	updateOwnerConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_owner_config"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedcfg"
	availabilityService "github.com/m04kA/SMC-ScheduleService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	configService "github.com/m04kA/SMC-ScheduleService/internal/service/config"
	conflictsService "github.com/m04kA/SMC-ScheduleService/internal/service/conflicts"
	validationService "github.com/m04kA/SMC-ScheduleService/internal/service/validation"
	createBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
	findNextSlotUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/find_next_slot"
	getAvailableSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

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

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Prometheus metrics enabled: service=%s", cfg.Metrics.ServiceName)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	// Инициализируем репозитории и транзакционный менеджер.
	// С метриками запросы идут через обертку dbmetrics.
	var (
		bookingRepository *bookingRepo.Repository
		configRepository  *configRepo.Repository
		txMgr             createBookingUC.TransactionManager
		stopMetricsCh     chan struct{}
	)

	if cfg.Metrics.Enabled {
		stopMetricsCh = make(chan struct{})
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы движка
	schedulingDefaults, err := cfg.Scheduling.ToDomain()
	if err != nil {
		log.Fatal("Invalid scheduling defaults: %v", err)
	}

	conflictsSvc := conflictsService.NewService(bookingRepository, log)
	validationSvc := validationService.NewService(conflictsSvc, validationService.SystemTime{}, log)
	availabilitySvc := availabilityService.NewService(bookingRepository, conflictsSvc, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, log)
	configSvc := configService.NewService(configRepository, schedulingDefaults, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		configSvc,
		validationSvc,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilitySvc,
		configSvc,
		log,
	)

	findNextSlotUseCase := findNextSlotUC.NewUseCase(
		availabilitySvc,
		configSvc,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	deactivateBooking := deactivateBookingHandler.NewHandler(bookingsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingsSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getNextSlot := getNextSlotHandler.NewHandler(findNextSlotUseCase, log)
	getOwnerConfig := getOwnerConfigHandler.NewHandler(configSvc, log)
	updateOwnerConfig := updateOwnerConfigHandler.NewHandler(configSvc, log)
	resetOwnerConfig := resetOwnerConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты на день: фиксированное окно или bookable режим
	api.HandleFunc("/owners/{ownerKind}/{ownerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Ближайший подходящий слот от даты
	api.HandleFunc("/owners/{ownerKind}/{ownerId}/next-slot",
		getNextSlot.Handle).Methods(http.MethodGet)

	// Конфигурация планирования владельца
	api.HandleFunc("/owners/{ownerKind}/{ownerId}/schedule-config",
		getOwnerConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (пайплайн валидации + serializable запись)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Мягкое отключение бронирования
	protected.HandleFunc("/bookings/{bookingId}/deactivate", deactivateBooking.Handle).Methods(http.MethodPatch)

	// Физическое удаление бронирования
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// Бронирования владельца с фильтрами
	protected.HandleFunc("/owners/{ownerKind}/{ownerId}/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)

	// --- Конфигурация владельца ---
	// Частичное обновление конфигурации
	protected.HandleFunc("/owners/{ownerKind}/{ownerId}/schedule-config",
		updateOwnerConfig.Handle).Methods(http.MethodPut)

	// Сброс на умолчания сервиса
	protected.HandleFunc("/owners/{ownerKind}/{ownerId}/schedule-config",
		resetOwnerConfig.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
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
