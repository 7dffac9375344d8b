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

	firebase "firebase.google.com/go/v4"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	bookingSessionHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/booking_session"
	cancelAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/check_availability"
	createAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_available_slots"
	getCatalogEntryHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_catalog_entry"
	getOwnerAppointmentsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_owner_appointments"
	getQuoteHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_quote"
	listAddonsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_addons"
	listAppointmentsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_appointments"
	listCatalogHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_catalog"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_appointment_status"
	upsertCatalogEntryHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/upsert_catalog_entry"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/config"
	catalogCache "github.com/m04kA/SMC-PetCareService/internal/infra/cache/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/infra/rtdb"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	legacyRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/legacy"
	petRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/pet"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/session"
	appointmentsService "github.com/m04kA/SMC-PetCareService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	bookingWizardUC "github.com/m04kA/SMC-PetCareService/internal/usecase/booking_wizard"
	checkAvailabilityUC "github.com/m04kA/SMC-PetCareService/internal/usecase/check_availability"
	createAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-PetCareService/internal/usecase/get_available_slots"
	getQuoteUC "github.com/m04kA/SMC-PetCareService/internal/usecase/get_quote"
	rescheduleAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
	"github.com/m04kA/SMC-PetCareService/pkg/types"
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

	log.Info("Starting SMC-PetCareService...")
	log.Info("Configuration loaded from config.toml")

	ctx := context.Background()

	// Инициализируем метрики (если включены); nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopBackgroundCh := make(chan struct{})

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
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopBackgroundCh)

	// Firebase: Realtime Database (каталог, питомцы, старые записи) и Auth
	var (
		store    rtdb.Store
		authMode mux.MiddlewareFunc
	)

	if cfg.Firebase.Enabled {
		app, err := firebase.NewApp(ctx,
			&firebase.Config{DatabaseURL: cfg.Firebase.DatabaseURL},
			option.WithCredentialsFile(cfg.Firebase.CredentialsFile),
		)
		if err != nil {
			log.Fatal("Failed to initialize Firebase app: %v", err)
		}

		dbClient, err := app.Database(ctx)
		if err != nil {
			log.Fatal("Failed to initialize Firebase Realtime Database client: %v", err)
		}
		store = rtdb.NewFirebaseStore(dbClient, cfg.Firebase.TimeoutDuration(), metricsCollector)
		log.Info("Firebase Realtime Database connected (url=%s, timeout=%ds)",
			cfg.Firebase.DatabaseURL, cfg.Firebase.Timeout)

		if cfg.Auth.Mode == config.AuthModeFirebase {
			authClient, err := app.Auth(ctx)
			if err != nil {
				log.Fatal("Failed to initialize Firebase Auth client: %v", err)
			}
			authMode = middleware.FirebaseAuth(authClient, cfg.Auth.AdminClaim, log)
		}
	} else {
		store = rtdb.NewMemory()
		log.Warn("Firebase disabled: catalog, pets and legacy appointments are kept in memory")
	}

	if authMode == nil {
		authMode = middleware.Auth
		log.Warn("Header authentication enabled (X-User-ID, X-User-Role); use only for local runs")
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	legacyRepository := legacyRepo.NewRepository(store)
	petRepository := petRepo.NewRepository(store)

	var catalogRepository catalogCache.Repository = catalogRepo.NewRepository(store, log)

	// Кэш каталога в Redis (опционально)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err)
		}
		catalogRepository = catalogCache.NewCache(
			catalogRepository,
			redisClient,
			time.Duration(cfg.Redis.TTL)*time.Second,
			log,
		)
		log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Сессии мастера записи
	sessionStore := session.NewStore(time.Duration(cfg.Booking.SessionTTL) * time.Second)
	go sessionStore.RunJanitor(time.Duration(cfg.Booking.JanitorInterval)*time.Second, stopBackgroundCh)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, legacyRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		appointmentRepository,
		legacyRepository,
		metricsCollector,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		petRepository,
		catalogRepository,
		appointmentRepository,
		checkAvailabilityUseCase,
		txMgr,
		metricsCollector,
		log,
		cfg.Booking.AdvanceDays,
	)

	getAvailableSlotsUseCase, err := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		legacyRepository,
		getAvailableSlotsUC.Schedule{
			Open:             types.TimeString(cfg.Booking.OpenTime),
			Close:            types.TimeString(cfg.Booking.CloseTime),
			StepMinutes:      cfg.Booking.SlotStep,
			MinNoticeMinutes: cfg.Booking.MinNotice,
			AdvanceDays:      cfg.Booking.AdvanceDays,
			ClosedWeekdays:   cfg.Booking.ClosedWeekdays(),
		},
		log,
	)
	if err != nil {
		log.Fatal("Invalid working hours in config: %v", err)
	}

	getQuoteUseCase := getQuoteUC.NewUseCase(catalogRepository, log)

	rescheduleUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		legacyRepository,
		metricsCollector,
		log,
	)

	bookingWizardUseCase := bookingWizardUC.NewUseCase(
		sessionStore,
		petRepository,
		catalogRepository,
		createAppointmentUseCase,
		log,
	)

	// Инициализируем handlers
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listCatalog := listCatalogHandler.NewHandler(catalogSvc, log)
	getCatalogEntry := getCatalogEntryHandler.NewHandler(catalogSvc, log)
	listAddons := listAddonsHandler.NewHandler(catalogSvc, log)
	upsertCatalogEntry := upsertCatalogEntryHandler.NewHandler(catalogSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	bookingSession := bookingSessionHandler.NewHandler(bookingWizardUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getOwnerAppointments := getOwnerAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчет стоимости
	api.HandleFunc("/quotes", getQuote.Handle).Methods(http.MethodPost)

	// Проверка свободного места на слот
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Слоты дня со свободными местами
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг
	api.HandleFunc("/catalog", listCatalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/catalog/addons", listAddons.Handle).Methods(http.MethodGet)
	api.HandleFunc("/catalog/{category}/{species}/{id}", getCatalogEntry.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют аутентификации)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMode)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{ownerId}/appointments", getOwnerAppointments.Handle).Methods(http.MethodGet)

	// --- Мастер записи ---
	protected.HandleFunc("/booking-sessions", bookingSession.Start).Methods(http.MethodPost)
	protected.HandleFunc("/booking-sessions/{sessionId}", bookingSession.Get).Methods(http.MethodGet)
	protected.HandleFunc("/booking-sessions/{sessionId}", bookingSession.Discard).Methods(http.MethodDelete)
	protected.HandleFunc("/booking-sessions/{sessionId}/events", bookingSession.ApplyEvents).Methods(http.MethodPost)
	protected.HandleFunc("/booking-sessions/{sessionId}/submit", bookingSession.Submit).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(authMode, middleware.RequireAdmin)

	admin.HandleFunc("/catalog/{category}/{species}/{id}", upsertCatalogEntry.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/admin/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/admin/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/admin/appointments/{appointmentId}/conflicts", rescheduleAppointment.Conflicts).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик пула и очистку сессий
	close(stopBackgroundCh)

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
