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

	"github.com/collegeprep/CPS-AppointmentService/internal/api/handlers"
	cancelAppointmentHandler "github.com/collegeprep/CPS-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/collegeprep/CPS-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/collegeprep/CPS-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/collegeprep/CPS-AppointmentService/internal/api/handlers/get_available_slots"
	getServicesHandler "github.com/collegeprep/CPS-AppointmentService/internal/api/handlers/get_services"
	"github.com/collegeprep/CPS-AppointmentService/internal/api/middleware"
	"github.com/collegeprep/CPS-AppointmentService/internal/config"
	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
	"github.com/collegeprep/CPS-AppointmentService/internal/infra/locker"
	appointmentRepo "github.com/collegeprep/CPS-AppointmentService/internal/infra/storage/appointment"
	emailLogRepo "github.com/collegeprep/CPS-AppointmentService/internal/infra/storage/emaillog"
	"github.com/collegeprep/CPS-AppointmentService/internal/integrations/googlecalendar"
	"github.com/collegeprep/CPS-AppointmentService/internal/integrations/mailer"
	"github.com/collegeprep/CPS-AppointmentService/internal/scheduling"
	appointmentsService "github.com/collegeprep/CPS-AppointmentService/internal/service/appointments"
	"github.com/collegeprep/CPS-AppointmentService/internal/service/notifications"
	createAppointmentUC "github.com/collegeprep/CPS-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/collegeprep/CPS-AppointmentService/internal/usecase/get_available_slots"
	"github.com/collegeprep/CPS-AppointmentService/pkg/dbmetrics"
	"github.com/collegeprep/CPS-AppointmentService/pkg/logger"
	"github.com/collegeprep/CPS-AppointmentService/pkg/metrics"
)

const (
	devEventSuffix   = " (DEV)"
	devSubjectPrefix = "[DEV] "
	lockKeyPrefix    = "booking"
)

// pinger проверка живости БД для /healthz
type pinger interface {
	PingContext(ctx context.Context) error
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting CPS-AppointmentService (environment=%s)...", cfg.Calendar.Environment)
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	// nil-коллектор безопасен: все его методы ничего не делают
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
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database")

	// Репозитории (с метриками или без)
	var (
		dbExecutor dbmetrics.DBExecutor = db
		healthDB   pinger               = db
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		dbExecutor = wrappedDB
		healthDB = wrappedDB
		log.Info("Database metrics collection started")
	}

	appointmentRepository := appointmentRepo.NewRepository(dbExecutor, cfg.Calendar.Environment)
	emailLogRepository := emailLogRepo.NewRepository(dbExecutor)

	// Google Calendar
	calendarService, err := googlecalendar.NewService(context.Background(), googlecalendar.Credentials{
		File:       cfg.Calendar.CredentialsFile,
		Email:      cfg.Calendar.ServiceAccountEmail,
		PrivateKey: cfg.Calendar.PrivateKey,
	})
	if err != nil {
		log.Fatal("Failed to initialize Google Calendar client: %v", err)
	}

	calendarOpts := googlecalendar.Options{
		CalendarID:      cfg.Calendar.CalendarID,
		Location:        cfg.Location(),
		Timeout:         cfg.CalendarTimeout(),
		InviteAttendees: cfg.Calendar.InviteAttendees,
	}
	if cfg.IsDevelopment() {
		calendarOpts.EventSuffix = devEventSuffix
	}
	calendarClient := googlecalendar.NewClient(calendarService, calendarOpts, metricsCollector, log)
	log.Info("Google Calendar client initialized (calendar=%s, timezone=%s, timeout=%s)",
		cfg.Calendar.CalendarID, cfg.Calendar.TimeZone, cfg.CalendarTimeout())

	// Почта; без SMTP уведомления пропускаются
	var sender notifications.Sender
	if cfg.SMTP.Enabled {
		sender = mailer.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTPTimeout())
		log.Info("SMTP sender initialized (host=%s, port=%d, timeout=%s)", cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTPTimeout())
	} else {
		log.Warn("SMTP disabled: email notifications will be skipped")
	}

	notificationCfg := notifications.Config{
		AdminEmail: cfg.SMTP.AdminEmail,
		Location:   cfg.Location(),
	}
	if cfg.IsDevelopment() {
		notificationCfg.SubjectPrefix = devSubjectPrefix
	}
	notifier := notifications.NewService(sender, emailLogRepository, metricsCollector, notificationCfg, log)

	// Блокировка дня: Redis для нескольких реплик, иначе в памяти процесса
	var dayLocker createAppointmentUC.Locker
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		dayLocker = locker.NewRedisLocker(rdb, lockKeyPrefix, cfg.LockTTL(), cfg.LockWait(), log)
		log.Info("Redis booking lock enabled (addr=%s, ttl=%s, wait=%s)", cfg.Redis.Addr, cfg.LockTTL(), cfg.LockWait())
	} else {
		dayLocker = locker.NewMemoryLocker(cfg.LockWait())
		log.Info("In-process booking lock enabled (wait=%s)", cfg.LockWait())
	}

	// Правила записи
	policy, err := scheduling.NewPolicy(
		scheduling.BusinessHours{Start: cfg.BusinessHours.Start, End: cfg.BusinessHours.End},
		cfg.Location(),
		cfg.Booking.LeadDays,
	)
	if err != nil {
		log.Fatal("Invalid business hours: %v", err)
	}
	catalog, err := scheduling.NewCatalog(cfg.Services)
	if err != nil {
		log.Fatal("Invalid service catalog: %v", err)
	}
	generator := scheduling.NewGenerator(policy, catalog, cfg.Booking.SlotGranularityMinutes)
	log.Info("Scheduling policy: hours=%d:00-%d:00, granularity=%s, lead_days=%d, services=%d",
		cfg.BusinessHours.Start, cfg.BusinessHours.End, generator.Granularity(), policy.LeadDays(), len(catalog.Services()))

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		calendarClient,
		notifier,
		metricsCollector,
		cfg.Location(),
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		calendarClient,
		appointmentRepository,
		policy,
		catalog,
		generator,
		domain.NormalizeServiceType(cfg.Booking.DefaultServiceType),
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		calendarClient,
		appointmentRepository,
		dayLocker,
		notifier,
		metricsCollector,
		policy,
		catalog,
		cfg.Calendar.CalendarID,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getServices := getServicesHandler.NewHandler(catalog, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.HTTPMetrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", healthHandler(healthDB)).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Каталог услуг
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Свободные слоты; регистрируется до /appointments/{appointmentId}
	api.HandleFunc("/appointments/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи (с ограничением частоты, если включено)
	var createHandler http.Handler = http.HandlerFunc(createAppointment.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log).
			WithTrustedProxies(cfg.TrustedProxyPrefixes()...)
		createHandler = limiter.Limit(createHandler)
		log.Info("Rate limit on POST /appointments: rps=%.2f, burst=%d, trusted proxies=%d",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(cfg.RateLimit.TrustedProxies))
	}
	api.Handle("/appointments", createHandler).Methods(http.MethodPost)

	// Получение и отмена записи
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", cancelAppointment.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// healthHandler 200, если БД отвечает, иначе 503
func healthHandler(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
